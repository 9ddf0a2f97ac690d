package wire

import "github.com/konditional-dev/konditional/value"

// The wire* structs mirror the JSON shapes of spec §6.1 and §6.2
// exactly; field order here is also encode's emission order.

type wireSnapshot struct {
	Metadata wireMetadata `json:"metadata"`
	Flags    []wireFlag   `json:"flags"`
}

type wireMetadata struct {
	Version                *string `json:"version"`
	GeneratedAtEpochMillis int64   `json:"generatedAtEpochMillis"`
}

type wireFlag struct {
	Key          string      `json:"key"`
	Active       bool        `json:"active"`
	Salt         string      `json:"salt"`
	DefaultValue value.Value `json:"defaultValue"`
	Rules        []wireRule  `json:"rules"`
}

type wireRule struct {
	Value        value.Value       `json:"value"`
	RampUp       float64           `json:"rampUp"`
	Allowlist    []string          `json:"allowlist"`
	Note         *string           `json:"note"`
	Platforms    []string          `json:"platforms"`
	Locales      []string          `json:"locales"`
	VersionRange *wireVersionRange `json:"versionRange"`
	Axes         []wireAxis        `json:"axes"`
}

type wireVersionRange struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

type wireAxis struct {
	AxisID string   `json:"axisId"`
	Values []string `json:"values"`
}

type wirePatch struct {
	UpsertFlags []wireFlag `json:"upsertFlags"`
	RemoveKeys  []string   `json:"removeKeys"`
}
