package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/value"
)

// OutputFormat selects how evalResult / flagSummary values are rendered.
// Mirrors the teacher's cli.OutputFormat exactly (spec ambient-stack
// note: "table/json/yaml via olekukonko/tablewriter + yaml.v3").
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// evalResult is the flattened, display-friendly shape of a single
// flag.Result: native Go types render cleanly in all three formats,
// where value.Value's own tagged-variant JSON codec would not.
type evalResult struct {
	Flag      string `json:"flag" yaml:"flag"`
	Decision  string `json:"decision" yaml:"decision"`
	Value     any    `json:"value" yaml:"value"`
	RuleIndex *int   `json:"ruleIndex,omitempty" yaml:"ruleIndex,omitempty"`
	Bucket    *int   `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

func newEvalResult(flagName string, result flag.Result) evalResult {
	out := evalResult{
		Flag:     flagName,
		Decision: string(result.Decision.Kind),
		Value:    renderValue(result.Value),
	}
	if result.Decision.Kind == flag.DecisionRuleMatched {
		idx, bucket := result.Decision.RuleIndex, result.Decision.Bucket
		out.RuleIndex, out.Bucket = &idx, &bucket
	}
	return out
}

// renderValue unwraps value.Value's tagged variant into the plain Go
// type a table/YAML cell can hold directly.
func renderValue(v value.Value) any {
	switch v.Kind {
	case value.KindBoolean:
		return v.Bool
	case value.KindInteger:
		return v.Int
	case value.KindDouble:
		return v.Double
	case value.KindString:
		return v.Str
	case value.KindEnum:
		return v.Enum.Name + "::" + v.Enum.Variant
	case value.KindStruct:
		return v.Struct
	default:
		return nil
	}
}

// printEvalResult outputs a single evaluation in the requested format.
func printEvalResult(r evalResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(r)
	case FormatYAML:
		return printYAML(r)
	case FormatTable:
		return printEvalTable(r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printEvalTable(r evalResult) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Flag", "Decision", "Value", "Rule", "Bucket"})

	rule, bucket := "-", "-"
	if r.RuleIndex != nil {
		rule = fmt.Sprintf("%d", *r.RuleIndex)
	}
	if r.Bucket != nil {
		bucket = fmt.Sprintf("%d", *r.Bucket)
	}
	table.Append([]string{r.Flag, r.Decision, fmt.Sprintf("%v", r.Value), rule, bucket})
	table.Render()
	return nil
}

// flagSummary is one row of `konditional show`'s listing: just enough to
// see what a snapshot declares without evaluating anything.
type flagSummary struct {
	Key     string `json:"key" yaml:"key"`
	Active  bool   `json:"active" yaml:"active"`
	Default any    `json:"default" yaml:"default"`
	Rules   int    `json:"rules" yaml:"rules"`
}

func printFlagSummaries(rows []flagSummary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(map[string][]flagSummary{"flags": rows})
	case FormatYAML:
		return printYAML(map[string][]flagSummary{"flags": rows})
	case FormatTable:
		return printFlagTable(rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printFlagTable(rows []flagSummary) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Active", "Default", "Rules"})
	for _, row := range rows {
		table.Append([]string{row.Key, fmt.Sprintf("%v", row.Active), fmt.Sprintf("%v", row.Default), fmt.Sprintf("%d", row.Rules)})
	}
	table.Render()
	return nil
}
