// Package wire implements Konditional's parse boundary (spec §4.5):
// turning untrusted JSON into a trusted Snapshot, or a typed ParseError
// — the boundary never panics and never lets a malformed payload reach
// the registry.
package wire

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/value"
)

// Decode turns a snapshot JSON payload into a trusted registry.Snapshot
// against schema, honoring opts. A failed decode never touches any
// registry — callers must check the returned error before publishing.
func Decode(data []byte, schema *Schema, opts Options) (registry.Snapshot, *ParseError) {
	var wsnap wireSnapshot
	if err := json.Unmarshal(data, &wsnap); err != nil {
		return registry.Snapshot{}, errInvalidJSON(err.Error())
	}

	// decodeID correlates every warning this single Decode call raises,
	// so a host's log aggregator can group them without decode having to
	// collect and return a batch of warnings itself.
	decodeID := uuid.NewString()

	// seenDigests guards against a duplicate flag key within the same
	// payload (a malformed producer emitting the same key twice). xxhash
	// gives a cheap 64-bit map key for this membership check — the same
	// role it plays in the teacher as a fast non-cryptographic digest,
	// never as the rollout/bucket hash (that is SHA-256, pinned exactly).
	seenDigests := make(map[uint64]string, len(wsnap.Flags))
	flags := make(map[string]flag.Definition, len(wsnap.Flags))

	for _, wf := range wsnap.Flags {
		id, err := value.ParseFlagID(wf.Key)
		if err != nil {
			return registry.Snapshot{}, errInvalidSnapshot(fmt.Sprintf("flag key %q: %v", wf.Key, err))
		}
		digest := xxhash.Sum64String(id.Render())
		if prior, dup := seenDigests[digest]; dup && prior == id.Render() {
			return registry.Snapshot{}, errInvalidSnapshot(fmt.Sprintf("duplicate flag key %q in payload", id.Render()))
		}
		seenDigests[digest] = id.Render()
		schemaEntry, known := schema.Lookup(id.Render())
		if !known {
			if opts.UnknownFlagKeyStrategy == SkipUnknownFlagKey {
				opts.warn(wf.Key, "unknown flag key skipped", decodeID)
				continue
			}
			return registry.Snapshot{}, errFlagNotFound(id)
		}
		if wf.DefaultValue.Kind != schemaEntry.DeclaredKind {
			return registry.Snapshot{}, errTypeMismatch(id, schemaEntry.DeclaredKind, wf.DefaultValue.Kind)
		}
		def, perr := decodeFlag(id, wf, schemaEntry)
		if perr != nil {
			return registry.Snapshot{}, perr
		}
		flags[id.Render()] = def
	}

	for _, key := range schema.Keys() {
		if _, present := flags[key]; present {
			continue
		}
		entry, _ := schema.Lookup(key)
		if opts.MissingDeclaredFlagStrategy == RejectMissingDeclaredFlag {
			return registry.Snapshot{}, errFlagNotFound(entry.SourceDefault.ID)
		}
		opts.warn(key, "missing declared flag filled from source default", decodeID)
		flags[key] = entry.SourceDefault
	}

	meta := registry.Metadata{GeneratedAtEpochMillis: wsnap.Metadata.GeneratedAtEpochMillis}
	if wsnap.Metadata.Version != nil && *wsnap.Metadata.Version != "" {
		meta.Version = *wsnap.Metadata.Version
	} else {
		// A producer that omits a version token still gets one: the
		// registry's ETag/If-None-Match handling (internal/httpserver)
		// needs a non-empty token to do anything useful with.
		meta.Version = uuid.NewString()
	}
	return registry.NewSnapshot(meta, flags), nil
}

// decodeFlag builds a single flag.Definition from its wire entry,
// reattaching any custom criteria the source declaration carries at the
// same rule position (spec §9: custom criteria never travel on the
// wire; a position mismatch is tolerated, not a decode failure).
func decodeFlag(id value.FlagId, wf wireFlag, schemaEntry FlagSchema) (flag.Definition, *ParseError) {
	if schemaEntry.DeclaredKind == value.KindStruct && schemaEntry.Validator != nil {
		if err := schemaEntry.Validator(wf.DefaultValue.Struct); err != nil {
			return flag.Definition{}, errSchemaViolation(id, "defaultValue", err.Error())
		}
	}

	rules := make([]criteria.Rule, 0, len(wf.Rules))
	for i, wr := range wf.Rules {
		if wr.Value.Kind != schemaEntry.DeclaredKind {
			return flag.Definition{}, errTypeMismatch(id, schemaEntry.DeclaredKind, wr.Value.Kind)
		}
		if schemaEntry.DeclaredKind == value.KindStruct && schemaEntry.Validator != nil {
			if err := schemaEntry.Validator(wr.Value.Struct); err != nil {
				return flag.Definition{}, errSchemaViolation(id, fmt.Sprintf("rules[%d].value", i), err.Error())
			}
		}

		ramp, err := value.NewRampUp(wr.RampUp)
		if err != nil {
			return flag.Definition{}, errInvalidRampUp(fmt.Sprintf("%v", wr.RampUp))
		}

		allowlist := make([]string, 0, len(wr.Allowlist))
		for _, hexID := range wr.Allowlist {
			sid, err := value.StableIDFromHex(hexID)
			if err != nil {
				return flag.Definition{}, errInvalidStableID(fmt.Sprintf("allowlist entry %q: %v", hexID, err))
			}
			allowlist = append(allowlist, sid.Hex())
		}

		crit, perr := decodeCriteria(wr)
		if perr != nil {
			return flag.Definition{}, perr
		}
		crit = append(crit, sourceCustomCriteriaFor(schemaEntry.SourceDefault, i)...)

		var note string
		if wr.Note != nil {
			note = *wr.Note
		}
		rules = append(rules, criteria.NewRule(wr.Value, crit, ramp, allowlist, note))
	}

	return flag.NewDefinition(id, schemaEntry.DeclaredKind, wf.DefaultValue, rules, wf.Active, wf.Salt), nil
}

func decodeCriteria(wr wireRule) ([]criteria.Criterion, *ParseError) {
	var crit []criteria.Criterion
	if len(wr.Platforms) > 0 {
		crit = append(crit, criteria.NewPlatforms(wr.Platforms...))
	}
	if len(wr.Locales) > 0 {
		crit = append(crit, criteria.NewLocales(wr.Locales...))
	}
	if wr.VersionRange != nil {
		vr := criteria.VersionRange{}
		if wr.VersionRange.Min != nil {
			min, err := value.ParseVersion(*wr.VersionRange.Min)
			if err != nil {
				return nil, errInvalidVersion(*wr.VersionRange.Min, err.Error())
			}
			vr.Min, vr.HasMin = min, true
		}
		if wr.VersionRange.Max != nil {
			max, err := value.ParseVersion(*wr.VersionRange.Max)
			if err != nil {
				return nil, errInvalidVersion(*wr.VersionRange.Max, err.Error())
			}
			vr.Max, vr.HasMax = max, true
		}
		crit = append(crit, vr)
	}
	for _, ax := range wr.Axes {
		crit = append(crit, criteria.NewAxis(ax.AxisID, ax.Values...))
	}
	return crit, nil
}

func sourceCustomCriteriaFor(sourceDef flag.Definition, ruleIndex int) []criteria.Criterion {
	if ruleIndex >= len(sourceDef.Rules) {
		return nil
	}
	var out []criteria.Criterion
	for _, c := range sourceDef.Rules[ruleIndex].Criteria {
		if custom, ok := c.(criteria.Custom); ok {
			out = append(out, custom)
		}
	}
	return out
}

// Encode renders snap deterministically: flags sorted by key, rules in
// their stored (precedence-cached) order (spec §4.5).
func Encode(snap registry.Snapshot) ([]byte, error) {
	wsnap := wireSnapshot{
		Metadata: wireMetadata{GeneratedAtEpochMillis: snap.Metadata.GeneratedAtEpochMillis},
		Flags:    make([]wireFlag, 0, len(snap.Flags)),
	}
	if snap.Metadata.Version != "" {
		v := snap.Metadata.Version
		wsnap.Metadata.Version = &v
	}
	for _, def := range snap.SortedFlags() {
		wsnap.Flags = append(wsnap.Flags, encodeFlag(def))
	}
	return json.Marshal(wsnap)
}

func encodeFlag(def flag.Definition) wireFlag {
	wf := wireFlag{
		Key:          def.ID.Render(),
		Active:       def.Active,
		Salt:         def.Salt,
		DefaultValue: def.Default,
		Rules:        make([]wireRule, 0, len(def.Rules)),
	}
	for _, r := range def.Rules {
		wf.Rules = append(wf.Rules, encodeRule(r))
	}
	return wf
}

func encodeRule(r criteria.Rule) wireRule {
	wr := wireRule{
		Value:     r.Value,
		RampUp:    r.RampUp.Percent(),
		Allowlist: sortedSet(r.Allowlist),
	}
	if r.Note != "" {
		note := r.Note
		wr.Note = &note
	}
	for _, c := range r.Criteria {
		switch v := c.(type) {
		case criteria.Platforms:
			wr.Platforms = sortedSet(v.IDs)
		case criteria.Locales:
			wr.Locales = sortedSet(v.IDs)
		case criteria.VersionRange:
			wr.VersionRange = encodeVersionRange(v)
		case criteria.Axis:
			wr.Axes = append(wr.Axes, wireAxis{AxisID: v.AxisID, Values: sortedSet(v.IDs)})
		case criteria.Custom:
			// Custom criteria never round-trip onto the wire (spec §9);
			// Decode reattaches them from the schema's source default.
		}
	}
	return wr
}

func encodeVersionRange(v criteria.VersionRange) *wireVersionRange {
	if !v.HasMin && !v.HasMax {
		return nil
	}
	out := &wireVersionRange{}
	if v.HasMin {
		s := v.Min.String()
		out.Min = &s
	}
	if v.HasMax {
		s := v.Max.String()
		out.Max = &s
	}
	return out
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
