package criteria

import (
	"reflect"
	"sort"

	"github.com/konditional-dev/konditional/value"
)

// Rule is a single targeting-gated value candidate for a flag. Its Value
// is a plain value.Value: criteria has no notion of a flag's declared
// variant, which lives on flag.Definition.DeclaredKind.
type Rule struct {
	Value       value.Value
	Criteria    []Criterion
	RampUp      value.RampUp
	Allowlist   map[string]struct{} // normalized stable-id hex -> present
	Note        string
	specificity int
}

// NewRule constructs a Rule and caches its specificity (sum of criteria
// contributions; ramp-up contributes 0, per spec §4.2).
func NewRule(v value.Value, crit []Criterion, rampUp value.RampUp, allowlist []string, note string) Rule {
	total := 0
	for _, c := range crit {
		total += c.Specificity()
	}
	set := make(map[string]struct{}, len(allowlist))
	for _, id := range allowlist {
		set[id] = struct{}{}
	}
	return Rule{
		Value:       v,
		Criteria:    crit,
		RampUp:      rampUp,
		Allowlist:   set,
		Note:        note,
		specificity: total,
	}
}

// Specificity returns the cached sum of criteria contributions.
func (r Rule) Specificity() int { return r.specificity }

// MatchesAll reports whether every criterion in r matches ctx (AND
// semantics, spec §4.2).
func (r Rule) MatchesAll(ctx Context) bool {
	for _, c := range r.Criteria {
		if !c.Matches(ctx) {
			return false
		}
	}
	return true
}

// Allowlisted reports whether a canonical stable-id hex bypasses r's
// ramp-up gate.
func (r Rule) Allowlisted(stableIDHex string) bool {
	if stableIDHex == "" {
		return false
	}
	_, ok := r.Allowlist[stableIDHex]
	return ok
}

// Equal reports deep structural equality between two rules, used by
// registry.Snapshot.Equal (spec §8.7). Custom criteria compare
// equal only if both are absent: reflect.DeepEqual never considers two
// non-nil function values equal, so a rule carrying a Custom predicate
// never round-trips through this check — callers comparing snapshots
// containing custom criteria must compare those flags by identity instead.
func (r Rule) Equal(other Rule) bool {
	if !r.Value.Equal(other.Value) {
		return false
	}
	if r.RampUp.Percent() != other.RampUp.Percent() {
		return false
	}
	if r.Note != other.Note {
		return false
	}
	if len(r.Allowlist) != len(other.Allowlist) {
		return false
	}
	for id := range r.Allowlist {
		if _, ok := other.Allowlist[id]; !ok {
			return false
		}
	}
	if len(r.Criteria) != len(other.Criteria) {
		return false
	}
	for i := range r.Criteria {
		if !reflect.DeepEqual(r.Criteria[i], other.Criteria[i]) {
			return false
		}
	}
	return true
}

// SortByPrecedence returns a copy of rules ordered by (specificity DESC,
// stable definition order ASC), per spec §4.3 step 1. sort.SliceStable
// preserves the input order of equal-specificity rules, which is exactly
// the "stable definition order ASC" tie-break. Call this once at
// definition time; the resulting order is cached and reused for every
// evaluation.
func SortByPrecedence(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].specificity > sorted[j].specificity
	})
	return sorted
}
