package predicate

import "github.com/konditional-dev/konditional/criteria"

// CustomRef is a placeholder for a custom criterion referenced by name.
// It never matches anything on its own — Merge must resolve it against a
// Registry before a rule carrying one is evaluated. The wire package
// does not construct CustomRef itself: it reattaches custom criteria
// positionally (see sourceCustomCriteriaFor in wire/codec.go), since it
// already holds the source-declared rule in hand at decode time. CustomRef
// and Merge are a standalone, name-keyed resolution path for hosts that
// build or mutate criteria.Criterion trees outside of a decoded snapshot.
type CustomRef struct{ Name string }

func (CustomRef) Matches(criteria.Context) bool { return false }
func (CustomRef) Specificity() int              { return 0 }
func (c CustomRef) TypeTag() string             { return "custom-ref:" + c.Name }

// Merge replaces every CustomRef in crit with the matching criteria.Custom
// registered in reg, by name. A ref with no source-declared match is
// dropped rather than treated as a decode failure: a predicate withdrawn
// from source should narrow, not break, snapshots already in flight
// (decode-time custom-predicate merge is lenient; see SPEC_FULL.md §4).
func Merge(reg *Registry, crit []criteria.Criterion) []criteria.Criterion {
	if reg == nil {
		return crit
	}
	out := make([]criteria.Criterion, 0, len(crit))
	for _, c := range crit {
		ref, ok := c.(CustomRef)
		if !ok {
			out = append(out, c)
			continue
		}
		if resolved, found := reg.Lookup(ref.Name); found {
			out = append(out, resolved)
		}
	}
	return out
}
