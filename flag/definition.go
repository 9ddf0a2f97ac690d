package flag

import (
	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/value"
)

// Definition is a single flag's complete configuration (spec §3): default
// value, precedence-ordered rules, active bit, and bucketing salt.
type Definition struct {
	ID           value.FlagId
	DeclaredKind value.Kind
	Default      value.Value
	// Rules is cached in precedence order (specificity DESC, stable
	// definition order ASC) — callers must build it via NewDefinition or
	// criteria.SortByPrecedence, never by appending to a live Definition.
	Rules  []criteria.Rule
	Active bool
	Salt   string
}

// NewDefinition builds a Definition, sorting rules into their cached
// evaluation order once (spec §4.3 step 1).
func NewDefinition(id value.FlagId, declaredKind value.Kind, def value.Value, rules []criteria.Rule, active bool, salt string) Definition {
	return Definition{
		ID:           id,
		DeclaredKind: declaredKind,
		Default:      def,
		Rules:        criteria.SortByPrecedence(rules),
		Active:       active,
		Salt:         salt,
	}
}

// Result is the full output of an evaluation: the resolved value plus the
// decision that produced it.
type Result struct {
	Value    value.Value
	Decision Decision
}

// Evaluate returns only the resolved value, per spec §4.3 ("evaluate is
// total: it always returns a value of the declared type").
func Evaluate(def Definition, ctx criteria.Context) value.Value {
	return EvaluateWithTrace(def, ctx).Value
}

// EvaluateWithTrace runs the decision procedure from spec §4.3 for a single
// flag definition: the inactive short-circuit, rule iteration, ramp-up
// gating, and the default fallthrough. Container-disabled and override are
// request-level facts the registry/evaluation layer (C4/C6) decides before
// ever reaching a specific Definition; they never originate here.
//
// Given a fixed (def, ctx), EvaluateWithTrace is deterministic: the bucket
// is computed once and reused across every rule in the iteration.
func EvaluateWithTrace(def Definition, ctx criteria.Context) Result {
	if !def.Active {
		return Result{Value: def.Default, Decision: Decision{Kind: DecisionFlagInactive}}
	}

	bucket := Bucket(def.Salt, def.ID.Name, ctx)

	var skipped *SkippedByRampUp
	for i, rule := range def.Rules {
		if !rule.MatchesAll(ctx) {
			continue
		}
		threshold := rule.RampUp.Threshold()
		if bucket < threshold || rule.Allowlisted(ctx.StableID.Hex()) {
			return Result{
				Value: rule.Value,
				Decision: Decision{
					Kind:      DecisionRuleMatched,
					RuleIndex: i,
					Bucket:    bucket,
					RampUp:    rule.RampUp.Percent(),
				},
			}
		}
		if skipped == nil {
			skipped = &SkippedByRampUp{RuleIndex: i, Bucket: bucket, RampUp: rule.RampUp.Percent()}
		}
	}

	return Result{
		Value:    def.Default,
		Decision: Decision{Kind: DecisionDefaultReturned, SkippedRampUp: skipped},
	}
}
