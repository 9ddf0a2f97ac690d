package konditional

import (
	"fmt"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/value"
)

// ShadowMismatch describes a baseline/candidate disagreement surfaced by
// EvaluateWithShadow (spec §4.6). CtxSummary is a human-readable rendering
// of the request context, never the context itself, so mismatch handlers
// stay decoupled from criteria.Context's shape.
type ShadowMismatch struct {
	FlagID     value.FlagId
	Baseline   flag.Result
	Candidate  flag.Result
	CtxSummary string
}

// ShadowOptions configures EvaluateWithShadow.
type ShadowOptions struct {
	// EvaluateCandidateWhenBaselineDisabled, when false (the default),
	// short-circuits before touching the candidate container once the
	// baseline reports CONTAINER_DISABLED — a disabled container means
	// nobody should be exercising the candidate path for this call either.
	EvaluateCandidateWhenBaselineDisabled bool
	// CompareDecisionKind additionally flags a mismatch when the two
	// decisions differ in kind even though the resolved value agrees
	// (e.g. one side matched a rule, the other fell through to default
	// with the same value by coincidence).
	CompareDecisionKind bool
	// OnMismatch is invoked synchronously on the evaluating goroutine for
	// every detected mismatch. A nil OnMismatch means mismatches are only
	// logged via hooks, not delivered to the caller.
	OnMismatch func(ShadowMismatch)
}

// EvaluateWithShadow evaluates a flag against a baseline registry (whose
// value is returned to the caller) and a candidate registry (evaluated
// for comparison only, never observed by the caller). This is the
// mechanism for rolling out a config or engine change in production
// without it affecting real decisions (spec §4.6).
func EvaluateWithShadow(baseline, candidate *registry.Container, id value.FlagId, ctx criteria.Context, opts ShadowOptions) value.Value {
	baselineResult := EvaluateWithTrace(baseline, id, ctx)

	if !opts.EvaluateCandidateWhenBaselineDisabled && baselineResult.Decision.Kind == flag.DecisionContainerDisabled {
		return baselineResult.Value
	}

	candidateResult := EvaluateWithTrace(candidate, id, ctx)

	mismatched := !baselineResult.Value.Equal(candidateResult.Value)
	if !mismatched && opts.CompareDecisionKind {
		mismatched = baselineResult.Decision.Kind != candidateResult.Decision.Kind
	}
	if mismatched {
		mismatch := ShadowMismatch{
			FlagID:     id,
			Baseline:   baselineResult,
			Candidate:  candidateResult,
			CtxSummary: summarizeContext(ctx),
		}
		baseline.Hooks().Logger.Warn(fmt.Sprintf("shadow mismatch for %s", id.Render()), nil)
		if opts.OnMismatch != nil {
			opts.OnMismatch(mismatch)
		}
	}

	return baselineResult.Value
}

func summarizeContext(ctx criteria.Context) string {
	return fmt.Sprintf("platform=%s locale=%s stableId=%s", ctx.PlatformTag, ctx.LocaleTag, ctx.StableID.Hex())
}
