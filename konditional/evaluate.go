// Package konditional is the public entry point composing the pure
// per-flag evaluator (flag), the registry's atomic snapshot and kill
// switch (registry), and the hooks dispatched on every call (spec §4.6).
package konditional

import (
	"time"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/hooks"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/value"
)

// Evaluate is the fast path: kill switch, then override, then the pure
// evaluator. One hooks.EvaluationEvent is emitted per call.
func Evaluate(container *registry.Container, id value.FlagId, ctx criteria.Context) value.Value {
	return EvaluateWithTrace(container, id, ctx).Value
}

// EvaluateWithTrace is Evaluate but returns the full decision trace, for
// diagnostics and as the building block for EvaluateWithShadow.
func EvaluateWithTrace(container *registry.Container, id value.FlagId, ctx criteria.Context) flag.Result {
	start := time.Now()
	result := evaluateOnce(container, id, ctx)
	emitEvaluationMetric(container, id, ctx, result, time.Since(start))
	return result
}

func evaluateOnce(container *registry.Container, id value.FlagId, ctx criteria.Context) flag.Result {
	snap := container.Current()
	def, ok := snap.Get(id)
	if !ok {
		// No declaration for this FlagId in the current snapshot: the
		// caller asked about a flag the container never registered.
		// Evaluate must still be total, so this returns the zero value
		// rather than panicking; callers should treat it as a
		// programmer error (undeclared flag) and not as a targeting
		// outcome.
		return flag.Result{Decision: flag.Decision{Kind: flag.DecisionFlagInactive}}
	}

	if container.IsAllDisabled() {
		return flag.Result{Value: def.Default, Decision: flag.Decision{Kind: flag.DecisionContainerDisabled}}
	}
	if v, ok := container.Override(id); ok {
		return flag.Result{Value: v, Decision: flag.Decision{Kind: flag.DecisionOverride}}
	}
	return flag.EvaluateWithTrace(def, ctx)
}

func emitEvaluationMetric(container *registry.Container, id value.FlagId, ctx criteria.Context, result flag.Result, dur time.Duration) {
	h := container.Hooks()
	h.Metrics.RecordEvaluation(hooks.EvaluationEvent{
		FlagID:       id.Render(),
		ContainerID:  id.Container,
		DecisionKind: string(result.Decision.Kind),
		Platform:     ctx.PlatformTag,
		DurationNS:   dur.Nanoseconds(),
	})
}
