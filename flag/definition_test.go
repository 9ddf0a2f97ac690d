package flag

import (
	"testing"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/value"
)

func mustFlagID(t *testing.T, container, name string) value.FlagId {
	t.Helper()
	id, err := value.NewFlagID(container, name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return id
}

func mustRampUp(t *testing.T, p float64) value.RampUp {
	t.Helper()
	r, err := value.NewRampUp(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

// S1 — Platform-specific rule beats ramp-up.
func TestEvaluate_S1_PlatformRuleBeatsRampUp(t *testing.T) {
	full := mustRampUp(t, 100)
	rule := criteria.NewRule(value.Bool(true), []criteria.Criterion{criteria.NewPlatforms("iOS")}, full, nil, "")
	def := NewDefinition(mustFlagID(t, "app", "dark_mode"), value.KindBoolean, value.Bool(false), []criteria.Rule{rule}, true, "salt")

	ctx := ctxFor(t, "abc")
	ctx.PlatformTag = "iOS"

	result := EvaluateWithTrace(def, ctx)
	if !result.Value.Equal(value.Bool(true)) {
		t.Errorf("expected true, got %+v", result.Value)
	}
	if result.Decision.Kind != DecisionRuleMatched || result.Decision.RuleIndex != 0 {
		t.Errorf("expected RuleMatched{rule_index=0}, got %+v", result.Decision)
	}
}

// S2 — Ramp-up gating across 10,000 distinct stable ids.
func TestEvaluate_S2_RampUpGating(t *testing.T) {
	ramp := mustRampUp(t, 30)
	rule := criteria.NewRule(value.Bool(true), []criteria.Criterion{criteria.NewPlatforms("android")}, ramp, nil, "")
	def := NewDefinition(mustFlagID(t, "app", "beta"), value.KindBoolean, value.Bool(false), []criteria.Rule{rule}, true, "v1")

	enabled := 0
	for i := 0; i < 10000; i++ {
		ctx := ctxFor(t, "stable-"+itoa(i))
		ctx.PlatformTag = "android"
		result := EvaluateWithTrace(def, ctx)
		if result.Value.Equal(value.Bool(true)) {
			enabled++
			if result.Decision.Kind != DecisionRuleMatched {
				t.Fatalf("enabled context has unexpected decision: %+v", result.Decision)
			}
		} else if result.Decision.Kind != DecisionDefaultReturned || result.Decision.SkippedRampUp == nil {
			t.Fatalf("disabled context expected DefaultReturned with skipped_by_ramp_up, got %+v", result.Decision)
		}
	}
	if enabled < 2700 || enabled > 3300 {
		t.Errorf("enabled count = %d, want in [2700, 3300]", enabled)
	}
}

// S3 — Specificity ordering.
func TestEvaluate_S3_SpecificityOrdering(t *testing.T) {
	full := mustRampUp(t, 100)
	specific := criteria.NewRule(value.Bool(true), []criteria.Criterion{criteria.NewPlatforms("iOS"), criteria.NewLocales("en-US")}, full, nil, "specific")
	general := criteria.NewRule(value.Bool(true), []criteria.Criterion{criteria.NewPlatforms("iOS")}, full, nil, "general")

	def := NewDefinition(mustFlagID(t, "app", "x"), value.KindBoolean, value.Bool(false), []criteria.Rule{specific, general}, true, "salt")

	ctx := ctxFor(t, "abc")
	ctx.PlatformTag = "iOS"
	ctx.LocaleTag = "fr-FR"

	result := EvaluateWithTrace(def, ctx)
	if !result.Value.Equal(value.Bool(true)) {
		t.Errorf("expected true, got %+v", result.Value)
	}
	if result.Decision.Kind != DecisionRuleMatched || result.Decision.RuleIndex != 1 {
		t.Errorf("expected the general rule (index 1, after locale mismatch skips the specific one), got %+v", result.Decision)
	}
}

// S4 — Allowlist bypass.
func TestEvaluate_S4_AllowlistBypass(t *testing.T) {
	low := mustRampUp(t, 5)
	tester, err := value.StableIDOf("tester-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rule := criteria.NewRule(value.Bool(true), []criteria.Criterion{criteria.NewPlatforms("iOS")}, low, []string{tester.Hex()}, "")
	def := NewDefinition(mustFlagID(t, "app", "launch"), value.KindBoolean, value.Bool(false), []criteria.Rule{rule}, true, "salt")

	ctx := criteria.Context{PlatformTag: "iOS", StableID: tester}
	result := EvaluateWithTrace(def, ctx)
	if !result.Value.Equal(value.Bool(true)) {
		t.Errorf("expected allowlist to bypass the ramp-up gate, got %+v", result.Value)
	}
	if result.Decision.Kind != DecisionRuleMatched {
		t.Errorf("expected RuleMatched, got %+v", result.Decision)
	}
}

func TestEvaluate_InactiveShortCircuits(t *testing.T) {
	full := mustRampUp(t, 100)
	rule := criteria.NewRule(value.Bool(true), nil, full, nil, "")
	def := NewDefinition(mustFlagID(t, "app", "x"), value.KindBoolean, value.Bool(false), []criteria.Rule{rule}, false, "salt")

	result := EvaluateWithTrace(def, criteria.Context{})
	if !result.Value.Equal(value.Bool(false)) {
		t.Errorf("expected default value for inactive flag, got %+v", result.Value)
	}
	if result.Decision.Kind != DecisionFlagInactive {
		t.Errorf("expected FlagInactive, got %+v", result.Decision)
	}
}

func TestEvaluate_NoRulesReturnsDefault(t *testing.T) {
	def := NewDefinition(mustFlagID(t, "app", "x"), value.KindBoolean, value.Bool(true), nil, true, "salt")
	result := EvaluateWithTrace(def, criteria.Context{})
	if !result.Value.Equal(value.Bool(true)) {
		t.Errorf("expected default value, got %+v", result.Value)
	}
	if result.Decision.Kind != DecisionDefaultReturned || result.Decision.SkippedRampUp != nil {
		t.Errorf("expected DefaultReturned with no skipped rule, got %+v", result.Decision)
	}
}
