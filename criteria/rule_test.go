package criteria

import (
	"testing"

	"github.com/konditional-dev/konditional/value"
)

func TestRule_SpecificityIsSumOfCriteria(t *testing.T) {
	ramp, _ := value.NewRampUp(100)
	r := NewRule(value.Bool(true), []Criterion{NewPlatforms("ios"), NewLocales("en-US")}, ramp, nil, "")
	if r.Specificity() != 2 {
		t.Errorf("Specificity() = %d, want 2", r.Specificity())
	}
}

func TestRule_MatchesAll_ANDSemantics(t *testing.T) {
	ramp, _ := value.NewRampUp(100)
	r := NewRule(value.Bool(true), []Criterion{NewPlatforms("ios"), NewLocales("en-US")}, ramp, nil, "")

	if !r.MatchesAll(Context{PlatformTag: "ios", LocaleTag: "en-US"}) {
		t.Error("expected match when both criteria match")
	}
	if r.MatchesAll(Context{PlatformTag: "ios", LocaleTag: "fr-FR"}) {
		t.Error("expected no match when one criterion fails")
	}
}

func TestRule_Allowlisted(t *testing.T) {
	ramp, _ := value.NewRampUp(5)
	r := NewRule(value.Bool(true), nil, ramp, []string{"abc123"}, "")
	if !r.Allowlisted("abc123") {
		t.Error("expected abc123 to be allowlisted")
	}
	if r.Allowlisted("other") {
		t.Error("expected other to not be allowlisted")
	}
	if r.Allowlisted("") {
		t.Error("expected empty stable id to never be allowlisted")
	}
}

func TestSortByPrecedence_SpecificityDescThenStableOrder(t *testing.T) {
	ramp, _ := value.NewRampUp(100)
	low := NewRule(value.Bool(false), []Criterion{NewPlatforms("ios")}, ramp, nil, "low-1")
	low2 := NewRule(value.Bool(false), []Criterion{NewLocales("en-US")}, ramp, nil, "low-2")
	high := NewRule(value.Bool(true), []Criterion{NewPlatforms("ios"), NewLocales("en-US")}, ramp, nil, "high")

	sorted := SortByPrecedence([]Rule{low, high, low2})
	if sorted[0].Note != "high" {
		t.Errorf("expected highest-specificity rule first, got %q", sorted[0].Note)
	}
	if sorted[1].Note != "low-1" || sorted[2].Note != "low-2" {
		t.Errorf("expected ties to preserve definition order, got %q then %q", sorted[1].Note, sorted[2].Note)
	}
}
