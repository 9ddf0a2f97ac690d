package criteria

import (
	"testing"

	"github.com/konditional-dev/konditional/value"
)

func TestPlatforms_Matches(t *testing.T) {
	p := NewPlatforms("ios", "android")
	if !p.Matches(Context{PlatformTag: "ios"}) {
		t.Error("expected match for ios")
	}
	if p.Matches(Context{PlatformTag: "web"}) {
		t.Error("expected no match for web")
	}
	if p.Specificity() != 1 {
		t.Errorf("specificity = %d, want 1", p.Specificity())
	}
}

func TestPlatforms_EmptySetNeverMatches(t *testing.T) {
	p := Platforms{}
	if p.Matches(Context{PlatformTag: "ios"}) {
		t.Error("empty platform set must never match")
	}
	if p.Specificity() != 0 {
		t.Errorf("specificity = %d, want 0", p.Specificity())
	}
}

func TestVersionRange_Matches(t *testing.T) {
	min, _ := value.ParseVersion("1.0.0")
	max, _ := value.ParseVersion("2.0.0")
	r := VersionRange{Min: min, HasMin: true, Max: max, HasMax: true}

	v1, _ := value.ParseVersion("1.5.0")
	if !r.Matches(Context{AppVersion: v1}) {
		t.Error("expected 1.5.0 to be within [1.0.0, 2.0.0]")
	}
	v2, _ := value.ParseVersion("2.0.1")
	if r.Matches(Context{AppVersion: v2}) {
		t.Error("expected 2.0.1 to be outside [1.0.0, 2.0.0]")
	}
	if r.Specificity() != 1 {
		t.Errorf("specificity = %d, want 1", r.Specificity())
	}
}

func TestAxis_Matches(t *testing.T) {
	a := NewAxis("theme", "dark", "light")
	ctx := Context{Axes: map[string]string{"theme": "dark"}}
	if !a.Matches(ctx) {
		t.Error("expected match for dark theme")
	}
	if a.Matches(Context{}) {
		t.Error("expected no match when axis is unset")
	}
}

func TestCustom_MatchesDelegatesToPredicate(t *testing.T) {
	c := Custom{Name: "isTester", Pred: func(ctx Context) bool { return ctx.LocaleTag == "qa" }, DeclaredSpecificity: 3}
	if !c.Matches(Context{LocaleTag: "qa"}) {
		t.Error("expected predicate to match")
	}
	if c.Specificity() != 3 {
		t.Errorf("specificity = %d, want 3", c.Specificity())
	}
}

func TestCustom_NilPredicateNeverMatches(t *testing.T) {
	c := Custom{Name: "unresolved"}
	if c.Matches(Context{}) {
		t.Error("nil predicate must never match")
	}
}
