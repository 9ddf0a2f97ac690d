package predicate

import (
	"testing"

	"github.com/konditional-dev/konditional/criteria"
)

func TestFromJSONLogic_SimpleEquality(t *testing.T) {
	c, err := FromJSONLogic("is-premium", `{"==": [{"var": "platform"}, "ios"]}`, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Specificity() != 3 {
		t.Errorf("Specificity() = %d, want 3", c.Specificity())
	}
	if !c.Matches(criteria.Context{PlatformTag: "ios"}) {
		t.Error("expected match for platform=ios")
	}
	if c.Matches(criteria.Context{PlatformTag: "android"}) {
		t.Error("expected no match for platform=android")
	}
}

func TestFromJSONLogic_InArray(t *testing.T) {
	c, err := FromJSONLogic("allowed-locale", `{"in": [{"var": "locale"}, ["en-US", "fr-FR"]]}`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Matches(criteria.Context{LocaleTag: "fr-FR"}) {
		t.Error("expected match for fr-FR")
	}
	if c.Matches(criteria.Context{LocaleTag: "de-DE"}) {
		t.Error("expected no match for de-DE")
	}
}

func TestFromJSONLogic_AxisLookup(t *testing.T) {
	c, err := FromJSONLogic("beta-cohort", `{"==": [{"var": "axes.cohort"}, "beta"]}`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Matches(criteria.Context{Axes: map[string]string{"cohort": "beta"}}) {
		t.Error("expected match for cohort=beta")
	}
	if c.Matches(criteria.Context{Axes: map[string]string{"cohort": "control"}}) {
		t.Error("expected no match for cohort=control")
	}
}

func TestFromJSONLogic_EmptyExpression(t *testing.T) {
	if _, err := FromJSONLogic("blank", "   ", 1); err != ErrEmptyExpression {
		t.Errorf("expected ErrEmptyExpression, got %v", err)
	}
}

func TestFromJSONLogic_InvalidJSON(t *testing.T) {
	if _, err := FromJSONLogic("broken", "{not json", 1); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestValidateExpression(t *testing.T) {
	if err := ValidateExpression(`{"==": [1, 1]}`); err != nil {
		t.Errorf("unexpected error for valid expression: %v", err)
	}
	if err := ValidateExpression(""); err != ErrEmptyExpression {
		t.Errorf("expected ErrEmptyExpression, got %v", err)
	}
}
