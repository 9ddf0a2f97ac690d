package predicate

import (
	"testing"

	"github.com/konditional-dev/konditional/criteria"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	c := criteria.Custom{Name: "is-staff", Pred: func(criteria.Context) bool { return true }, DeclaredSpecificity: 2}
	if err := reg.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := reg.Lookup("is-staff")
	if !ok {
		t.Fatal("expected is-staff to be found")
	}
	if got.Specificity() != 2 {
		t.Errorf("Specificity() = %d, want 2", got.Specificity())
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Lookup("nope"); ok {
		t.Error("expected nope to be absent")
	}
}

func TestRegistry_RegisterRejectsBlankName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(criteria.Custom{}); err != ErrBlankName {
		t.Errorf("expected ErrBlankName, got %v", err)
	}
}

func TestRegistry_RegisterRejectsDuplicate(t *testing.T) {
	reg := NewRegistry()
	c := criteria.Custom{Name: "dup"}
	if err := reg.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register(c); err == nil {
		t.Error("expected an error registering a duplicate name")
	}
}
