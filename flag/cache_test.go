package flag

import (
	"testing"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/value"
)

func TestEvalCache_HitsReturnSameResult(t *testing.T) {
	id := mustFlagID(t, "app", "dark_mode")
	def := NewDefinition(id, value.KindBoolean, value.Bool(true), nil, true, "salt")
	ctx := criteria.Context{PlatformTag: "ios"}

	cache := NewEvalCache()
	first := cache.Evaluate("v1", def, ctx)
	second := cache.Evaluate("v1", def, ctx)

	if first.Decision.Kind != second.Decision.Kind || !first.Value.Equal(second.Value) {
		t.Errorf("expected identical cached results, got %+v and %+v", first, second)
	}
}

func TestEvalCache_DifferentContextDifferentEntry(t *testing.T) {
	id := mustFlagID(t, "app", "dark_mode")
	def := NewDefinition(id, value.KindBoolean, value.Bool(false), nil, true, "salt")
	cache := NewEvalCache()

	a := criteria.Context{PlatformTag: "ios"}
	b := criteria.Context{PlatformTag: "android"}

	cache.Evaluate("v1", def, a)
	cache.Evaluate("v1", def, b)

	if len(cache.m) != 2 {
		t.Errorf("expected 2 distinct cache entries for differing contexts, got %d", len(cache.m))
	}
}

func TestEvalCache_DifferentGenerationInvalidatesImplicitly(t *testing.T) {
	id := mustFlagID(t, "app", "dark_mode")
	def := NewDefinition(id, value.KindBoolean, value.Bool(true), nil, true, "salt")
	ctx := criteria.Context{PlatformTag: "ios"}

	cache := NewEvalCache()
	cache.Evaluate("v1", def, ctx)
	cache.Evaluate("v2", def, ctx)

	if len(cache.m) != 2 {
		t.Errorf("expected a distinct entry per generation, got %d", len(cache.m))
	}
}

func TestEvalCache_Reset(t *testing.T) {
	id := mustFlagID(t, "app", "dark_mode")
	def := NewDefinition(id, value.KindBoolean, value.Bool(true), nil, true, "salt")
	ctx := criteria.Context{PlatformTag: "ios"}

	cache := NewEvalCache()
	cache.Evaluate("v1", def, ctx)
	cache.Reset()

	if len(cache.m) != 0 {
		t.Errorf("expected Reset to clear all entries, got %d", len(cache.m))
	}
}
