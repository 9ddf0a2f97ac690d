package flag

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/konditional-dev/konditional/criteria"
)

// EvalCache memoizes EvaluateWithTrace results keyed by a fast digest of
// (generation, flag, context) rather than running the rule loop again for
// a repeated identical request. generation is supplied by the caller
// (typically the owning registry.Snapshot's metadata version) so a config
// reload invalidates the cache simply by changing generation — EvalCache
// itself never inspects snapshot state.
//
// xxhash is used for the digest, not SHA-256: this is an internal map
// key, never the rollout decision itself, so speed matters more than the
// cryptographic properties Bucket depends on.
type EvalCache struct {
	mu sync.RWMutex
	m  map[uint64]Result
}

// NewEvalCache builds an empty cache.
func NewEvalCache() *EvalCache {
	return &EvalCache{m: make(map[uint64]Result)}
}

// Evaluate returns the cached Result for (generation, def, ctx) if
// present, otherwise computes it via EvaluateWithTrace and stores it.
//
// The cache key only covers criteria.Context's own fields. A host that
// embeds Context in a larger struct and consults the extra fields from a
// Custom predicate must not share an EvalCache across contexts that
// differ only in those extra fields.
func (c *EvalCache) Evaluate(generation string, def Definition, ctx criteria.Context) Result {
	key := cacheKey(generation, def, ctx)

	c.mu.RLock()
	if r, ok := c.m[key]; ok {
		c.mu.RUnlock()
		return r
	}
	c.mu.RUnlock()

	result := EvaluateWithTrace(def, ctx)

	c.mu.Lock()
	c.m[key] = result
	c.mu.Unlock()
	return result
}

// Reset discards every cached entry. Callers invalidate this way when a
// generation value might be reused (e.g. a rollback to a prior version).
func (c *EvalCache) Reset() {
	c.mu.Lock()
	c.m = make(map[uint64]Result)
	c.mu.Unlock()
}

func cacheKey(generation string, def Definition, ctx criteria.Context) uint64 {
	h := xxhash.New()
	sep := []byte{0}
	h.WriteString(generation)
	h.Write(sep)
	h.WriteString(def.ID.Render())
	h.Write(sep)
	h.WriteString(ctx.PlatformTag)
	h.Write(sep)
	h.WriteString(ctx.LocaleTag)
	h.Write(sep)
	h.WriteString(ctx.StableID.Hex())
	h.Write(sep)
	h.WriteString(ctx.AppVersion.String())
	h.Write(sep)
	if ctx.StableIDFallback {
		h.Write([]byte{1})
	}

	axes := make([]string, 0, len(ctx.Axes))
	for k := range ctx.Axes {
		axes = append(axes, k)
	}
	sort.Strings(axes)
	for _, k := range axes {
		h.Write(sep)
		h.WriteString(k)
		h.Write(sep)
		h.WriteString(ctx.Axes[k])
	}

	return h.Sum64()
}
