package registry

import (
	"sync"
	"sync/atomic"

	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/hooks"
	"github.com/konditional-dev/konditional/value"
)

// defaultHistoryCapacity bounds the in-process rollback ring when a
// Container is built via NewContainer without an explicit capacity.
const defaultHistoryCapacity = 16

// Container is a single flag namespace's registry: the atomically
// published current snapshot, its bounded history, the kill switch, test
// overrides, and the hooks dispatched on every evaluation (spec §4.4).
//
// Reads (Current) are wait-free atomic pointer loads. Every write
// (Load, Rollback, UpdateDefinition, the kill switch, overrides, hooks)
// is serialized through mu; the critical section only ever swaps a
// pointer and updates small in-memory bookkeeping, never does I/O.
type Container struct {
	current atomic.Pointer[Snapshot]

	mu          sync.Mutex
	history     *history
	allDisabled bool
	overrides   map[string]value.Value
	hooks       hooks.Hooks
}

// NewContainer builds an empty Container with the default history
// capacity and no-op hooks.
func NewContainer() *Container {
	return NewContainerWithHistory(defaultHistoryCapacity)
}

// NewContainerWithHistory builds an empty Container with an explicit
// bounded-history capacity.
func NewContainerWithHistory(historyCapacity int) *Container {
	c := &Container{
		history:   newHistory(historyCapacity),
		overrides: make(map[string]value.Value),
		hooks:     hooks.With(hooks.Hooks{}),
	}
	empty := NewSnapshot(Metadata{}, map[string]flag.Definition{})
	c.current.Store(&empty)
	return c
}

// Current returns the currently published snapshot. Lock-free: a single
// atomic pointer load (spec §4.4: "current() is lock-free").
func (c *Container) Current() Snapshot {
	return *c.current.Load()
}

// Load atomically publishes snapshot as current, pushing the previous
// current onto history (bounded, drop-oldest).
func (c *Container) Load(snapshot Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.current.Load()
	c.current.Store(&snapshot)
	c.history.push(*previous)
}

// Rollback restores the snapshot that was current n loads ago (n >= 1),
// discarding history entries newer than the restored point. Returns
// false without any state change if fewer than n entries exist (spec
// §4.4: "the only operation that may refuse"). Every attempt, whether it
// succeeds or is refused, is reported through the installed hooks.
func (c *Container) Rollback(n int) bool {
	if n < 1 {
		c.Hooks().Metrics.RecordConfigRollback(hooks.ConfigRollbackEvent{Steps: n, Success: false})
		return false
	}
	c.mu.Lock()
	target, ok := c.history.at(n)
	if !ok {
		c.mu.Unlock()
		c.Hooks().Metrics.RecordConfigRollback(hooks.ConfigRollbackEvent{Steps: n, Success: false})
		return false
	}
	c.current.Store(&target)
	c.history.truncateTo(c.history.len() - n)
	h := c.hooks
	c.mu.Unlock()
	h.Metrics.RecordConfigRollback(hooks.ConfigRollbackEvent{Steps: n, Success: true})
	return true
}

// UpdateDefinition replaces a single flag definition in the current
// snapshot without appending to history. Reserved for container
// initialization, while in-source declarations register their defaults
// and compile-time rules (spec §4.4).
func (c *Container) UpdateDefinition(def flag.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.current.Load()
	updated := current.WithDefinition(def)
	c.current.Store(&updated)
}

// DisableAll engages the kill switch: every evaluation in this
// container returns its declared default until re-enabled.
func (c *Container) DisableAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allDisabled = true
}

// EnableAll disengages the kill switch.
func (c *Container) EnableAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.allDisabled = false
}

// IsAllDisabled reports whether the kill switch is currently engaged.
func (c *Container) IsAllDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allDisabled
}

// SetOverride installs a test-only override: every evaluation of id
// short-circuits to v until cleared (spec §4.4).
func (c *Container) SetOverride(id value.FlagId, v value.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[id.Render()] = v
}

// ClearOverride removes any override for id.
func (c *Container) ClearOverride(id value.FlagId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.overrides, id.Render())
}

// Override returns the active override for id, if any.
func (c *Container) Override(id value.FlagId) (value.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.overrides[id.Render()]
	return v, ok
}

// SetHooks replaces the logger/metrics emitter dispatched on the hot
// path. Must be quick — callers should not install hooks here that
// themselves block (spec §4.4).
func (c *Container) SetHooks(h hooks.Hooks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = hooks.With(h)
}

// Hooks returns the currently installed hooks.
func (c *Container) Hooks() hooks.Hooks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hooks
}
