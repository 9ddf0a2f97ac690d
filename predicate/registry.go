package predicate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/konditional-dev/konditional/criteria"
)

// ErrBlankName is returned by Register when a custom criterion has no name.
var ErrBlankName = errors.New("predicate: custom criterion must have a non-empty name")

// Registry holds the custom criteria a container's source declares,
// keyed by name, so Merge can resolve CustomRef placeholders against
// them. Safe for concurrent use. wire.Decode does not consult a Registry.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]criteria.Custom
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]criteria.Custom)}
}

// Register adds c, failing if its name is blank or already registered.
func (r *Registry) Register(c criteria.Custom) error {
	if c.Name == "" {
		return ErrBlankName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[c.Name]; exists {
		return fmt.Errorf("predicate: %q already registered", c.Name)
	}
	r.byName[c.Name] = c
	return nil
}

// Lookup returns the registered Custom criterion for name, if any.
func (r *Registry) Lookup(name string) (criteria.Custom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}
