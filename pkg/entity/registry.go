package entity

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds entity definitions by name. Hosting applications construct one
// at startup and pass it to the components that need it. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]Entity
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]Entity)}
}

// Register validates and stores an entity. Registering the same name twice is
// an error.
func (r *Registry) Register(ent Entity) error {
	if r == nil {
		return fmt.Errorf("entity: registry is nil")
	}
	if err := ent.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entities == nil {
		r.entities = make(map[string]Entity)
	}
	if _, exists := r.entities[ent.Name]; exists {
		return fmt.Errorf("entity: duplicate entity %q", ent.Name)
	}
	r.entities[ent.Name] = ent
	return nil
}

// Lookup returns the entity registered under name.
func (r *Registry) Lookup(name string) (Entity, bool) {
	if r == nil {
		return Entity{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entities[name]
	return ent, ok
}

// Names lists registered entity names in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
