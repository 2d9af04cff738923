package policy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-adminspec/pkg/entity"
)

// Built-in policy kinds.
const (
	KindFieldDependency  = "field-dependency"
	KindIdentityProvider = "idp-provider"
)

// ErrUnknownKind is returned when a PolicyRef names an unregistered kind.
var ErrUnknownKind = errors.New("policy: unknown kind")

// Factory builds a policy from its declarative reference.
type Factory func(ref entity.PolicyRef, opts ...Option) (Policy, error)

// Registry maps policy kinds to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in kinds registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(KindFieldDependency, newDependencyFromRef)
	r.Register(KindIdentityProvider, func(_ entity.PolicyRef, opts ...Option) (Policy, error) {
		return NewIdentityProvider(opts...), nil
	})
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[trimmed] = factory
}

// Build instantiates the policy described by ref.
func (r *Registry) Build(ref entity.PolicyRef, opts ...Option) (Policy, error) {
	if r == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, ref.Kind)
	}
	r.mu.RLock()
	factory, ok := r.factories[strings.TrimSpace(ref.Kind)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, ref.Kind)
	}
	return factory(ref, opts...)
}

// Kinds lists registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		out = append(out, kind)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

func newDependencyFromRef(ref entity.PolicyRef, opts ...Option) (Policy, error) {
	if strings.TrimSpace(ref.ModeField) == "" {
		return nil, fmt.Errorf("policy %s: mode_field is required", KindFieldDependency)
	}
	if len(ref.Groups) == 0 {
		return nil, fmt.Errorf("policy %s: at least one group is required", KindFieldDependency)
	}
	return NewDependency(ref.ModeField, ref.Groups, opts...), nil
}
