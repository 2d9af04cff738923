package field

import "github.com/goliatone/go-adminspec/pkg/entity"

// Container owns the runtime fields of one dialog instance. Destroying the
// container drops every listener registered on its fields so nothing observes
// a dialog that is gone.
type Container struct {
	order     []*Field
	byName    map[string]*Field
	onDestroy []func()
	destroyed bool
}

// NewContainer builds runtime fields for the supplied declarations, preserving
// their order.
func NewContainer(specs []entity.FieldSpec) *Container {
	c := &Container{
		order:  make([]*Field, 0, len(specs)),
		byName: make(map[string]*Field, len(specs)),
	}
	for _, spec := range specs {
		f := New(spec)
		c.order = append(c.order, f)
		c.byName[spec.Name] = f
	}
	return c
}

// Get returns the field named name.
func (c *Container) Get(name string) (*Field, bool) {
	if c == nil {
		return nil, false
	}
	f, ok := c.byName[name]
	return f, ok
}

// Fields returns the fields in declaration order.
func (c *Container) Fields() []*Field {
	if c == nil {
		return nil
	}
	return append([]*Field(nil), c.order...)
}

// EnabledStates snapshots the enabled flag of every field.
func (c *Container) EnabledStates() map[string]bool {
	if c == nil {
		return nil
	}
	out := make(map[string]bool, len(c.order))
	for _, f := range c.order {
		out[f.Name()] = f.Enabled()
	}
	return out
}

// Values snapshots the value of every field.
func (c *Container) Values() map[string]string {
	if c == nil {
		return nil
	}
	out := make(map[string]string, len(c.order))
	for _, f := range c.order {
		out[f.Name()] = f.Value()
	}
	return out
}

// OnDestroy registers a hook that runs once when the container is destroyed.
// Hooks registered after destruction run immediately.
func (c *Container) OnDestroy(fn func()) {
	if c == nil || fn == nil {
		return
	}
	if c.destroyed {
		fn()
		return
	}
	c.onDestroy = append(c.onDestroy, fn)
}

// Destroy runs destroy hooks in reverse registration order and clears every
// remaining listener. Subsequent calls are no-ops.
func (c *Container) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true
	for i := len(c.onDestroy) - 1; i >= 0; i-- {
		c.onDestroy[i]()
	}
	c.onDestroy = nil
	for _, f := range c.order {
		f.clearListeners()
	}
}

// Destroyed reports whether Destroy has been called.
func (c *Container) Destroyed() bool {
	return c != nil && c.destroyed
}
