package field

import "github.com/goliatone/go-adminspec/pkg/entity"

// Change describes a value assignment on a field.
type Change struct {
	Field string
	Old   string
	New   string
}

// Listener observes value changes.
type Listener func(Change)

type subscription struct {
	id uint64
	fn Listener
}

// Field is the live counterpart of an entity.FieldSpec inside a Container. It
// is strictly single-valued. Fields are not safe for concurrent use; they are
// driven from the owning dialog's event loop.
type Field struct {
	spec    entity.FieldSpec
	value   string
	enabled bool
	subs    []subscription
	nextID  uint64
}

// New creates a field seeded with the declared default value and enabled state.
func New(spec entity.FieldSpec) *Field {
	return &Field{
		spec:    spec,
		value:   spec.DefaultValue,
		enabled: spec.EnabledByDefault(),
	}
}

// Name returns the field name.
func (f *Field) Name() string { return f.spec.Name }

// Spec returns the declaration the field was built from.
func (f *Field) Spec() entity.FieldSpec { return f.spec }

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// Enabled reports whether the field currently accepts input.
func (f *Field) Enabled() bool { return f.enabled }

// SetEnabled updates the enabled flag. The value is left untouched.
func (f *Field) SetEnabled(enabled bool) { f.enabled = enabled }

// SetValue assigns a value and notifies every listener in subscription order.
// Listeners fire on every assignment, including ones that keep the same value.
func (f *Field) SetValue(value string) {
	change := Change{Field: f.spec.Name, Old: f.value, New: value}
	f.value = value

	// Copy so listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), f.subs...)
	for _, sub := range subs {
		sub.fn(change)
	}
}

// OnValueChange registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (f *Field) OnValueChange(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscription{id: id, fn: fn})
	return func() { f.unsubscribe(id) }
}

// Listeners reports the number of registered listeners.
func (f *Field) Listeners() int { return len(f.subs) }

func (f *Field) unsubscribe(id uint64) {
	for i, sub := range f.subs {
		if sub.id == id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

func (f *Field) clearListeners() { f.subs = nil }
