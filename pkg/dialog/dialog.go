package dialog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/field"
	"github.com/goliatone/go-adminspec/pkg/policy"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

// Dialog is a live add or delete dialog: the field container built from an
// entity.Dialog plus the policies attached to it. A Dialog is driven from a
// single event loop and is not safe for concurrent use.
type Dialog struct {
	spec           entity.Dialog
	container      *field.Container
	policies       []policy.Policy
	policyRegistry *policy.Registry
	validators     *validation.Registry
	transform      SubmitTransformer
	logger         *zap.Logger
	closed         bool
}

// New builds the dialog's fields and attaches every declared policy. If a
// policy cannot be built or attached the container is destroyed and the error
// is returned, so the dialog never becomes interactive. A missing field
// surfaces as a *policy.ConfigurationError.
func New(spec entity.Dialog, opts ...Option) (*Dialog, error) {
	d := &Dialog{
		spec:   spec,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.policyRegistry == nil {
		d.policyRegistry = policy.NewRegistry()
	}
	if d.validators == nil {
		d.validators = validation.NewRegistry()
	}

	d.container = field.NewContainer(spec.Fields)
	for _, ref := range spec.Policies {
		p, err := d.policyRegistry.Build(ref, policy.WithLogger(d.logger))
		if err != nil {
			d.container.Destroy()
			return nil, fmt.Errorf("dialog %q: %w", spec.Title, err)
		}
		if err := p.Attach(d.container); err != nil {
			d.container.Destroy()
			return nil, fmt.Errorf("dialog %q: %w", spec.Title, err)
		}
		d.policies = append(d.policies, p)
	}

	d.logger.Debug("dialog opened",
		zap.String("title", spec.Title),
		zap.Int("fields", len(spec.Fields)),
		zap.Int("policies", len(d.policies)),
	)
	return d, nil
}

// Spec returns the declaration the dialog was built from.
func (d *Dialog) Spec() entity.Dialog { return d.spec }

// Container exposes the runtime fields.
func (d *Dialog) Container() *field.Container { return d.container }

// Field returns the runtime field named name.
func (d *Dialog) Field(name string) (*field.Field, bool) {
	return d.container.Get(name)
}

// PromptOrder returns the fields in declaration order, except that the mode
// field of an attached policy is moved ahead of its first dependant when it is
// declared after it.
func (d *Dialog) PromptOrder() []*field.Field {
	fields := d.container.Fields()
	for _, p := range d.policies {
		driver, ok := p.(policy.Driver)
		if !ok {
			continue
		}
		fields = moveBefore(fields, driver.ModeField(), driver.Dependants())
	}
	return fields
}

func moveBefore(fields []*field.Field, mode string, dependants []string) []*field.Field {
	deps := make(map[string]struct{}, len(dependants))
	for _, name := range dependants {
		deps[name] = struct{}{}
	}
	modeIdx, first := -1, -1
	for i, f := range fields {
		if f.Name() == mode {
			modeIdx = i
			continue
		}
		if _, ok := deps[f.Name()]; ok && first < 0 {
			first = i
		}
	}
	if modeIdx < 0 || first < 0 || modeIdx < first {
		return fields
	}

	out := make([]*field.Field, 0, len(fields))
	out = append(out, fields[:first]...)
	out = append(out, fields[modeIdx])
	out = append(out, fields[first:modeIdx]...)
	return append(out, fields[modeIdx+1:]...)
}

// Set assigns a value as user input would. Disabled fields reject input.
func (d *Dialog) Set(name, value string) error {
	if d.closed {
		return ErrClosed
	}
	f, ok := d.container.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	if !f.Enabled() {
		return fmt.Errorf("%w: %q", ErrFieldDisabled, name)
	}
	f.SetValue(value)
	return nil
}

// Close detaches every policy and destroys the container. It is safe to call
// more than once.
func (d *Dialog) Close() {
	if d == nil || d.closed {
		return
	}
	d.closed = true
	for _, p := range d.policies {
		p.Detach()
	}
	d.container.Destroy()
	d.logger.Debug("dialog closed", zap.String("title", d.spec.Title))
}

// Closed reports whether Close has been called.
func (d *Dialog) Closed() bool { return d.closed }
