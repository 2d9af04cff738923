package policy

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/field"
)

// Dependency keeps a set of mutually exclusive field groups enabled or
// disabled from the value of a single discrete mode field. The group mapped to
// the active mode is enabled and every other group is disabled. A mode value
// that maps to no group enables every group.
//
// Dependency holds no state beyond its subscription: each application derives
// the enabled flags from the mode value alone.
type Dependency struct {
	opts      options
	modeField string
	groups    map[string][]string
	fields    []string

	mode        *field.Field
	dependants  map[string]*field.Field
	unsubscribe func()
}

// NewDependency builds a policy driven by modeField. groups maps each mode
// value to the names of the fields it enables.
func NewDependency(modeField string, groups map[string][]string, opts ...Option) *Dependency {
	cloned := make(map[string][]string, len(groups))
	seen := make(map[string]struct{})
	var fields []string
	for mode, names := range groups {
		cloned[mode] = append([]string(nil), names...)
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)

	return &Dependency{
		opts:      buildOptions(KindFieldDependency, opts),
		modeField: modeField,
		groups:    cloned,
		fields:    fields,
	}
}

// ModeField returns the name of the field driving the policy.
func (p *Dependency) ModeField() string { return p.modeField }

// Dependants lists the fields whose enabled state the policy controls, in
// lexical order.
func (p *Dependency) Dependants() []string {
	return append([]string(nil), p.fields...)
}

// Attach resolves the mode field and every dependent field in c, applies the
// mapping for the mode field's current value and subscribes to its changes.
// A missing field yields a *ConfigurationError before any field is touched.
func (p *Dependency) Attach(c *field.Container) error {
	if c == nil {
		return errors.New("policy: container is nil")
	}
	if p.mode != nil {
		return fmt.Errorf("policy %s: already attached", p.opts.name)
	}

	mode, ok := c.Get(p.modeField)
	if !ok {
		return &ConfigurationError{Policy: p.opts.name, Field: p.modeField}
	}
	dependants := make(map[string]*field.Field, len(p.fields))
	for _, name := range p.fields {
		f, ok := c.Get(name)
		if !ok {
			return &ConfigurationError{Policy: p.opts.name, Field: name}
		}
		dependants[name] = f
	}

	p.mode = mode
	p.dependants = dependants
	p.apply(mode.Value())
	p.unsubscribe = mode.OnValueChange(func(change field.Change) {
		p.apply(change.New)
	})
	c.OnDestroy(p.Detach)

	p.opts.logger.Debug("policy attached",
		zap.String("policy", p.opts.name),
		zap.String("mode_field", p.modeField),
		zap.Strings("dependants", p.fields),
	)
	return nil
}

// Detach drops the mode field subscription. It is safe to call repeatedly.
func (p *Dependency) Detach() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.mode = nil
	p.dependants = nil
}

// apply sets every dependent field's enabled flag from mode. Values are never
// modified and fields outside the groups are never touched.
func (p *Dependency) apply(mode string) {
	states := p.resolve(mode)
	for _, name := range p.fields {
		if f, ok := p.dependants[name]; ok {
			f.SetEnabled(states[name])
		}
	}
}

// resolve maps a mode value to the enabled state of every dependent field.
func (p *Dependency) resolve(mode string) map[string]bool {
	active, known := p.groups[mode]
	states := make(map[string]bool, len(p.fields))
	if !known {
		p.opts.logger.Debug("unrecognised mode, enabling all groups",
			zap.String("policy", p.opts.name),
			zap.String("mode", mode),
		)
		for _, name := range p.fields {
			states[name] = true
		}
		return states
	}

	for _, name := range p.fields {
		states[name] = false
	}
	for _, name := range active {
		states[name] = true
	}
	p.opts.logger.Debug("mode applied",
		zap.String("policy", p.opts.name),
		zap.String("mode", mode),
	)
	return states
}
