package policy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/field"
)

// Policy is a behaviour attached to a dialog's field container that enforces
// cross-field rules for the lifetime of that container.
type Policy interface {
	// Attach binds the policy to c. Implementations must not mutate any field
	// when Attach fails.
	Attach(c *field.Container) error
	// Detach releases every subscription held by the policy.
	Detach()
}

// Driver is implemented by policies driven by a single mode field. Hosts that
// collect input one field at a time ask for ModeField before any of the
// Dependants.
type Driver interface {
	ModeField() string
	Dependants() []string
}

// ConfigurationError reports a field referenced by a policy that does not
// exist in the container. It signals a mismatch between the declared entity
// and the runtime dialog and must abort dialog construction.
type ConfigurationError struct {
	Policy string
	Field  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("policy %s: field %q not found in container", e.Policy, e.Field)
}

// Option customises a policy.
type Option func(*options)

type options struct {
	name   string
	logger *zap.Logger
}

// WithLogger routes policy diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName overrides the name used in errors and log entries.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func buildOptions(defaultName string, opts []Option) options {
	out := options{name: defaultName, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
