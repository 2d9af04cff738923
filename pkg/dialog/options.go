package dialog

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/policy"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

// SubmitTransformer rewrites a validated payload before it is handed to the
// caller, e.g. to expand a provider template into endpoints.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Option configures a Dialog.
type Option func(*Dialog)

// WithPolicyRegistry overrides the registry used to build declared policies.
func WithPolicyRegistry(registry *policy.Registry) Option {
	return func(d *Dialog) {
		if registry != nil {
			d.policyRegistry = registry
		}
	}
}

// WithValidators overrides the validator registry.
func WithValidators(registry *validation.Registry) Option {
	return func(d *Dialog) {
		if registry != nil {
			d.validators = registry
		}
	}
}

// WithLogger routes dialog and policy diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dialog) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSubmitTransformer registers fn to run on the payload after validation.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(d *Dialog) {
		d.transform = fn
	}
}
