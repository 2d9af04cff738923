package validation

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-adminspec/pkg/entity"
)

// Built-in validator kinds.
const (
	KindRequired     = "required"
	KindSamePassword = "same_password"
	KindURI          = "uri"
)

// ErrUnknownValidator is returned when a field references an unregistered
// validator kind.
var ErrUnknownValidator = errors.New("validation: unknown validator")

// Input carries everything a validator may inspect.
type Input struct {
	Field  entity.FieldSpec
	Value  string
	Params map[string]string
	// Values holds the current value of every field in the dialog.
	Values map[string]string
}

// Validator checks a single field value. A non-nil error is reported to the
// user as the field's message.
type Validator interface {
	Validate(in Input) error
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(in Input) error

// Validate delegates to the underlying function.
func (fn ValidatorFunc) Validate(in Input) error {
	return fn(in)
}

// Registry resolves validator kinds declared in entity definitions.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry returns a registry with the built-in validators registered.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]Validator)}
	r.Register(KindRequired, ValidatorFunc(validateRequired))
	r.Register(KindSamePassword, ValidatorFunc(validateSamePassword))
	r.Register(KindURI, ValidatorFunc(validateURI))
	return r
}

// Register adds or replaces the validator for kind.
func (r *Registry) Register(kind string, v Validator) {
	if r == nil || v == nil {
		return
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.validators == nil {
		r.validators = make(map[string]Validator)
	}
	r.validators[kind] = v
}

// Lookup returns the validator registered for kind.
func (r *Registry) Lookup(kind string) (Validator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[kind]
	return v, ok
}

// Kinds lists registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]string, 0, len(r.validators))
	for kind := range r.validators {
		out = append(out, kind)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// ValidateField runs the required check and every declared validator of spec
// against value. Field failures are returned as Errors; an unknown validator
// kind is a configuration problem and is returned as error.
func (r *Registry) ValidateField(spec entity.FieldSpec, value string, values map[string]string) (Errors, error) {
	var out Errors
	if spec.Required {
		if err := validateRequired(Input{Field: spec, Value: value, Values: values}); err != nil {
			out = append(out, Error{Field: spec.Name, Message: err.Error()})
			return out, nil
		}
	}

	for _, ref := range spec.Validators {
		v, ok := r.Lookup(ref.Kind)
		if !ok {
			return nil, fmt.Errorf("%w %q on field %q", ErrUnknownValidator, ref.Kind, spec.Name)
		}
		in := Input{Field: spec, Value: value, Params: ref.Params, Values: values}
		if err := v.Validate(in); err != nil {
			out = append(out, Error{Field: spec.Name, Message: err.Error()})
		}
	}
	return out, nil
}

func validateRequired(in Input) error {
	if strings.TrimSpace(in.Value) == "" {
		return errors.New("Required field")
	}
	return nil
}

func validateSamePassword(in Input) error {
	other := in.Params["other_field"]
	if other == "" {
		return errors.New("validator misconfigured: other_field is missing")
	}
	if in.Value != in.Values[other] {
		return errors.New("Passwords must match")
	}
	return nil
}

// validateURI accepts empty values; presence is the required check's concern.
func validateURI(in Input) error {
	value := strings.TrimSpace(in.Value)
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return errors.New("Invalid URI: not an https scheme")
	}
	if parsed.Host == "" {
		return errors.New("Invalid URI: missing netloc")
	}
	return nil
}
