package validation

import (
	"errors"
	"sort"
	"strings"
)

// Error is a validation failure scoped to a single field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors aggregates field-level failures. A nil or empty Errors means the
// input passed validation.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return "validation: " + strings.Join(parts, "; ")
}

// FieldScoped is implemented by errors raised outside the validators that
// still belong to a single field, such as submit transformer failures.
type FieldScoped interface {
	error
	FieldName() string
	FieldMessage() string
}

// FromError extracts field failures from err. It reports false when err
// carries neither Errors nor a FieldScoped error.
func FromError(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	var scoped FieldScoped
	if errors.As(err, &scoped) {
		return Errors{{Field: scoped.FieldName(), Message: scoped.FieldMessage()}}, true
	}
	return nil, false
}

// Fields groups messages by field name, trimming and deduplicating them while
// preserving their order.
func (e Errors) Fields() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, err := range e {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	for field, messages := range out {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(out, field)
			continue
		}
		out[field] = normalized
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// For returns the messages attached to field.
func (e Errors) For(field string) []string {
	return e.Fields()[field]
}

// Names lists the fields with at least one failure in lexical order.
func (e Errors) Names() []string {
	fields := e.Fields()
	out := make([]string, 0, len(fields))
	for name := range fields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
