package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/dialog"
	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/field"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

const (
	i18nPrefix  = "@i18n:"
	emptyOption = "(none)"
)

// Translator resolves "@i18n:" label keys. Returning "" falls back to the
// field name.
type Translator func(key string) string

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTranslator sets the label translator.
func WithTranslator(t Translator) Option {
	return func(r *Runner) {
		r.translate = t
	}
}

// WithLogger routes runner diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts bounds how many times a rejected submission is re-prompted.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// Runner drives a dialog from a terminal. Fields are prompted in the dialog's
// prompt order, which puts a policy's mode field ahead of its dependants, and
// a field is skipped when it is disabled at the time it is reached.
type Runner struct {
	driver      PromptDriver
	translate   Translator
	logger      *zap.Logger
	maxAttempts int
}

// New constructs a Runner backed by survey unless a driver is supplied.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:      zap.NewNop(),
		maxAttempts: 3,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Run prompts every enabled field, submits the dialog and re-prompts the
// fields that failed validation until the submission succeeds or the attempt
// budget runs out.
func (r *Runner) Run(ctx context.Context, d *dialog.Dialog) (map[string]string, error) {
	if d == nil {
		return nil, errors.New("console: dialog is nil")
	}

	pending := d.PromptOrder()
	var lastErrs validation.Errors
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		for _, f := range pending {
			if !f.Enabled() {
				continue
			}
			value, err := r.prompt(ctx, f)
			if err != nil {
				return nil, err
			}
			if err := d.Set(f.Name(), value); err != nil {
				return nil, err
			}
		}

		payload, err := d.Submit()
		if err == nil {
			return payload, nil
		}
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		lastErrs = verrs

		r.logger.Debug("submission rejected", zap.Int("attempt", attempt), zap.Strings("fields", verrs.Names()))
		pending = pending[:0:0]
		for _, name := range verrs.Names() {
			for _, msg := range verrs.For(name) {
				if err := r.driver.Info(ctx, formatIssue(r.label(d, name), msg)); err != nil {
					return nil, err
				}
			}
			if f, ok := d.Field(name); ok {
				pending = append(pending, f)
			}
		}
		if len(pending) == 0 {
			return nil, verrs
		}
	}
	return nil, lastErrs
}

func (r *Runner) prompt(ctx context.Context, f *field.Field) (string, error) {
	spec := f.Spec()
	message := r.labelFor(spec)

	switch spec.EffectiveKind() {
	case entity.KindRadio, entity.KindSelect:
		if len(spec.Options) == 0 {
			return "", fmt.Errorf("%w: %q", ErrNoOptions, spec.Name)
		}
		labels := make([]string, len(spec.Options))
		defaultIndex := 0
		for i, opt := range spec.Options {
			labels[i] = optionLabel(opt)
			if opt.Value == f.Value() {
				defaultIndex = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return "", fmt.Errorf("console: selection %d out of range for %q", idx, spec.Name)
		}
		return spec.Options[idx].Value, nil
	case entity.KindPassword:
		return r.driver.Password(ctx, InputConfig{Message: message})
	case entity.KindTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: f.Value()})
	default:
		return r.driver.Input(ctx, InputConfig{Message: message, Default: f.Value()})
	}
}

func (r *Runner) label(d *dialog.Dialog, name string) string {
	if f, ok := d.Field(name); ok {
		return r.labelFor(f.Spec())
	}
	return name
}

func (r *Runner) labelFor(spec entity.FieldSpec) string {
	label := strings.TrimSpace(spec.Label)
	if key, ok := strings.CutPrefix(label, i18nPrefix); ok {
		label = ""
		if r.translate != nil {
			label = strings.TrimSpace(r.translate(key))
		}
	}
	if label == "" {
		return spec.Name
	}
	return label
}

func optionLabel(opt entity.Option) string {
	if label := strings.TrimSpace(opt.Label); label != "" {
		return label
	}
	if opt.Value != "" {
		return opt.Value
	}
	return emptyOption
}

func formatIssue(label, message string) string {
	if label == "" {
		return message
	}
	return label + ": " + message
}
