package dialog

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Validate runs field validators on every enabled field. Disabled fields are
// skipped: their stale values are not the user's current intent.
func (d *Dialog) Validate() (validation.Errors, error) {
	if d.closed {
		return nil, ErrClosed
	}
	values := d.container.Values()
	var out validation.Errors
	for _, f := range d.container.Fields() {
		if !f.Enabled() {
			continue
		}
		errs, err := d.validators.ValidateField(f.Spec(), f.Value(), values)
		if err != nil {
			return nil, err
		}
		out = append(out, errs...)
	}
	return out, nil
}

// Payload collects the values of enabled fields that are part of the command.
// Textarea values are stripped of markup.
func (d *Dialog) Payload() map[string]string {
	payload := make(map[string]string)
	for _, spec := range d.payloadFields() {
		f, _ := d.container.Get(spec.Name)
		value := f.Value()
		if spec.EffectiveKind() == entity.KindTextarea {
			value = sanitizeText(value)
		}
		payload[spec.Name] = value
	}
	return payload
}

// Submit validates the dialog, checks the payload shape and applies the
// configured transformer. Field failures, including field-scoped transformer
// errors, are returned as validation.Errors.
func (d *Dialog) Submit() (map[string]string, error) {
	errs, err := d.Validate()
	if err != nil {
		return nil, err
	}

	payload := d.Payload()
	flagged := make(map[string]struct{}, len(errs))
	for _, e := range errs {
		flagged[e.Field] = struct{}{}
	}
	schema := validation.SchemaFor(d.payloadFields())
	for _, e := range validation.ValidatePayload(schema, payload) {
		if _, seen := flagged[e.Field]; seen {
			continue
		}
		errs = append(errs, e)
	}
	if len(errs) > 0 {
		d.logger.Debug("dialog submission rejected",
			zap.String("title", d.spec.Title),
			zap.Strings("fields", errs.Names()),
		)
		return nil, errs
	}

	if d.transform == nil {
		return payload, nil
	}
	out, err := d.transform(payload)
	if err != nil {
		if errs, ok := validation.FromError(err); ok {
			d.logger.Debug("dialog submission rejected by transformer",
				zap.String("title", d.spec.Title),
				zap.Strings("fields", errs.Names()),
			)
			return nil, errs
		}
		return nil, err
	}
	return out, nil
}

func (d *Dialog) payloadFields() []entity.FieldSpec {
	var out []entity.FieldSpec
	for _, f := range d.container.Fields() {
		spec := f.Spec()
		if !f.Enabled() || spec.HasFlag(entity.FlagNoCommand) {
			continue
		}
		out = append(out, spec)
	}
	return out
}

func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}
