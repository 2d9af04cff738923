package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-adminspec/pkg/entity"
)

// SchemaFor derives the OpenAPI object schema of a submission made of fields.
// Select and radio options become enums, required fields must be non-empty and
// unknown properties are rejected.
func SchemaFor(fields []entity.FieldSpec) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	noExtra := false
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &noExtra}

	for _, field := range fields {
		prop := openapi3.NewStringSchema()
		prop.Title = field.Label
		switch field.EffectiveKind() {
		case entity.KindPassword:
			prop.Format = "password"
		case entity.KindSelect, entity.KindRadio:
			values := field.OptionValues()
			enum := make([]any, len(values))
			for i, v := range values {
				enum[i] = v
			}
			prop.Enum = enum
		}
		if field.Required {
			prop.MinLength = 1
			schema.Required = append(schema.Required, field.Name)
		}
		schema.WithProperty(field.Name, prop)
	}
	return schema
}

// ValidatePayload checks payload against schema and maps every schema
// violation onto the offending field. Violations without a property path are
// reported with an empty field name.
func ValidatePayload(schema *openapi3.Schema, payload map[string]string) Errors {
	if schema == nil {
		return nil
	}
	value := make(map[string]any, len(payload))
	for k, v := range payload {
		value[k] = v
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var out Errors
	collectSchemaErrors(err, &out)
	return out
}

func collectSchemaErrors(err error, out *Errors) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, out)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := ""
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = pointer[0]
		}
		message := strings.TrimSpace(schemaErr.Reason)
		if message == "" {
			message = strings.TrimSpace(schemaErr.Error())
		}
		*out = append(*out, Error{Field: field, Message: message})
		return
	}

	*out = append(*out, Error{Message: err.Error()})
}
