package entity

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind enumerates the widget kinds a field can be declared with.
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindTextarea Kind = "textarea"
)

// Known flags understood by the hosting framework.
const (
	// FlagNoCommand excludes a field from the submitted payload.
	FlagNoCommand = "no_command"
	// FlagWriteIfNoACI keeps a field writable when the ACI evaluation is
	// unavailable.
	FlagWriteIfNoACI = "w_if_no_aci"
)

// FacetKind names a facet variant.
type FacetKind string

const (
	FacetSearch  FacetKind = "search"
	FacetDetails FacetKind = "details"
)

// Entity is the declarative description of an administered entity type. It is
// inert data: nothing in this package acts on it beyond validation.
type Entity struct {
	Name          string  `json:"-" yaml:"-"`
	Label         string  `json:"label,omitempty" yaml:"label,omitempty"`
	LabelSingular string  `json:"label_singular,omitempty" yaml:"label_singular,omitempty"`
	Facets        []Facet `json:"facets" yaml:"facets"`
	Adder         Dialog  `json:"adder_dialog" yaml:"adder_dialog"`
	Deleter       Dialog  `json:"deleter_dialog" yaml:"deleter_dialog"`
}

// Facet returns the first facet of the supplied kind.
func (e Entity) Facet(kind FacetKind) (Facet, bool) {
	for _, facet := range e.Facets {
		if facet.Kind == kind {
			return facet, true
		}
	}
	return Facet{}, false
}

// Facet is a named view of an entity. Search facets use Columns, details
// facets use Sections, Actions and HeaderActions.
type Facet struct {
	Kind          FacetKind `json:"kind" yaml:"kind"`
	Columns       []string  `json:"columns,omitempty" yaml:"columns,omitempty"`
	Sections      []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	Actions       []Action  `json:"actions,omitempty" yaml:"actions,omitempty"`
	HeaderActions []string  `json:"header_actions,omitempty" yaml:"header_actions,omitempty"`
}

// Section groups fields inside a details facet.
type Section struct {
	Name   string      `json:"name" yaml:"name"`
	Label  string      `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Action references a facet action implemented by the hosting framework, such
// as the password rotation dialog.
type Action struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Dialog map[string]string `json:"dialog,omitempty" yaml:"dialog,omitempty"`
}

// Dialog describes a modal used to create or delete an entity instance.
type Dialog struct {
	Title    string      `json:"title" yaml:"title"`
	Fields   []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	Policies []PolicyRef `json:"policies,omitempty" yaml:"policies,omitempty"`
}

// Field returns the declared field with the supplied name.
func (d Dialog) Field(name string) (FieldSpec, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// PolicyRef registers a policy against a dialog. Kind selects the policy
// factory; ModeField and Groups configure generic field-dependency policies.
type PolicyRef struct {
	Kind      string              `json:"kind" yaml:"kind"`
	ModeField string              `json:"mode_field,omitempty" yaml:"mode_field,omitempty"`
	Groups    map[string][]string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ValidatorRef names a validator implemented outside this package.
type ValidatorRef struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Option is a single choice offered by a select or radio field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// FieldSpec declares a single field. A bare string in a document decodes into
// a text field carrying only its name.
type FieldSpec struct {
	Name         string         `json:"name" yaml:"name"`
	Kind         Kind           `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label        string         `json:"label,omitempty" yaml:"label,omitempty"`
	DefaultValue string         `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Required     bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Flags        []string       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Layout       string         `json:"layout,omitempty" yaml:"layout,omitempty"`
	Validators   []ValidatorRef `json:"validators,omitempty" yaml:"validators,omitempty"`
	Options      []Option       `json:"options,omitempty" yaml:"options,omitempty"`
	Enabled      *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// EffectiveKind returns the declared kind, defaulting to text.
func (f FieldSpec) EffectiveKind() Kind {
	if f.Kind == "" {
		return KindText
	}
	return f.Kind
}

// EnabledByDefault reports the enabled state a runtime field starts with.
func (f FieldSpec) EnabledByDefault() bool {
	return f.Enabled == nil || *f.Enabled
}

// HasFlag reports whether the field carries the supplied flag.
func (f FieldSpec) HasFlag(flag string) bool {
	for _, candidate := range f.Flags {
		if candidate == flag {
			return true
		}
	}
	return false
}

// HasOption reports whether value is one of the declared options.
func (f FieldSpec) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionValues lists the declared option values in order.
func (f FieldSpec) OptionValues() []string {
	if len(f.Options) == 0 {
		return nil
	}
	out := make([]string, len(f.Options))
	for i, opt := range f.Options {
		out[i] = opt.Value
	}
	return out
}

type plainFieldSpec FieldSpec

// UnmarshalYAML accepts either a bare field name or an inline record.
func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*f = FieldSpec{Name: strings.TrimSpace(name)}
		return nil
	}
	var raw plainFieldSpec
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*f = FieldSpec(raw)
	f.Name = strings.TrimSpace(f.Name)
	return nil
}

// UnmarshalJSON accepts either a bare field name or an inline record.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*f = FieldSpec{Name: strings.TrimSpace(name)}
		return nil
	}
	var raw plainFieldSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FieldSpec(raw)
	f.Name = strings.TrimSpace(f.Name)
	return nil
}

type plainOption Option

// UnmarshalYAML accepts either a bare value (used as its own label) or a
// value/label record.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}
		*o = Option{Value: value, Label: value}
		return nil
	}
	var raw plainOption
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*o = Option(raw)
	return nil
}

// UnmarshalJSON mirrors UnmarshalYAML.
func (o *Option) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*o = Option{Value: value, Label: value}
		return nil
	}
	var raw plainOption
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Option(raw)
	return nil
}
