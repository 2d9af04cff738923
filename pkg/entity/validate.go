package entity

import (
	"fmt"
	"strings"
)

// Validate checks the structural consistency of an entity definition. It does
// not execute field validators; those are resolved by the hosting dialog.
func (e Entity) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entity: name is required")
	}

	for idx, facet := range e.Facets {
		if err := validateFacet(facet); err != nil {
			return fmt.Errorf("entity %q: facet %d: %w", e.Name, idx, err)
		}
	}

	if err := e.Adder.Validate(); err != nil {
		return fmt.Errorf("entity %q: adder dialog: %w", e.Name, err)
	}
	if err := e.Deleter.Validate(); err != nil {
		return fmt.Errorf("entity %q: deleter dialog: %w", e.Name, err)
	}
	return nil
}

// Validate checks field declarations and policy references of a dialog.
func (d Dialog) Validate() error {
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("field %d: %w", idx, err)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	for idx, ref := range d.Policies {
		if strings.TrimSpace(ref.Kind) == "" {
			return fmt.Errorf("policy %d: kind is required", idx)
		}
		if ref.ModeField != "" {
			if _, ok := seen[ref.ModeField]; !ok {
				return fmt.Errorf("policy %q: mode field %q is not declared", ref.Kind, ref.ModeField)
			}
		}
		for mode, names := range ref.Groups {
			for _, name := range names {
				if _, ok := seen[name]; !ok {
					return fmt.Errorf("policy %q: group %q references undeclared field %q", ref.Kind, mode, name)
				}
			}
		}
	}
	return nil
}

func validateFacet(facet Facet) error {
	switch facet.Kind {
	case FacetSearch:
		if len(facet.Columns) == 0 {
			return fmt.Errorf("search facet declares no columns")
		}
	case FacetDetails:
		for _, section := range facet.Sections {
			for _, field := range section.Fields {
				if err := validateField(field); err != nil {
					return fmt.Errorf("section %q: %w", section.Name, err)
				}
			}
		}
	default:
		return fmt.Errorf("unknown facet kind %q", facet.Kind)
	}
	return nil
}

func validateField(field FieldSpec) error {
	if field.Name == "" {
		return fmt.Errorf("name is required")
	}

	kind := field.EffectiveKind()
	switch kind {
	case KindText, KindPassword, KindTextarea:
		return nil
	case KindSelect, KindRadio:
	default:
		return fmt.Errorf("field %q: unknown kind %q", field.Name, field.Kind)
	}

	if len(field.Options) == 0 {
		return fmt.Errorf("field %q: %s requires options", field.Name, kind)
	}
	if kind == KindRadio {
		// A radio drives its dependants from the first render, so it cannot
		// start without a valid selection.
		if !field.HasOption(field.DefaultValue) {
			return fmt.Errorf("field %q: default value %q is not one of %v", field.Name, field.DefaultValue, field.OptionValues())
		}
	}
	return nil
}
