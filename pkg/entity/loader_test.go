package entity_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/testsupport"
)

func TestDefault_IdentityProvider(t *testing.T) {
	registry, err := entity.Default()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if diff := cmp.Diff([]string{"idp"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	ent, ok := registry.Lookup("idp")
	if !ok {
		t.Fatalf("idp not registered")
	}

	search, ok := ent.Facet(entity.FacetSearch)
	if !ok {
		t.Fatalf("search facet missing")
	}
	if diff := cmp.Diff([]string{"cn", "ipaidpclientid", "ipaidpscope", "description"}, search.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}

	details, ok := ent.Facet(entity.FacetDetails)
	if !ok {
		t.Fatalf("details facet missing")
	}
	if diff := cmp.Diff([]string{"password"}, details.HeaderActions); diff != "" {
		t.Fatalf("header actions mismatch (-want +got):\n%s", diff)
	}
	if got := details.Actions[0].Dialog["password_name"]; got != "ipaidpclientsecret" {
		t.Fatalf("password action target = %q", got)
	}

	mode, ok := ent.Adder.Field("type")
	if !ok {
		t.Fatalf("mode field missing")
	}
	if mode.Kind != entity.KindRadio || mode.DefaultValue != "template" || !mode.HasFlag(entity.FlagNoCommand) {
		t.Fatalf("unexpected mode field: %+v", mode)
	}
	if diff := cmp.Diff([]string{"template", "custom"}, mode.OptionValues()); diff != "" {
		t.Fatalf("mode options mismatch (-want +got):\n%s", diff)
	}

	provider, _ := ent.Adder.Field("ipaidpprovider")
	if provider.Options[0] != (entity.Option{}) {
		t.Fatalf("expected bare empty option first, got %+v", provider.Options[0])
	}

	verify, _ := ent.Adder.Field("secret_verify")
	want := []entity.ValidatorRef{{Kind: "same_password", Params: map[string]string{"other_field": "ipaidpclientsecret"}}}
	if diff := cmp.Diff(want, verify.Validators); diff != "" {
		t.Fatalf("validators mismatch (-want +got):\n%s", diff)
	}

	if ent.Deleter.Title != "@i18n:objects.idp.remove" {
		t.Fatalf("deleter title = %q", ent.Deleter.Title)
	}
}

func TestLoadFS_BareAndInlineFieldsInJSON(t *testing.T) {
	fsys := testsupport.MapFS(map[string]string{
		"widgets.json": `{"entities": {"widget": {
			"facets": [{"kind": "search", "columns": ["name"]}],
			"adder_dialog": {"title": "Add", "fields": ["name", {"name": "kind", "kind": "radio", "default_value": "a", "options": ["a", {"value": "b", "label": "Bee"}]}]}
		}}}`,
	})

	registry, err := entity.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ent, _ := registry.Lookup("widget")

	want := []entity.FieldSpec{
		{Name: "name"},
		{Name: "kind", Kind: entity.KindRadio, DefaultValue: "a", Options: []entity.Option{{Value: "a", Label: "a"}, {Value: "b", Label: "Bee"}}},
	}
	if diff := cmp.Diff(want, ent.Adder.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if ent.Adder.Fields[0].EffectiveKind() != entity.KindText {
		t.Fatalf("bare field should default to text")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "empty file",
			files:   map[string]string{"a.yaml": "  "},
			wantErr: "is empty",
		},
		{
			name: "radio default outside options",
			files: map[string]string{"a.yaml": `
entities:
  x:
    adder_dialog:
      fields:
        - name: mode
          kind: radio
          default_value: other
          options: [a, b]
`},
			wantErr: "default value \"other\"",
		},
		{
			name: "select without options",
			files: map[string]string{"a.yaml": `
entities:
  x:
    adder_dialog:
      fields:
        - name: pick
          kind: select
`},
			wantErr: "requires options",
		},
		{
			name: "unknown kind",
			files: map[string]string{"a.yaml": `
entities:
  x:
    adder_dialog:
      fields:
        - name: pick
          kind: slider
`},
			wantErr: "unknown kind",
		},
		{
			name: "duplicate field",
			files: map[string]string{"a.yaml": `
entities:
  x:
    adder_dialog:
      fields: [a, a]
`},
			wantErr: "duplicate field",
		},
		{
			name: "policy references undeclared field",
			files: map[string]string{"a.yaml": `
entities:
  x:
    adder_dialog:
      fields: [mode]
      policies:
        - kind: field-dependency
          mode_field: mode
          groups:
            a: [missing]
`},
			wantErr: "undeclared field \"missing\"",
		},
		{
			name: "duplicate entity across files",
			files: map[string]string{
				"a.yaml": "entities:\n  x:\n    adder_dialog: {title: A}\n",
				"b.yaml": "entities:\n  x:\n    adder_dialog: {title: B}\n",
			},
			wantErr: "duplicate entity",
		},
		{
			name:    "unknown facet",
			files:   map[string]string{"a.yaml": "entities:\n  x:\n    facets: [{kind: graph}]\n"},
			wantErr: "unknown facet kind",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.LoadFS(testsupport.MapFS(tc.files))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFS_IgnoresOtherFiles(t *testing.T) {
	registry, err := entity.LoadFS(testsupport.MapFS(map[string]string{"README.md": "# nothing"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(registry.Names()) != 0 {
		t.Fatalf("expected empty registry, got %v", registry.Names())
	}

	empty, err := entity.LoadFS(nil)
	if err != nil || len(empty.Names()) != 0 {
		t.Fatalf("nil fs should yield empty registry: %v %v", empty.Names(), err)
	}
}
