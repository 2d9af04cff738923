package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminspec/pkg/idp"
	"github.com/goliatone/go-adminspec/pkg/policy"
	"github.com/goliatone/go-adminspec/pkg/testsupport"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

func TestNew_LoadsEmbeddedAndExtraDefinitions(t *testing.T) {
	extra := testsupport.MapFS(map[string]string{
		"radius.yaml": `
entities:
  radiusproxy:
    facets:
      - kind: search
        columns: [cn, ipatokenradiusserver]
    adder_dialog:
      title: Add RADIUS proxy
      fields: [cn, ipatokenradiusserver]
`,
	})
	a, err := New(WithDefinitions(extra))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if diff := cmp.Diff([]string{"idp", "radiusproxy"}, a.Entities.Names()); diff != "" {
		t.Fatalf("entities mismatch (-want +got):\n%s", diff)
	}
	if err := a.Lint(); err != nil {
		t.Fatalf("lint: %v", err)
	}
}

func TestOpenAdder_WiresTransformer(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	d, err := a.OpenAdder(idp.Entity)
	if err != nil {
		t.Fatalf("open adder: %v", err)
	}
	defer d.Close()

	for name, value := range map[string]string{
		idp.FieldName:         "g",
		idp.FieldProvider:     "google",
		idp.FieldClientID:     "c",
		idp.FieldClientSecret: "s",
		idp.FieldSecretVerify: "s",
	} {
		if err := d.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	payload, err := d.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if payload[idp.FieldAuthEndpoint] != "https://oauth2.googleapis.com/device/code" {
		t.Fatalf("provider template not expanded: %v", payload)
	}

	if _, err := a.OpenAdder("nope"); err == nil || !strings.Contains(err.Error(), "unknown entity") {
		t.Fatalf("expected unknown entity error, got %v", err)
	}
}

func TestLint_ReportsConfigurationErrors(t *testing.T) {
	broken := testsupport.MapFS(map[string]string{
		"broken.yaml": `
entities:
  broken:
    adder_dialog:
      fields: [cn]
      policies:
        - kind: idp-provider
`,
	})
	a, err := New(WithoutEmbedded(), WithDefinitions(broken))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	err = a.Lint()
	var cfgErr *policy.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != idp.FieldType {
		t.Fatalf("unexpected missing field %q", cfgErr.Field)
	}
}

func TestLint_ReportsUnknownValidators(t *testing.T) {
	defs := testsupport.MapFS(map[string]string{
		"v.yaml": `
entities:
  v:
    adder_dialog:
      fields:
        - name: cn
          validators:
            - kind: luhn
`,
	})
	a, err := New(WithoutEmbedded(), WithDefinitions(defs))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := a.Lint(); !errors.Is(err, validation.ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestLint_ReportsUnknownDeleterValidators(t *testing.T) {
	defs := testsupport.MapFS(map[string]string{
		"v.yaml": `
entities:
  v:
    adder_dialog:
      fields: [cn]
    deleter_dialog:
      title: Remove
      fields:
        - name: confirm
          validators:
            - kind: luhn
`,
	})
	a, err := New(WithoutEmbedded(), WithDefinitions(defs))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	err = a.Lint()
	if !errors.Is(err, validation.ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
	if !strings.Contains(err.Error(), "deleter") || !strings.Contains(err.Error(), `"confirm"`) {
		t.Fatalf("error should name the deleter field, got %v", err)
	}
}
