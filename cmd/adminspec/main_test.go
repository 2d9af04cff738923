package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestShow_PrintsEntityAsYAML(t *testing.T) {
	out := execute(t, "show", "idp")

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if _, ok := doc["adder_dialog"]; !ok {
		t.Fatalf("adder_dialog missing from output:\n%s", out)
	}
}

func TestShow_JSON(t *testing.T) {
	out := execute(t, "show", "-o", "json")
	if !strings.Contains(out, `"adder_dialog"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLint_Embedded(t *testing.T) {
	out := execute(t, "lint")
	if !strings.Contains(out, "1 entities OK: idp") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestShow_UnknownEntity(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"show", "nope"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown entity")
	}
}
