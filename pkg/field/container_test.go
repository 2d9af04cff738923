package field

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminspec/pkg/entity"
)

func testSpecs() []entity.FieldSpec {
	return []entity.FieldSpec{
		{Name: "cn"},
		{Name: "type", Kind: entity.KindRadio, DefaultValue: "template"},
		{Name: "ipaidpprovider", Kind: entity.KindSelect},
	}
}

func TestContainer_PreservesOrder(t *testing.T) {
	c := NewContainer(testSpecs())

	var names []string
	for _, f := range c.Fields() {
		names = append(names, f.Name())
	}
	if diff := cmp.Diff([]string{"cn", "type", "ipaidpprovider"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected lookup of unknown field to fail")
	}
	if diff := cmp.Diff(map[string]string{"cn": "", "type": "template", "ipaidpprovider": ""}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_DestroyDropsListenersAndRunsHooks(t *testing.T) {
	c := NewContainer(testSpecs())
	mode, _ := c.Get("type")

	var events []string
	mode.OnValueChange(func(Change) { events = append(events, "change") })
	c.OnDestroy(func() { events = append(events, "hook-1") })
	c.OnDestroy(func() { events = append(events, "hook-2") })

	c.Destroy()
	c.Destroy()
	mode.SetValue("custom")

	if diff := cmp.Diff([]string{"hook-2", "hook-1"}, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if mode.Listeners() != 0 {
		t.Fatalf("expected listeners to be cleared, got %d", mode.Listeners())
	}
	if !c.Destroyed() {
		t.Fatalf("expected container to report destroyed")
	}

	late := false
	c.OnDestroy(func() { late = true })
	if !late {
		t.Fatalf("hooks registered after destroy should run immediately")
	}
}
