package testsupport

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/idp"
)

// MustLoadEntity returns the bundled definition of name, failing the test when
// it cannot be loaded.
func MustLoadEntity(t *testing.T, name string) entity.Entity {
	t.Helper()

	ent, err := LoadEntity(name)
	if err != nil {
		t.Fatalf("load entity: %v", err)
	}
	return ent
}

// LoadEntity returns the bundled definition of name without requiring
// testing.T, for callers wiring fixtures in setup functions.
func LoadEntity(name string) (entity.Entity, error) {
	if name == "" {
		return entity.Entity{}, errors.New("testsupport: entity name is required")
	}
	registry, err := entity.Default()
	if err != nil {
		return entity.Entity{}, fmt.Errorf("testsupport: load registry: %w", err)
	}
	ent, ok := registry.Lookup(name)
	if !ok {
		return entity.Entity{}, fmt.Errorf("testsupport: entity %q not bundled", name)
	}
	return ent, nil
}

// IdentityProviderAdder returns the bundled idp add dialog.
func IdentityProviderAdder(t *testing.T) entity.Dialog {
	t.Helper()
	return MustLoadEntity(t, idp.Entity).Adder
}

// WithoutField returns a copy of d lacking the named field.
func WithoutField(d entity.Dialog, name string) entity.Dialog {
	out := d
	out.Fields = nil
	for _, f := range d.Fields {
		if f.Name == name {
			continue
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

// MapFS builds an in-memory filesystem from path/content pairs.
func MapFS(files map[string]string) fstest.MapFS {
	out := make(fstest.MapFS, len(files))
	for path, content := range files {
		out[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
