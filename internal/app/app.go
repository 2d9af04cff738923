package app

import (
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-adminspec/pkg/dialog"
	"github.com/goliatone/go-adminspec/pkg/entity"
	"github.com/goliatone/go-adminspec/pkg/idp"
	"github.com/goliatone/go-adminspec/pkg/policy"
	"github.com/goliatone/go-adminspec/pkg/validation"
)

// Option customises the App.
type Option func(*App)

// WithDefinitions loads additional entity documents from fsys on top of the
// embedded ones.
func WithDefinitions(fsys fs.FS) Option {
	return func(a *App) {
		if fsys != nil {
			a.extra = append(a.extra, fsys)
		}
	}
}

// WithoutEmbedded skips the bundled definitions.
func WithoutEmbedded() Option {
	return func(a *App) {
		a.skipEmbedded = true
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.Logger = logger
		}
	}
}

// App wires the registries a console needs. It is assembled once at startup
// and passed to whoever opens dialogs.
type App struct {
	Entities     *entity.Registry
	Policies     *policy.Registry
	Validators   *validation.Registry
	Transformers map[string]dialog.SubmitTransformer
	Logger       *zap.Logger

	extra        []fs.FS
	skipEmbedded bool
}

// New builds the registries and loads entity definitions.
func New(opts ...Option) (*App, error) {
	a := &App{
		Entities:   entity.NewRegistry(),
		Policies:   policy.NewRegistry(),
		Validators: validation.NewRegistry(),
		Transformers: map[string]dialog.SubmitTransformer{
			idp.Entity: idp.ResolveEndpoints,
		},
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	sources := a.extra
	if !a.skipEmbedded {
		sources = append([]fs.FS{entity.EmbeddedFS()}, sources...)
	}
	for _, fsys := range sources {
		if err := a.Entities.LoadFS(fsys); err != nil {
			return nil, fmt.Errorf("app: load definitions: %w", err)
		}
	}

	a.Logger.Debug("entities loaded", zap.Strings("entities", a.Entities.Names()))
	return a, nil
}

// Entity returns the named entity or an error naming the known ones.
func (a *App) Entity(name string) (entity.Entity, error) {
	ent, ok := a.Entities.Lookup(name)
	if !ok {
		return entity.Entity{}, fmt.Errorf("app: unknown entity %q (known: %v)", name, a.Entities.Names())
	}
	return ent, nil
}

// OpenAdder constructs the add dialog of the named entity with its policies
// attached.
func (a *App) OpenAdder(name string) (*dialog.Dialog, error) {
	ent, err := a.Entity(name)
	if err != nil {
		return nil, err
	}
	opts := []dialog.Option{
		dialog.WithPolicyRegistry(a.Policies),
		dialog.WithValidators(a.Validators),
		dialog.WithLogger(a.Logger.With(zap.String("entity", name))),
	}
	if transform, ok := a.Transformers[name]; ok {
		opts = append(opts, dialog.WithSubmitTransformer(transform))
	}
	return dialog.New(ent.Adder, opts...)
}

// Lint opens and closes the add dialog of every registered entity, surfacing
// policy configuration errors without user input. Validator kinds are checked
// on both the adder and deleter fields.
func (a *App) Lint() error {
	for _, name := range a.Entities.Names() {
		ent, err := a.Entity(name)
		if err != nil {
			return err
		}
		d, err := a.OpenAdder(name)
		if err != nil {
			return fmt.Errorf("app: lint %q: %w", name, err)
		}
		d.Close()

		if err := a.lintValidators(name, "adder", ent.Adder.Fields); err != nil {
			return err
		}
		if err := a.lintValidators(name, "deleter", ent.Deleter.Fields); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) lintValidators(name, dialogName string, fields []entity.FieldSpec) error {
	for _, spec := range fields {
		for _, ref := range spec.Validators {
			if _, ok := a.Validators.Lookup(ref.Kind); !ok {
				return fmt.Errorf("app: lint %q: %s: %w %q on field %q", name, dialogName, validation.ErrUnknownValidator, ref.Kind, spec.Name)
			}
		}
	}
	return nil
}
