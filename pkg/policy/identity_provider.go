package policy

import "github.com/goliatone/go-adminspec/pkg/idp"

// NewIdentityProvider returns the add-dialog policy of the idp entity: the
// provider template selector is enabled in template mode while scope and
// subject are enabled in custom mode.
func NewIdentityProvider(opts ...Option) *Dependency {
	groups := map[string][]string{
		idp.ModeTemplate: {idp.FieldProvider},
		idp.ModeCustom:   {idp.FieldScope, idp.FieldSubject},
	}
	opts = append([]Option{WithName(KindIdentityProvider)}, opts...)
	return NewDependency(idp.FieldType, groups, opts...)
}
