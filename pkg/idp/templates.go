package idp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Template is a well-known provider with pre-populated endpoints.
type Template struct {
	Name          string
	AuthEndpoint  string
	TokenEndpoint string
}

var templates = map[string]Template{
	"google": {
		Name:          "google",
		AuthEndpoint:  "https://oauth2.googleapis.com/device/code",
		TokenEndpoint: "https://oauth2.googleapis.com/token",
	},
	"github": {
		Name:          "github",
		AuthEndpoint:  "https://github.com/login/device",
		TokenEndpoint: "https://github.com/login/oauth/access_token",
	},
	"microsoft-common": {
		Name:          "microsoft-common",
		AuthEndpoint:  "https://login.microsoftonline.com/common/oauth2/v2.0/devicecode",
		TokenEndpoint: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
	},
	"microsoft-consumer": {
		Name:          "microsoft-consumer",
		AuthEndpoint:  "https://login.microsoftonline.com/consumer/oauth2/v2.0/devicecode",
		TokenEndpoint: "https://login.microsoftonline.com/consumer/oauth2/v2.0/token",
	},
	"microsoft-organizations": {
		Name:          "microsoft-organizations",
		AuthEndpoint:  "https://login.microsoftonline.com/organizations/oauth2/v2.0/devicecode",
		TokenEndpoint: "https://login.microsoftonline.com/organizations/oauth2/v2.0/token",
	},
}

// Lookup returns the template registered under name.
func Lookup(name string) (Template, bool) {
	tpl, ok := templates[name]
	return tpl, ok
}

// Providers lists the template names in lexical order.
func Providers() []string {
	out := make([]string, 0, len(templates))
	for name := range templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ErrMutuallyExclusive is returned when a provider template is combined with
// explicit endpoints.
var ErrMutuallyExclusive = errors.New("idp: cannot specify both auth-uri/token-uri and provider")

// RequirementError reports a missing value that has no template fallback.
type RequirementError struct {
	Name string
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("idp: %s is required", e.Name)
}

// UnknownProviderError reports a provider with no template.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("idp: unknown provider %q", e.Provider)
}

// FieldError attaches a resolution failure to the dialog field the user has to
// change. Err is one of ErrMutuallyExclusive, *RequirementError or
// *UnknownProviderError.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FieldName returns the offending field.
func (e *FieldError) FieldName() string {
	return e.Field
}

// FieldMessage returns the message shown next to the field.
func (e *FieldError) FieldMessage() string {
	return e.Message
}

// ResolveEndpoints converts a provider selection into the authorization and
// token endpoints the entity stores. The payload must carry either a provider
// or both endpoints, never both. The input map is not modified.
func ResolveEndpoints(payload map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}

	provider := strings.TrimSpace(out[FieldProvider])
	auth := strings.TrimSpace(out[FieldAuthEndpoint])
	token := strings.TrimSpace(out[FieldTokenEndpoint])
	delete(out, FieldProvider)

	if provider != "" && (auth != "" || token != "") {
		return nil, &FieldError{
			Field:   FieldProvider,
			Message: "Cannot be combined with an Authorization URI or Token URI",
			Err:     ErrMutuallyExclusive,
		}
	}
	if provider == "" {
		if auth == "" {
			return nil, &FieldError{
				Field:   FieldAuthEndpoint,
				Message: "Required unless a provider is selected",
				Err:     &RequirementError{Name: "auth-uri or provider"},
			}
		}
		if token == "" {
			return nil, &FieldError{
				Field:   FieldTokenEndpoint,
				Message: "Required unless a provider is selected",
				Err:     &RequirementError{Name: "token-uri or provider"},
			}
		}
		return out, nil
	}

	tpl, ok := Lookup(provider)
	if !ok {
		return nil, &FieldError{
			Field:   FieldProvider,
			Message: fmt.Sprintf("Unknown provider %q", provider),
			Err:     &UnknownProviderError{Provider: provider},
		}
	}
	out[FieldAuthEndpoint] = tpl.AuthEndpoint
	out[FieldTokenEndpoint] = tpl.TokenEndpoint
	return out, nil
}
