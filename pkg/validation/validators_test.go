package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminspec/pkg/entity"
)

func TestValidateField(t *testing.T) {
	reg := NewRegistry()
	verify := entity.FieldSpec{
		Name:     "secret_verify",
		Required: true,
		Validators: []entity.ValidatorRef{
			{Kind: KindSamePassword, Params: map[string]string{"other_field": "secret"}},
		},
	}
	uri := entity.FieldSpec{Name: "auth", Validators: []entity.ValidatorRef{{Kind: KindURI}}}

	cases := []struct {
		name   string
		spec   entity.FieldSpec
		value  string
		values map[string]string
		want   Errors
	}{
		{name: "required missing", spec: verify, value: " ", want: Errors{{Field: "secret_verify", Message: "Required field"}}},
		{name: "mismatch", spec: verify, value: "a", values: map[string]string{"secret": "b"}, want: Errors{{Field: "secret_verify", Message: "Passwords must match"}}},
		{name: "match", spec: verify, value: "a", values: map[string]string{"secret": "a"}},
		{name: "uri empty allowed", spec: uri, value: ""},
		{name: "uri without host", spec: uri, value: "oauth2.example.com/device", want: Errors{{Field: "auth", Message: "Invalid URI: missing netloc"}}},
		{name: "uri ok", spec: uri, value: "https://oauth2.example.com/device"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := reg.ValidateField(tc.spec, tc.value, tc.values)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateField_UnknownKind(t *testing.T) {
	reg := NewRegistry()
	spec := entity.FieldSpec{Name: "x", Validators: []entity.ValidatorRef{{Kind: "luhn"}}}
	if _, err := reg.ValidateField(spec, "1", nil); !errors.Is(err, ErrUnknownValidator) {
		t.Fatalf("expected ErrUnknownValidator, got %v", err)
	}
}

func TestRegistry_CustomValidator(t *testing.T) {
	reg := NewRegistry()
	reg.Register("no-spaces", ValidatorFunc(func(in Input) error {
		for _, r := range in.Value {
			if r == ' ' {
				return errors.New("must not contain spaces")
			}
		}
		return nil
	}))

	spec := entity.FieldSpec{Name: "cn", Validators: []entity.ValidatorRef{{Kind: "no-spaces"}}}
	got, err := reg.ValidateField(spec, "my idp", nil)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"must not contain spaces"}, got.For("cn")); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{KindRequired, KindSamePassword, KindURI, "no-spaces"}, reg.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors_FieldsNormalises(t *testing.T) {
	errs := Errors{
		{Field: "a", Message: " one "},
		{Field: "a", Message: "one"},
		{Field: "b", Message: "  "},
		{Field: "a", Message: "two"},
	}
	want := map[string][]string{"a": {"one", "two"}}
	if diff := cmp.Diff(want, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := errs[0].Error(); got != "a:  one " {
		t.Fatalf("unexpected error text %q", got)
	}
}

type scopedErr struct{ field, message string }

func (e scopedErr) Error() string        { return "scoped: " + e.message }
func (e scopedErr) FieldName() string    { return e.field }
func (e scopedErr) FieldMessage() string { return e.message }

func TestFromError(t *testing.T) {
	direct := Errors{{Field: "a", Message: "bad"}}
	got, ok := FromError(fmt.Errorf("submit: %w", direct))
	if !ok {
		t.Fatalf("expected wrapped Errors to convert")
	}
	if diff := cmp.Diff(direct, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	got, ok = FromError(fmt.Errorf("transform: %w", scopedErr{field: "b", message: "conflict"}))
	if !ok {
		t.Fatalf("expected field scoped error to convert")
	}
	if diff := cmp.Diff(Errors{{Field: "b", Message: "conflict"}}, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if _, ok := FromError(errors.New("boom")); ok {
		t.Fatalf("plain errors must not convert")
	}
	if _, ok := FromError(nil); ok {
		t.Fatalf("nil must not convert")
	}
}
