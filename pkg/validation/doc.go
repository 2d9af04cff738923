// Package validation runs the field validators declared in entity definitions
// and checks submission payloads against an OpenAPI schema derived from the
// dialog. Failures are field-scoped Errors meant to be shown inline; they do
// not abort the dialog.
package validation
