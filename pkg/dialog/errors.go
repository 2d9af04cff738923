package dialog

import "errors"

var (
	// ErrClosed is returned by operations on a closed dialog.
	ErrClosed = errors.New("dialog: closed")
	// ErrFieldNotFound is returned when a field name is not part of the dialog.
	ErrFieldNotFound = errors.New("dialog: field not found")
	// ErrFieldDisabled is returned when input targets a disabled field.
	ErrFieldDisabled = errors.New("dialog: field is disabled")
)
