package console

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("console: aborted")
	// ErrNoOptions is returned when a choice field has nothing to choose from.
	ErrNoOptions = errors.New("console: field has no options")
)
