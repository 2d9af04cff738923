// Package policy implements dialog policies: behaviours attached to a field
// container that react to field changes. The Dependency policy derives the
// enabled state of mutually exclusive field groups from one mode field and is
// re-applied synchronously on every change of that field, including once at
// attach time so a dialog never shows an inconsistent state.
package policy
