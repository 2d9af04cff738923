// Package dialog hosts entity dialogs at runtime. It turns an entity.Dialog
// into a field container, attaches the declared policies, and validates and
// collects submissions. Construction fails, leaving nothing subscribed, when a
// policy references a field the dialog does not declare.
package dialog
