// Package entity describes administered entity types as declarative data:
// search and details facets, add/remove dialogs and field metadata. Documents
// are YAML or JSON files with a top-level `entities` map; fields may be given
// as bare names or inline records. Definitions are validated on registration
// and kept in an explicitly constructed Registry rather than global state.
package entity
