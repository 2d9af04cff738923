package entity

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled entity definitions. Pass it to LoadFS to get
// the default registry.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the bundled definitions into a new registry.
func Default() (*Registry, error) {
	return LoadFS(EmbeddedFS())
}
