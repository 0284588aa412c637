package overlay

import (
	"embed"
	"io/fs"
)

//go:embed data/*
var embeddedOverlays embed.FS

// EmbeddedFS returns the overlay files bundled with the built-in catalog.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedOverlays, "data")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return sub
}
