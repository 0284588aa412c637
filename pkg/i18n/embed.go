package i18n

import (
	"embed"
	"io/fs"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// EmbeddedFS returns the catalogs shipped with the binary.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}
