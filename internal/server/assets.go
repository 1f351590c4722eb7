package server

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// staticFS exposes the embedded dashboard assets rooted at /.
func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// embed guarantees the directory exists; this cannot happen.
		panic(err)
	}
	return sub
}
