// Package stdlib embeds the MyLang-level (`.my`) standard library files
// the loader resolves before falling back to a companion module or a
// third-party file -- the counterpart, for `.my` sources, of
// bootstrap/embed_fs.go's `//go:embed *.viro` for the teacher's own
// bootstrap scripts.
package stdlib

import (
	"embed"
	"io/fs"
)

//go:embed *.my
var files embed.FS

// FS returns the embedded stdlib filesystem, rooted so that a module
// named "math" resolves to "math.my" directly (no stdlib/ prefix).
func FS() fs.FS {
	return files
}
