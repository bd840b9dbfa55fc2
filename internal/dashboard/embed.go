//go:build !dev

package dashboard

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var bundled embed.FS

// assets returns the preview page files compiled into the binary.
func assets() (fs.FS, error) {
	return fs.Sub(bundled, "dist")
}
