//go:build dev

package dashboard

import (
	"fmt"
	"io/fs"
	"os"
)

// devAssetsEnv names the directory dev builds read the preview page from.
const devAssetsEnv = "BK_DASHBOARD_DIR"

// assets reads the preview page from disk on every request, so edits to
// index.html or applier.js show up on reload.
func assets() (fs.FS, error) {
	dir := os.Getenv(devAssetsEnv)
	if dir == "" {
		dir = "internal/dashboard/dist"
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dashboard assets: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dashboard assets: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
