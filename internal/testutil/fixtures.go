// Package testutil holds shared test fixtures.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/HerbHall/brandkit/internal/store"
	"github.com/HerbHall/brandkit/internal/theme"
)

// NewStore opens a fresh SQLite store in a temp directory and closes it
// when the test ends.
func NewStore(t testing.TB) *store.SQLiteStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "brandkit.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewTenantID returns a unique, valid tenant id.
func NewTenantID() string {
	return "tenant-" + uuid.New().String()[:8]
}

// NewPreset returns a valid preset entry with a unique id. Override
// individual fields with the With* options.
func NewPreset(opts ...func(*theme.PresetEntry)) theme.PresetEntry {
	id := "preset-" + uuid.New().String()[:8]
	p := theme.PresetEntry{
		ID:          id,
		Name:        "Test Preset",
		Description: "fixture",
		Version:     "1.0.0",
		Tokens: theme.Patch{
			"colors": map[string]any{
				"primary": map[string]any{"500": "#ff6600"},
			},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithPresetID sets the preset id.
func WithPresetID(id string) func(*theme.PresetEntry) {
	return func(p *theme.PresetEntry) { p.ID = id }
}

// WithVersion sets the preset version.
func WithVersion(v string) func(*theme.PresetEntry) {
	return func(p *theme.PresetEntry) { p.Version = v }
}

// WithTokens replaces the preset's token patch.
func WithTokens(tokens theme.Patch) func(*theme.PresetEntry) {
	return func(p *theme.PresetEntry) { p.Tokens = tokens }
}

// ColorPatch builds a patch setting one color leaf.
func ColorPatch(group, key, value string) theme.Patch {
	return theme.Patch{"colors": map[string]any{group: map[string]any{key: value}}}
}
