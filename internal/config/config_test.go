package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/brandkit/internal/theme"
)

func TestTheme_Defaults(t *testing.T) {
	tc, err := New(nil).Theme()
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, tc.Storage)
	assert.Empty(t, tc.PresetsFile)
	assert.Zero(t, tc.MaxTenants)
}

func TestTheme_Values(t *testing.T) {
	v := viper.New()
	v.Set("theme.storage", "memory")
	v.Set("theme.presets_file", "/etc/brandkit/presets.yaml")
	v.Set("theme.max_tenants", 50)
	v.Set("database.path", "/var/lib/brandkit.db")

	c := New(v)
	tc, err := c.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeConfig{Storage: StorageMemory, PresetsFile: "/etc/brandkit/presets.yaml", MaxTenants: 50}, tc)
	assert.Equal(t, "/var/lib/brandkit.db", c.DatabasePath())
}

func TestTheme_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown storage", "theme.storage", "redis"},
		{"negative tenant cap", "theme.max_tenants", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := New(v).Theme()
			assert.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPresetsFile_YAML(t *testing.T) {
	path := writeFile(t, "presets.yaml", `
presets:
  - id: acme
    name: Acme
    description: Acme corporate identity
    version: 1.2.0
    tokens:
      colors:
        primary:
          "500": "#0055aa"
      spacing:
        button:
          paddingX: 1.25rem
      typography:
        fontFamily:
          sans: [Inter, sans-serif]
      zIndex:
        modal: 1200
`)

	presets, err := LoadPresetsFile(path)
	require.NoError(t, err)
	require.Len(t, presets, 1)

	p := presets[0]
	assert.Equal(t, "acme", p.ID)
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "1.2.0", p.Version)

	ts := theme.Merge(theme.Default(), p.Tokens)
	assert.Equal(t, "#0055aa", ts.Color("primary", "500"))
	assert.Equal(t, "1.25rem", ts.String("spacing", "button", "paddingX"))
	assert.Equal(t, []string{"Inter", "sans-serif"}, ts.FontFamily("sans"))
	assert.Equal(t, 1200, ts.ZIndex("modal"))
}

func TestLoadPresetsFile_JSON(t *testing.T) {
	path := writeFile(t, "presets.json", `{
  "presets": [
    {"id": "night", "name": "Night", "version": "2.0.0",
     "tokens": {"colors": {"background": {"primary": "#000000"}}}}
  ]
}`)

	presets, err := LoadPresetsFile(path)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "night", presets[0].ID)

	reg := theme.NewBuiltinRegistry()
	require.NoError(t, reg.Register(presets[0]))
	assert.True(t, reg.Has("night"))
}

func TestLoadPresetsFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown token key", "bad.yaml", "presets:\n  - id: x\n    version: 1.0.0\n    tokens:\n      logo: acme.svg\n"},
		{"invalid color", "bad.yaml", "presets:\n  - id: x\n    version: 1.0.0\n    tokens:\n      colors:\n        primary:\n          \"500\": \"red;\"\n"},
		{"branch as scalar", "bad.yaml", "presets:\n  - id: x\n    version: 1.0.0\n    tokens:\n      colors: red\n"},
		{"unparseable", "bad.json", `{"presets": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresetsFile(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadPresetsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
