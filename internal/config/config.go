// Package config provides typed access to brandkit's Viper configuration
// and builds the process logger.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Theme storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// ThemeConfig is the "theme" section.
type ThemeConfig struct {
	Storage     string `mapstructure:"storage"`
	PresetsFile string `mapstructure:"presets_file"`
	MaxTenants  int    `mapstructure:"max_tenants"`
}

// ViperConfig wraps a Viper instance for typed access.
type ViperConfig struct {
	v *viper.Viper
}

// New creates a Config backed by the given Viper instance.
func New(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfig{v: v}
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *ViperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *ViperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// DatabasePath returns database.path.
func (c *ViperConfig) DatabasePath() string {
	return c.v.GetString("database.path")
}

// Theme decodes and checks the theme section.
func (c *ViperConfig) Theme() (ThemeConfig, error) {
	var tc ThemeConfig
	if err := c.v.UnmarshalKey("theme", &tc); err != nil {
		return ThemeConfig{}, fmt.Errorf("decode theme config: %w", err)
	}
	if tc.Storage == "" {
		tc.Storage = StorageSQLite
	}
	switch tc.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return ThemeConfig{}, fmt.Errorf("invalid theme.storage %q: must be %q or %q", tc.Storage, StorageSQLite, StorageMemory)
	}
	if tc.MaxTenants < 0 {
		return ThemeConfig{}, fmt.Errorf("invalid theme.max_tenants %d: must not be negative", tc.MaxTenants)
	}
	return tc, nil
}

// Viper returns the underlying Viper instance for direct access
// (e.g., by the server for top-level config like server.port).
func (c *ViperConfig) Viper() *viper.Viper {
	return c.v
}
