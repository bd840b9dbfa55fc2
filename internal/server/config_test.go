package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brandkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestLoadConfig_Layers(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n  read_only: true\ntheme:\n  max_tenants: 5\n")
	t.Setenv("BK_SERVER_HOST", "127.0.0.1")

	v, err := LoadConfig(path)
	require.NoError(t, err)

	cfg, err := ServerConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr(), "env over default, file over default")
	assert.True(t, cfg.Options().ReadOnly)
	assert.Equal(t, 100.0, cfg.Options().RateLimit)
	assert.Equal(t, 5, v.GetInt("theme.max_tenants"))
	assert.Equal(t, "stderr", v.GetString("logging.output"))
}

func TestLoadConfig_MissingSearchPathIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	v, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, v.GetInt("server.port"))
}

func TestLoadConfig_BadFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [unclosed\n"))
	assert.Error(t, err)
}

func TestServerConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"negative rate", "server:\n  rate_limit: -1\n"},
		{"negative burst", "server:\n  rate_burst: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := LoadConfig(writeConfig(t, tt.yaml))
			require.NoError(t, err)
			_, err = ServerConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestConfigAddr_IPv6(t *testing.T) {
	cfg := Config{Host: "::1", Port: 8080}
	assert.Equal(t, "[::1]:8080", cfg.Addr())
}
