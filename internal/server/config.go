package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the server section of the configuration.
type Config struct {
	Host      string  `mapstructure:"host"`
	Port      int     `mapstructure:"port"`
	DevMode   bool    `mapstructure:"dev_mode"`
	ReadOnly  bool    `mapstructure:"read_only"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Options converts the configuration into server Options.
func (c *Config) Options() Options {
	return Options{
		DevMode:   c.DevMode,
		ReadOnly:  c.ReadOnly,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
	}
}

// ServerConfig decodes and checks the server section of v.
func ServerConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.UnmarshalKey("server", &cfg); err != nil {
		return nil, fmt.Errorf("decode server config: %w", err)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("server.port %d out of range", cfg.Port)
	}
	if cfg.RateLimit < 0 || cfg.RateBurst < 0 {
		return nil, errors.New("server.rate_limit and server.rate_burst must not be negative")
	}
	return &cfg, nil
}

// defaults seeds every key brandkit reads. Keys must stay lowercase, the
// form viper stores them in.
var defaults = map[string]any{
	"server.host":       "0.0.0.0",
	"server.port":       8080,
	"server.dev_mode":   false,
	"server.read_only":  false,
	"server.rate_limit": 100.0,
	"server.rate_burst": 200,

	"logging.level":  "info",
	"logging.format": "json",
	"logging.output": "stderr",

	"database.path": "./data/brandkit.db",

	"theme.storage":      "sqlite",
	"theme.presets_file": "",
	"theme.max_tenants":  1000,

	"webhook.enabled": false,
	"webhook.url":     "",
	"webhook.timeout": "10s",
}

// LoadConfig layers defaults, the YAML file and BK_* environment variables.
// An empty configPath searches ., ./configs and /etc/brandkit for
// brandkit.yaml; not finding one is not an error.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("brandkit")
		v.SetConfigType("yaml")
		for _, dir := range []string{".", "./configs", "/etc/brandkit"} {
			v.AddConfigPath(dir)
		}
	}

	// BK_SERVER_PORT overrides server.port.
	v.SetEnvPrefix("BK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}
