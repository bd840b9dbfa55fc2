package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/brandkit/internal/version"
)

// NewLogger builds the process logger from the logging.* keys:
//
//	logging.level   debug | info | warn | error (default info)
//	logging.format  json | console (default json)
//	logging.output  stderr, stdout or a file path (default stderr)
//
// Every entry carries the service name and build version.
func NewLogger(v *viper.Viper) (*zap.Logger, error) {
	level := strings.ToLower(strings.TrimSpace(v.GetString("logging.level")))
	if level == "" {
		level = "info"
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("logging.level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format := v.GetString("logging.format"); format {
	case "json", "":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging.format %q: want json or console", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if out := v.GetString("logging.output"); out != "" {
		cfg.OutputPaths = []string{out}
	}
	cfg.InitialFields = map[string]any{
		"service": "brandkit",
		"version": version.Short(),
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
