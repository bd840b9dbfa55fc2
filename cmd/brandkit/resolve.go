package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/brandkit/internal/config"
	"github.com/HerbHall/brandkit/internal/theme"
)

// cliLogger writes warnings to stderr in console format.
func cliLogger(w io.Writer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zapcore.WarnLevel)
	return zap.New(core)
}

// loadRegistry returns the built-in registry plus any presets from file.
func loadRegistry(presetsFile string) (*theme.Registry, error) {
	reg := theme.NewBuiltinRegistry()
	if presetsFile == "" {
		return reg, nil
	}
	seeded, err := config.LoadPresetsFile(presetsFile)
	if err != nil {
		return nil, err
	}
	for _, p := range seeded {
		if err := reg.Register(p); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
	}
	return reg, nil
}

// runResolve resolves one theme offline and prints it.
func runResolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	presetID := fs.String("preset", theme.DefaultPresetID, "preset id")
	dark := fs.Bool("dark", false, "apply the dark overlay")
	overridesPath := fs.String("overrides", "", "JSON file with a partial token set")
	presetsFile := fs.String("presets-file", "", "extra presets (YAML, JSON or TOML)")
	format := fs.String("format", "css", "output format: css, json or pairs")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := cliLogger(stderr)
	defer func() { _ = logger.Sync() }()

	reg, err := loadRegistry(*presetsFile)
	if err != nil {
		fmt.Fprintf(stderr, "load presets: %v\n", err)
		return 1
	}

	var overrides theme.Patch
	if *overridesPath != "" {
		data, err := os.ReadFile(*overridesPath)
		if err != nil {
			fmt.Fprintf(stderr, "read overrides: %v\n", err)
			return 1
		}
		overrides, err = theme.ParsePatch(data)
		if err != nil {
			fmt.Fprintf(stderr, "overrides: %v\n", err)
			return 1
		}
	}

	resolver := theme.NewResolver(reg)
	if !resolver.KnownPreset(*presetID) {
		logger.Warn("unknown theme preset, using default", zap.String("preset", *presetID))
	}
	ts := resolver.Resolve(*presetID, overrides, *dark)

	switch *format {
	case "css":
		_, _ = io.WriteString(stdout, theme.VariablesBlock(theme.Serialize(ts)))
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ts); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
	case "pairs":
		for _, p := range theme.Serialize(ts) {
			fmt.Fprintf(stdout, "%s=%s\n", p.Key, p.Value)
		}
	default:
		fmt.Fprintf(stderr, "unknown format %q: must be css, json or pairs\n", *format)
		return 2
	}
	return 0
}

// runPresets lists the registered presets.
func runPresets(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.SetOutput(stderr)
	presetsFile := fs.String("presets-file", "", "extra presets (YAML, JSON or TOML)")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg, err := loadRegistry(*presetsFile)
	if err != nil {
		fmt.Fprintf(stderr, "load presets: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reg.List()); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVERSION\tBUILT-IN\tNAME")
	for _, p := range reg.List() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", p.ID, p.Version, p.BuiltIn, p.Name)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "write: %v\n", err)
		return 1
	}
	return 0
}
