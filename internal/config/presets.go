package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/HerbHall/brandkit/internal/theme"
)

// presetFileEntry is one element of the "presets" list in a seed file.
type presetFileEntry struct {
	ID          string         `mapstructure:"id"`
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Version     string         `mapstructure:"version"`
	Tokens      map[string]any `mapstructure:"tokens"`
}

// LoadPresetsFile reads tenant presets from a YAML, JSON or TOML file:
//
//	presets:
//	  - id: acme
//	    name: Acme
//	    version: 1.0.0
//	    tokens:
//	      colors:
//	        primary:
//	          "500": "#0055aa"
//
// Viper folds keys to lower case, so token keys are matched against the
// schema without regard to case before validation.
func LoadPresetsFile(path string) ([]theme.PresetEntry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var raw []presetFileEntry
	if err := v.UnmarshalKey("presets", &raw); err != nil {
		return nil, fmt.Errorf("decode presets file: %w", err)
	}

	out := make([]theme.PresetEntry, 0, len(raw))
	for i, r := range raw {
		tokens, err := canonicalize(theme.Schema, r.Tokens, "")
		if err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, r.ID, err)
		}
		patch, err := theme.ValidatePatch(theme.Patch(tokens))
		if err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i, r.ID, err)
		}
		out = append(out, theme.PresetEntry{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Version:     r.Version,
			Tokens:      patch,
		})
	}
	return out, nil
}

// canonicalize restores the schema's spelling of every key in m.
func canonicalize(f *theme.Field, m map[string]any, prefix string) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		child := childFold(f, k)
		if child == nil {
			return nil, &theme.SchemaError{Path: path, Reason: "unknown key"}
		}
		if child.IsBranch() {
			sub, ok := toStringMap(v)
			if !ok {
				return nil, &theme.SchemaError{Path: path, Reason: "expected object"}
			}
			c, err := canonicalize(child, sub, path)
			if err != nil {
				return nil, err
			}
			v = c
		}
		out[child.Key] = v
	}
	return out, nil
}

func childFold(f *theme.Field, key string) *theme.Field {
	if c := f.Child(key); c != nil {
		return c
	}
	for _, c := range f.Children {
		if strings.EqualFold(c.Key, key) {
			return c
		}
	}
	return nil
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
