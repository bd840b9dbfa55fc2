package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/mod/semver"
)

// DefaultPresetID names the preset that changes nothing.
const DefaultPresetID = "default"

var (
	// ErrPresetExists is returned when registering an id that is already taken.
	ErrPresetExists = errors.New("preset already registered")
	// ErrInvalidPresetID is returned for ids outside [a-z0-9-] or too long.
	ErrInvalidPresetID = errors.New("invalid preset id")
	// ErrInvalidVersion is returned when a preset version is not semantic.
	ErrInvalidVersion = errors.New("invalid preset version")
)

var presetIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// PresetEntry is a named, versioned partial token set.
type PresetEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	BuiltIn     bool   `json:"built_in"`
	Tokens      Patch  `json:"tokens"`
}

// Registry maps preset ids to entries. Registration is append-only: an id,
// once registered, keeps its tokens for the life of the registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]PresetEntry
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]PresetEntry)}
}

// NewBuiltinRegistry returns a registry seeded with the built-in presets.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, e := range builtinPresets() {
		if err := r.Register(e); err != nil {
			panic("theme: invalid built-in preset " + e.ID + ": " + err.Error())
		}
	}
	return r
}

// Register validates e and appends it. The stored entry is a private copy.
func (r *Registry) Register(e PresetEntry) error {
	if !presetIDPattern.MatchString(e.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidPresetID, e.ID)
	}
	if !semver.IsValid(canonicalVersion(e.Version)) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, e.Version)
	}
	tokens, err := ValidatePatch(e.Tokens)
	if err != nil {
		return fmt.Errorf("preset %s: %w", e.ID, err)
	}
	e.Tokens = tokens
	if e.Name == "" {
		e.Name = e.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[e.ID]; exists {
		return fmt.Errorf("%w: %s", ErrPresetExists, e.ID)
	}
	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	return nil
}

// Get returns a copy of the entry for id.
func (r *Registry) Get(id string) (PresetEntry, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return PresetEntry{}, false
	}
	e.Tokens = e.Tokens.Clone()
	return e, true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// List returns copies of all entries in registration order.
func (r *Registry) List() []PresetEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PresetEntry, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		e.Tokens = e.Tokens.Clone()
		out = append(out, e)
	}
	return out
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// canonicalVersion adds the "v" prefix x/mod/semver expects.
func canonicalVersion(v string) string {
	if v != "" && v[0] != 'v' {
		return "v" + v
	}
	return v
}

func builtinPresets() []PresetEntry {
	return []PresetEntry{
		{
			ID:          DefaultPresetID,
			Name:        "Default",
			Description: "The default token set without changes.",
			Version:     "1.0.0",
			BuiltIn:     true,
			Tokens:      Patch{},
		},
		{
			ID:          "corporate",
			Name:        "Corporate",
			Description: "Navy primary, slate secondary and restrained shadows.",
			Version:     "1.0.0",
			BuiltIn:     true,
			Tokens: Patch{
				"name":        "Corporate",
				"description": "Conservative navy palette for enterprise tenants",
				"colors": map[string]any{
					"primary":   shades("#f0f4f8", "#d9e2ec", "#bcccdc", "#9fb3c8", "#829ab1", "#1e3a5f", "#1a3354", "#152a45", "#102136", "#0b1727"),
					"secondary": shades("#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a"),
				},
				"typography": map[string]any{
					"fontFamily": map[string]any{
						"sans": []string{"'IBM Plex Sans'", "'Helvetica Neue'", "Arial", "sans-serif"},
					},
				},
				"shadows": map[string]any{
					"card": "0 1px 2px 0 rgba(0, 0, 0, 0.06)",
				},
			},
		},
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "Green primary, generous card spacing and quick transitions.",
			Version:     "1.0.0",
			BuiltIn:     true,
			Tokens: Patch{
				"name": "Modern",
				"colors": map[string]any{
					"primary": shades("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d"),
					"text": map[string]any{
						"link": "#16a34a",
					},
					"border": map[string]any{
						"focus": "#22c55e",
					},
				},
				"spacing": map[string]any{
					"card": map[string]any{
						"padding": "2rem",
					},
				},
				"transitions": map[string]any{
					"duration": map[string]any{
						"normal": "200ms",
					},
				},
			},
		},
		{
			ID:          "creative",
			Name:        "Creative",
			Description: "Fuchsia and orange accents with a rounded display face.",
			Version:     "1.0.0",
			BuiltIn:     true,
			Tokens: Patch{
				"name": "Creative",
				"colors": map[string]any{
					"primary":   shades("#fdf4ff", "#fae8ff", "#f5d0fe", "#f0abfc", "#e879f9", "#d946ef", "#c026d3", "#a21caf", "#86198f", "#701a75"),
					"secondary": shades("#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12"),
					"text": map[string]any{
						"link": "#c026d3",
					},
				},
				"typography": map[string]any{
					"fontFamily": map[string]any{
						"sans": []string{"Poppins", "'Nunito Sans'", "sans-serif"},
					},
					"fontWeight": map[string]any{
						"bold": "800",
					},
				},
				"transitions": map[string]any{
					"easing": map[string]any{
						"easeOut": "cubic-bezier(0.34, 1.56, 0.64, 1)",
					},
				},
			},
		},
		{
			ID:          "minimal",
			Name:        "Minimal",
			Description: "Neutral zinc palette, flat surfaces and no motion.",
			Version:     "1.0.0",
			BuiltIn:     true,
			Tokens: Patch{
				"name": "Minimal",
				"colors": map[string]any{
					"primary": shades("#fafafa", "#f4f4f5", "#e4e4e7", "#d4d4d8", "#a1a1aa", "#71717a", "#52525b", "#3f3f46", "#27272a", "#18181b"),
					"gray":    shades("#fafafa", "#f4f4f5", "#e4e4e7", "#d4d4d8", "#a1a1aa", "#71717a", "#52525b", "#3f3f46", "#27272a", "#18181b"),
				},
				"shadows": map[string]any{
					"card":     "none",
					"dropdown": "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
				},
				"animations": map[string]any{
					"enabled": false,
				},
			},
		},
	}
}
