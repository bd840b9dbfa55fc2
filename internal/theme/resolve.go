package theme

// Resolver runs the fixed resolution pipeline:
// Default, then preset, then custom overrides, then the dark overlay.
// It holds no mutable state besides the shared, append-only registry.
type Resolver struct {
	defaults TokenSet
	presets  *Registry
}

// NewResolver returns a Resolver over the built-in defaults and presets.
func NewResolver(presets *Registry) *Resolver {
	if presets == nil {
		presets = NewBuiltinRegistry()
	}
	return &Resolver{defaults: Default(), presets: presets}
}

// Presets returns the registry the resolver reads from.
func (r *Resolver) Presets() *Registry {
	return r.presets
}

// KnownPreset reports whether presetID resolves to a registered preset.
// Resolve treats unknown ids as the default preset; callers use this to
// log the fallback.
func (r *Resolver) KnownPreset(presetID string) bool {
	return r.presets.Has(presetID)
}

// Defaults returns the base token set.
func (r *Resolver) Defaults() TokenSet {
	return Default()
}

// Resolve produces the active token set. Equal inputs give equal outputs.
func (r *Resolver) Resolve(presetID string, overrides Patch, darkMode bool) TokenSet {
	var preset Patch
	if e, ok := r.presets.Get(presetID); ok {
		preset = e.Tokens
	}

	ts := Merge(r.defaults, preset, overrides)
	if darkMode {
		ts = Merge(ts, DeriveDarkOverlay(ts))
	}
	return ts
}
