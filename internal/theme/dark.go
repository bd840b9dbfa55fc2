package theme

import "github.com/lucasb-eyer/go-colorful"

// DarkOverlayBranches are the only branches DeriveDarkOverlay touches.
var DarkOverlayBranches = []string{"background", "text", "border"}

// DeriveDarkOverlay computes the dark-mode patch for an already resolved
// light token set. Semantic roles are remapped onto the inverted gray scale
// and the accent scales of resolved; nothing outside colors.background,
// colors.text and colors.border is set. resolved is not modified.
func DeriveDarkOverlay(resolved TokenSet) Patch {
	gray := func(shade string) string { return resolved.Color("gray", shade) }

	return Patch{
		"colors": map[string]any{
			"background": map[string]any{
				"primary":   gray("900"),
				"secondary": gray("800"),
				"tertiary":  midTone(gray("800"), gray("700")),
				"inverse":   gray("50"),
				"overlay":   "rgba(0, 0, 0, 0.7)",
			},
			"text": map[string]any{
				"primary":   gray("50"),
				"secondary": gray("300"),
				"tertiary":  gray("400"),
				"inverse":   gray("900"),
				"disabled":  gray("600"),
				"link":      resolved.Color("primary", "400"),
			},
			"border": map[string]any{
				"primary":   gray("700"),
				"secondary": gray("600"),
				"focus":     resolved.Color("primary", "400"),
				"error":     resolved.Color("error", "400"),
			},
		},
	}
}

// midTone blends two hex colors halfway in Lab space. When either side is
// not a plain hex color, b is returned unchanged.
func midTone(a, b string) string {
	ca, err := colorful.Hex(a)
	if err != nil || len(a) != 7 {
		return b
	}
	cb, err := colorful.Hex(b)
	if err != nil || len(b) != 7 {
		return b
	}
	return ca.BlendLab(cb, 0.5).Clamped().Hex()
}
