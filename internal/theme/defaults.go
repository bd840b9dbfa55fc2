package theme

import "fmt"

var defaultTokens = mustTokenSet(map[string]any{
	"name":        "Default",
	"description": "Built-in fallback token set",
	"version":     "1.0.0",
	"author":      "brandkit",
	"colors": map[string]any{
		"primary":   shades("#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"),
		"secondary": shades("#f5f3ff", "#ede9fe", "#ddd6fe", "#c4b5fd", "#a78bfa", "#8b5cf6", "#7c3aed", "#6d28d9", "#5b21b6", "#4c1d95"),
		"success":   shades("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d"),
		"warning":   shades("#fffbeb", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f"),
		"error":     shades("#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"),
		"info":      shades("#ecfeff", "#cffafe", "#a5f3fc", "#67e8f9", "#22d3ee", "#06b6d4", "#0891b2", "#0e7490", "#155e75", "#164e63"),
		"gray":      shades("#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827"),
		"background": map[string]any{
			"primary":   "#ffffff",
			"secondary": "#f9fafb",
			"tertiary":  "#f3f4f6",
			"inverse":   "#111827",
			"overlay":   "rgba(0, 0, 0, 0.5)",
		},
		"text": map[string]any{
			"primary":   "#111827",
			"secondary": "#4b5563",
			"tertiary":  "#6b7280",
			"inverse":   "#ffffff",
			"disabled":  "#9ca3af",
			"link":      "#2563eb",
		},
		"border": map[string]any{
			"primary":   "#e5e7eb",
			"secondary": "#d1d5db",
			"focus":     "#3b82f6",
			"error":     "#ef4444",
		},
	},
	"spacing": map[string]any{
		"none": "0",
		"xs":   "0.25rem",
		"sm":   "0.5rem",
		"md":   "1rem",
		"lg":   "1.5rem",
		"xl":   "2rem",
		"2xl":  "3rem",
		"3xl":  "4rem",
		"button": map[string]any{
			"paddingX": "1rem",
			"paddingY": "0.5rem",
			"gap":      "0.5rem",
		},
		"card": map[string]any{
			"padding": "1.5rem",
			"gap":     "1rem",
		},
		"input": map[string]any{
			"paddingX": "0.75rem",
			"paddingY": "0.5rem",
		},
		"layout": map[string]any{
			"sidebarWidth":      "16rem",
			"headerHeight":      "4rem",
			"containerMaxWidth": "80rem",
		},
	},
	"typography": map[string]any{
		"fontFamily": map[string]any{
			"sans":  []string{"Inter", "system-ui", "-apple-system", "'Segoe UI'", "sans-serif"},
			"serif": []string{"Georgia", "'Times New Roman'", "serif"},
			"mono":  []string{"'JetBrains Mono'", "Menlo", "Consolas", "monospace"},
		},
		"fontSize": map[string]any{
			"xs":   "0.75rem",
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
			"xl":   "1.25rem",
			"2xl":  "1.5rem",
			"3xl":  "1.875rem",
			"4xl":  "2.25rem",
		},
		"fontWeight": map[string]any{
			"light":    "300",
			"normal":   "400",
			"medium":   "500",
			"semibold": "600",
			"bold":     "700",
		},
		"lineHeight": map[string]any{
			"tight":   "1.25",
			"normal":  "1.5",
			"relaxed": "1.75",
		},
		"letterSpacing": map[string]any{
			"tight":  "-0.025em",
			"normal": "0em",
			"wide":   "0.025em",
		},
	},
	"shadows": map[string]any{
		"none":     "none",
		"sm":       "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
		"md":       "0 4px 6px -1px rgba(0, 0, 0, 0.1), 0 2px 4px -2px rgba(0, 0, 0, 0.1)",
		"lg":       "0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -4px rgba(0, 0, 0, 0.1)",
		"xl":       "0 20px 25px -5px rgba(0, 0, 0, 0.1), 0 8px 10px -6px rgba(0, 0, 0, 0.1)",
		"inner":    "inset 0 2px 4px 0 rgba(0, 0, 0, 0.05)",
		"card":     "0 1px 3px 0 rgba(0, 0, 0, 0.1), 0 1px 2px -1px rgba(0, 0, 0, 0.1)",
		"dropdown": "0 10px 15px -3px rgba(0, 0, 0, 0.1)",
		"modal":    "0 25px 50px -12px rgba(0, 0, 0, 0.25)",
	},
	"transitions": map[string]any{
		"duration": map[string]any{
			"fast":   "150ms",
			"normal": "250ms",
			"slow":   "400ms",
		},
		"easing": map[string]any{
			"linear":    "linear",
			"easeIn":    "cubic-bezier(0.4, 0, 1, 1)",
			"easeOut":   "cubic-bezier(0, 0, 0.2, 1)",
			"easeInOut": "cubic-bezier(0.4, 0, 0.2, 1)",
		},
		"button":   "all 150ms cubic-bezier(0.4, 0, 0.2, 1)",
		"modal":    "opacity 250ms cubic-bezier(0, 0, 0.2, 1), transform 250ms cubic-bezier(0, 0, 0.2, 1)",
		"dropdown": "opacity 150ms ease-out",
	},
	"breakpoints": map[string]any{
		"sm":  "640px",
		"md":  "768px",
		"lg":  "1024px",
		"xl":  "1280px",
		"2xl": "1536px",
	},
	"zIndex": map[string]any{
		"hide":     -1,
		"base":     0,
		"dropdown": 1000,
		"sticky":   1100,
		"overlay":  1300,
		"modal":    1400,
		"popover":  1500,
		"toast":    1700,
		"tooltip":  1800,
		"auto":     "auto",
	},
	"responsive": map[string]any{
		"enabled":         true,
		"fluidTypography": false,
	},
	"animations": map[string]any{
		"enabled":       true,
		"reducedMotion": false,
	},
})

// Default returns the built-in fallback token set. It is complete with
// respect to Schema.
func Default() TokenSet {
	return TokenSet{tree: cloneTree(defaultTokens.tree)}
}

// shades zips ten values with ShadeKeys.
func shades(values ...string) map[string]any {
	if len(values) != len(ShadeKeys) {
		panic(fmt.Sprintf("theme: color scale needs %d shades, got %d", len(ShadeKeys), len(values)))
	}
	out := make(map[string]any, len(values))
	for i, v := range values {
		out[ShadeKeys[i]] = v
	}
	return out
}

func mustTokenSet(tree map[string]any) TokenSet {
	ts, err := NewTokenSet(tree)
	if err != nil {
		panic("theme: invalid built-in token set: " + err.Error())
	}
	return ts
}
