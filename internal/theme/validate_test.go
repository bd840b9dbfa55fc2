package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePatch_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		patch    Patch
		wantPath string
	}{
		{
			name:     "unknown top-level branch",
			patch:    Patch{"borderRadius": map[string]any{"sm": "2px"}},
			wantPath: "borderRadius",
		},
		{
			name:     "shade outside closed set",
			patch:    Patch{"colors": map[string]any{"primary": map[string]any{"550": "#ffffff"}}},
			wantPath: "colors.primary.550",
		},
		{
			name:     "branch where leaf expected",
			patch:    Patch{"spacing": map[string]any{"md": map[string]any{"x": "1rem"}}},
			wantPath: "spacing.md",
		},
		{
			name:     "leaf where branch expected",
			patch:    Patch{"colors": map[string]any{"primary": "#ff0000"}},
			wantPath: "colors.primary",
		},
		{
			name:     "invalid hex color",
			patch:    Patch{"colors": map[string]any{"gray": map[string]any{"500": "#zzzzzz"}}},
			wantPath: "colors.gray.500",
		},
		{
			name:     "number for string leaf",
			patch:    Patch{"breakpoints": map[string]any{"sm": 640.0}},
			wantPath: "breakpoints.sm",
		},
		{
			name:     "fractional z-index",
			patch:    Patch{"zIndex": map[string]any{"modal": 14.5}},
			wantPath: "zIndex.modal",
		},
		{
			name:     "numeric z-index as string",
			patch:    Patch{"zIndex": map[string]any{"modal": "1400"}},
			wantPath: "zIndex.modal",
		},
		{
			name:     "empty font stack",
			patch:    Patch{"typography": map[string]any{"fontFamily": map[string]any{"sans": []any{}}}},
			wantPath: "typography.fontFamily.sans",
		},
		{
			name:     "declaration escape",
			patch:    Patch{"shadows": map[string]any{"card": "none; } body { display: none"}},
			wantPath: "shadows.card",
		},
		{
			name:     "comment opener",
			patch:    Patch{"shadows": map[string]any{"card": "0 1px 2px /* red"}},
			wantPath: "shadows.card",
		},
		{
			name:     "comment closer",
			patch:    Patch{"spacing": map[string]any{"md": "1rem */"}},
			wantPath: "spacing.md",
		},
		{
			name:     "backslash",
			patch:    Patch{"spacing": map[string]any{"md": `1rem \`}},
			wantPath: "spacing.md",
		},
		{
			name:     "form feed",
			patch:    Patch{"breakpoints": map[string]any{"sm": "640px\f"}},
			wantPath: "breakpoints.sm",
		},
		{
			name:     "unmatched single quote",
			patch:    Patch{"transitions": map[string]any{"easing": map[string]any{"linear": "Acme's"}}},
			wantPath: "transitions.easing.linear",
		},
		{
			name:     "unmatched double quote",
			patch:    Patch{"colors": map[string]any{"text": map[string]any{"link": `"blue`}}},
			wantPath: "colors.text.link",
		},
		{
			name:     "unmatched quote in font stack",
			patch:    Patch{"typography": map[string]any{"fontFamily": map[string]any{"serif": []any{"'Georgia", "serif"}}}},
			wantPath: "typography.fontFamily.serif",
		},
		{
			name:     "quote in layer keyword",
			patch:    Patch{"zIndex": map[string]any{"auto": "auto'"}},
			wantPath: "zIndex.auto",
		},
		{
			name:     "control character in text",
			patch:    Patch{"description": "Acme\tbrand"},
			wantPath: "description",
		},
		{
			name:     "markup in text",
			patch:    Patch{"name": "</style>"},
			wantPath: "name",
		},
		{
			name:     "number for text",
			patch:    Patch{"author": 7.0},
			wantPath: "author",
		},
		{
			name:     "string for bool",
			patch:    Patch{"animations": map[string]any{"enabled": "false"}},
			wantPath: "animations.enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePatch(tt.patch)
			require.Error(t, err)

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantPath, se.Path)
			assert.Contains(t, err.Error(), tt.wantPath)
		})
	}
}

func TestValidatePatch_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
	}{
		{"nil", nil},
		{"empty", Patch{}},
		{"hex short", Patch{"colors": map[string]any{"text": map[string]any{"link": "#0af"}}}},
		{"hex with alpha", Patch{"colors": map[string]any{"background": map[string]any{"overlay": "#00000080"}}}},
		{"css function", Patch{"colors": map[string]any{"border": map[string]any{"focus": "rgb(59, 130, 246)"}}}},
		{"keyword", Patch{"colors": map[string]any{"background": map[string]any{"primary": "transparent"}}}},
		{"nested patch type", Patch{"spacing": Patch{"card": Patch{"gap": "2rem"}}}},
		{"layer keyword", Patch{"zIndex": map[string]any{"hide": "auto"}}},
		{"quoted font names", Patch{"typography": map[string]any{"fontFamily": map[string]any{"serif": []any{"'Iowan Old Style'", `"Times New Roman"`, "serif"}}}}},
		{"apostrophe in text", Patch{"description": "Acme's brand"}},
		{"css syntax in text", Patch{"author": `Studio "Nine" /* ; { } \`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePatch(tt.patch)
			assert.NoError(t, err)
		})
	}
}

func TestParsePatch_NormalisesJSON(t *testing.T) {
	p, err := ParsePatch([]byte(`{
		"zIndex": {"modal": 2000},
		"typography": {"fontFamily": {"mono": ["Fira Code", " monospace "]}},
		"responsive": {"fluidTypography": true}
	}`))
	require.NoError(t, err)

	ts := Merge(Default(), p)
	assert.Equal(t, 2000, ts.ZIndex("modal"))
	assert.Equal(t, []string{"Fira Code", "monospace"}, ts.FontFamily("mono"))
	v, ok := ts.Lookup("responsive", "fluidTypography")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestParsePatch_InvalidJSON(t *testing.T) {
	_, err := ParsePatch([]byte(`{"colors":`))
	require.Error(t, err)
	var se *SchemaError
	assert.False(t, errors.As(err, &se), "decode errors are not schema errors")
}
