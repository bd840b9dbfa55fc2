package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatKey(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"colors", "primary", "500"}, "colors-primary-500"},
		{[]string{"typography", "fontSize", "lg"}, "typography-font-size-lg"},
		{[]string{"zIndex", "modal"}, "z-index-modal"},
		{[]string{"transitions", "easing", "easeInOut"}, "transitions-easing-ease-in-out"},
		{[]string{"spacing", "layout", "containerMaxWidth"}, "spacing-layout-container-max-width"},
		{[]string{"name"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FlatKey(tt.path))
		})
	}
}

func TestSerialize_FollowsSchemaOrder(t *testing.T) {
	pairs := Serialize(Default())
	leaves := Schema.Leaves()
	require.Len(t, pairs, len(leaves))
	for i, l := range leaves {
		assert.Equal(t, FlatKey(l.Path), pairs[i].Key)
	}

	assert.Equal(t, Pair{Key: "name", Value: `"Default"`}, pairs[0])
	assert.Equal(t, "colors-primary-50", pairs[4].Key)
}

func TestSerialize_LeafFormatting(t *testing.T) {
	values := make(map[string]string)
	for _, p := range Serialize(Default()) {
		values[p.Key] = p.Value
	}

	assert.Equal(t, "#3b82f6", values["colors-primary-500"])
	assert.Equal(t, "Inter, system-ui, -apple-system, 'Segoe UI', sans-serif", values["typography-font-family-sans"])
	assert.Equal(t, "-1", values["z-index-hide"])
	assert.Equal(t, "auto", values["z-index-auto"])
	assert.Equal(t, "true", values["animations-enabled"])
	assert.Equal(t, "false", values["responsive-fluid-typography"])
}

func TestSerialize_Deterministic(t *testing.T) {
	r := NewResolver(nil)
	a := VariablesBlock(Serialize(r.Resolve("minimal", nil, true)))
	b := VariablesBlock(Serialize(r.Resolve("minimal", nil, true)))
	assert.Equal(t, a, b)
	assert.Equal(t, Checksum(a), Checksum(b))
	assert.NotEqual(t, Checksum(a), Checksum(VariablesBlock(Serialize(r.Resolve("minimal", nil, false)))))
}

func TestVariablesBlock_Format(t *testing.T) {
	block := VariablesBlock([]Pair{{Key: "a-b", Value: "1px"}, {Key: "c", Value: "x, y"}})
	assert.Equal(t, ":root {\n  --a-b: 1px;\n  --c: x, y;\n}\n", block)
}

func TestParsePairs_RoundTrip(t *testing.T) {
	r := NewResolver(nil)
	for _, preset := range r.Presets().List() {
		for _, dark := range []bool{false, true} {
			ts := r.Resolve(preset.ID, Patch{"zIndex": map[string]any{"toast": -5}}, dark)

			parsed, err := ParsePairs(Serialize(ts))
			require.NoError(t, err)
			back, err := NewTokenSet(parsed)
			require.NoError(t, err)
			assert.True(t, ts.Equal(back), "preset %s dark=%v", preset.ID, dark)
		}
	}
}

func TestParseBlock_RoundTrip(t *testing.T) {
	ts := NewResolver(nil).Resolve("creative", nil, false)
	pairs := Serialize(ts)

	got, err := ParseBlock(VariablesBlock(pairs))
	require.NoError(t, err)
	assert.Equal(t, pairs, got)

	parsed, err := ParsePairs(got)
	require.NoError(t, err)
	back, err := NewTokenSet(parsed)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))
}

func TestParsePairs_Errors(t *testing.T) {
	_, err := ParsePairs([]Pair{{Key: "colors-primary-550", Value: "#fff"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "colors-primary-550"))

	_, err = ParsePairs([]Pair{{Key: "animations-enabled", Value: "maybe"}})
	require.Error(t, err)
}

func TestParseBlock_Malformed(t *testing.T) {
	_, err := ParseBlock(":root {\n  color: red;\n}\n")
	require.Error(t, err)
}

func TestSerialize_QuotesText(t *testing.T) {
	ts := Merge(Default(), Patch{"description": `Acme's "bold" \ brand`})
	values := make(map[string]string)
	for _, p := range Serialize(ts) {
		values[p.Key] = p.Value
	}
	assert.Equal(t, `"Acme's \"bold\" \\ brand"`, values["description"])
	assert.Equal(t, `"1.0.0"`, values["version"])
}

func TestParsePairs_TextErrors(t *testing.T) {
	for _, v := range []string{`Default`, `"Default`, `"a"b"`, `"a\"`} {
		_, err := ParsePairs([]Pair{{Key: "name", Value: v}})
		assert.Error(t, err, v)
	}
}

// cssDeclarationKeys scans a variables block the way a CSS tokenizer does and
// returns the custom property names it declares. Comments, stray escapes and
// unterminated strings fail the test.
func cssDeclarationKeys(t *testing.T, block string) []string {
	t.Helper()
	body, ok := strings.CutPrefix(block, ":root {")
	require.True(t, ok, "block must open with :root")

	var keys []string
	var decl strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"' || c == '\'':
			end := i + 1
			for ; end < len(body) && body[end] != c; end++ {
				require.NotEqual(t, byte('\n'), body[end], "string runs past end of line")
				if body[end] == '\\' {
					end++
				}
			}
			require.Less(t, end, len(body), "unterminated string")
			decl.WriteString(body[i : end+1])
			i = end
		case c == '\\':
			t.Fatalf("escape outside string near %q", decl.String())
		case c == '/' && i+1 < len(body) && body[i+1] == '*':
			t.Fatalf("comment opened near %q", decl.String())
		case c == '{':
			t.Fatalf("nested block near %q", decl.String())
		case c == ';':
			name, _, found := strings.Cut(strings.TrimSpace(decl.String()), ":")
			require.True(t, found, "declaration without colon: %q", decl.String())
			keys = append(keys, strings.TrimPrefix(name, "--"))
			decl.Reset()
		case c == '}':
			require.Empty(t, strings.TrimSpace(decl.String()), "unterminated declaration")
			require.Equal(t, "\n", body[i+1:], "content after block")
			return keys
		default:
			decl.WriteByte(c)
		}
	}
	t.Fatal("block never closed")
	return nil
}

func TestVariablesBlock_CSSSafe(t *testing.T) {
	hostile := Patch{
		"name":        `Acme /* brand`,
		"description": `Acme's brand`,
		"version":     `1.0 \`,
		"author":      `"Studio"; } body { color: red`,
		"typography": map[string]any{"fontFamily": map[string]any{
			"sans": []any{"'Acme Sans'", `"Helvetica Neue"`, "sans-serif"},
		}},
	}
	valid, err := ValidatePatch(hostile)
	require.NoError(t, err)

	r := NewResolver(nil)
	for _, preset := range r.Presets().List() {
		for _, overrides := range []Patch{nil, valid} {
			for _, dark := range []bool{false, true} {
				pairs := Serialize(r.Resolve(preset.ID, overrides, dark))
				keys := cssDeclarationKeys(t, VariablesBlock(pairs))
				require.Len(t, keys, len(pairs), "preset %s dark=%v", preset.ID, dark)
				for i, p := range pairs {
					assert.Equal(t, p.Key, keys[i])
				}
			}
		}
	}
}

func TestParseBlock_RoundTripText(t *testing.T) {
	overrides, err := ValidatePatch(Patch{"name": `Acme "One" \ Two`, "author": "O'Brien; {x}"})
	require.NoError(t, err)
	ts := NewResolver(nil).Resolve(DefaultPresetID, overrides, false)

	got, err := ParseBlock(VariablesBlock(Serialize(ts)))
	require.NoError(t, err)
	parsed, err := ParsePairs(got)
	require.NoError(t, err)
	back, err := NewTokenSet(parsed)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))
	assert.Equal(t, `Acme "One" \ Two`, back.Name())
}
