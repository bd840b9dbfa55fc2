package theme

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SchemaError reports a patch that does not fit the token schema.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "theme: " + e.Reason
	}
	return fmt.Sprintf("theme: %s: %s", e.Path, e.Reason)
}

// ParsePatch decodes JSON text into a validated patch.
func ParsePatch(data []byte) (Patch, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return ValidatePatch(Patch(raw))
}

// ValidatePatch checks p against the schema and returns a normalised copy:
// JSON numbers become ints and JSON arrays become []string. Unknown keys and
// values of the wrong shape are rejected with a *SchemaError.
func ValidatePatch(p Patch) (Patch, error) {
	if p == nil {
		return Patch{}, nil
	}
	out, err := normalizeBranch(Schema, map[string]any(p), "")
	if err != nil {
		return nil, err
	}
	return Patch(out), nil
}

func normalizeBranch(f *Field, in map[string]any, prefix string) (map[string]any, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(in))
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		child := f.Child(k)
		if child == nil {
			return nil, &SchemaError{Path: path, Reason: "unknown key"}
		}
		v := in[k]
		if child.IsBranch() {
			m, ok := asMap(v)
			if !ok {
				return nil, &SchemaError{Path: path, Reason: fmt.Sprintf("expected object, got %s", describe(v))}
			}
			norm, err := normalizeBranch(child, m, path)
			if err != nil {
				return nil, err
			}
			out[k] = norm
			continue
		}
		norm, err := normalizeLeaf(child.Kind, v)
		if err != nil {
			return nil, &SchemaError{Path: path, Reason: err.Error()}
		}
		out[k] = norm
	}
	return out, nil
}

func normalizeLeaf(kind Kind, v any) (any, error) {
	if _, isMap := asMap(v); isMap {
		return nil, fmt.Errorf("expected %s, got object", kind)
	}
	switch kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %s", kind, describe(v))
		}
		return s, checkCSSValue(s)
	case KindText:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %s", kind, describe(v))
		}
		return s, checkText(s)
	case KindColor:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %s", kind, describe(v))
		}
		if err := checkCSSValue(s); err != nil {
			return nil, err
		}
		return s, checkColor(s)
	case KindList:
		return normalizeList(v)
	case KindLayer:
		return normalizeLayer(v)
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %s", kind, describe(v))
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported kind %d", kind)
	}
}

func normalizeList(v any) ([]string, error) {
	var items []string
	switch x := v.(type) {
	case []string:
		items = append([]string(nil), x...)
	case []any:
		items = make([]string, len(x))
		for i := range x {
			s, ok := x[i].(string)
			if !ok {
				return nil, fmt.Errorf("list item %d: expected string, got %s", i, describe(x[i]))
			}
			items[i] = s
		}
	default:
		return nil, fmt.Errorf("expected %s, got %s", KindList, describe(v))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("list must not be empty")
	}
	for i, s := range items {
		s = strings.TrimSpace(s)
		items[i] = s
		if s == "" || strings.Contains(s, ",") {
			return nil, fmt.Errorf("list item %d: must be non-empty and contain no commas", i)
		}
		if err := checkCSSValue(s); err != nil {
			return nil, fmt.Errorf("list item %d: %w", i, err)
		}
	}
	return items, nil
}

func normalizeLayer(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return nil, fmt.Errorf("expected integer, got %v", x)
		}
		return int(x), nil
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %s", x)
		}
		return n, nil
	case string:
		if x == "" {
			return nil, fmt.Errorf("keyword must not be empty")
		}
		if _, err := strconv.Atoi(x); err == nil {
			return nil, fmt.Errorf("numeric layer %q must be a number, not a string", x)
		}
		return x, checkCSSValue(x)
	default:
		return nil, fmt.Errorf("expected %s, got %s", KindLayer, describe(v))
	}
}

// checkCSSValue rejects values that could end their declaration early or
// swallow the declarations after it in the variables block.
func checkCSSValue(s string) error {
	if strings.ContainsAny(s, ";{}<>\\\n\r\f") {
		return fmt.Errorf("value %q contains a forbidden character", s)
	}
	if strings.Contains(s, "/*") || strings.Contains(s, "*/") {
		return fmt.Errorf("value %q contains a comment marker", s)
	}
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		}
	}
	if quote != 0 {
		return fmt.Errorf("value %q has an unterminated quoted string", s)
	}
	return nil
}

// checkText accepts any printable text. Text leaves are quoted and escaped on
// serialization, so only control characters and markup brackets are refused.
func checkText(s string) error {
	for _, r := range s {
		if r < 0x20 || r == 0x7f || r == '<' || r == '>' {
			return fmt.Errorf("text %q contains a forbidden character", s)
		}
	}
	return nil
}

var colorFuncs = []string{"rgb(", "rgba(", "hsl(", "hsla(", "var(", "color-mix("}

func checkColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("color must not be empty")
	}
	if strings.HasPrefix(s, "#") {
		hex := s
		if len(s) == 9 {
			if _, err := strconv.ParseUint(s[7:], 16, 8); err != nil {
				return fmt.Errorf("invalid alpha in color %q", s)
			}
			hex = s[:7]
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("invalid hex color %q", s)
		}
		return nil
	}
	lower := strings.ToLower(s)
	for _, fn := range colorFuncs {
		if strings.HasPrefix(lower, fn) && strings.HasSuffix(lower, ")") {
			return nil
		}
	}
	for _, r := range lower {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("invalid color %q", s)
		}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, float64, json.Number:
		return "number"
	case []any, []string:
		return "list"
	case map[string]any, Patch:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
