// Package theme implements the design-token engine: the token schema, the
// built-in default set, the preset registry, the schema-guided deep merge,
// dark-mode overlay derivation, resolution and serialization.
package theme

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Kind tags a schema field as a branch or as one of the leaf value kinds.
type Kind uint8

const (
	KindBranch Kind = iota
	KindString      // free-form CSS value
	KindColor       // hex color, CSS color function or keyword
	KindList        // ordered string list, replaced wholesale (font stacks)
	KindLayer       // integer z-index or a sentinel string such as "auto"
	KindBool
	KindText // free text, serialized as a quoted CSS string
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "object"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	case KindList:
		return "list of strings"
	case KindLayer:
		return "integer or keyword"
	case KindBool:
		return "boolean"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Field is one node of the token schema. Branch fields carry ordered
// children; leaf fields carry a value kind.
type Field struct {
	Key      string
	Kind     Kind
	Children []*Field

	index map[string]*Field
}

// Child returns the child field with the given key, or nil when the key is
// outside the branch's closed key set.
func (f *Field) Child(key string) *Field {
	if f.index == nil {
		return nil
	}
	return f.index[key]
}

// IsBranch reports whether the field holds nested fields.
func (f *Field) IsBranch() bool {
	return f.Kind == KindBranch
}

// Leaf is a schema leaf together with its full path from the root.
type Leaf struct {
	Path  []string
	Field *Field
}

// ShadeKeys is the closed key set of every color scale.
var ShadeKeys = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

// ColorScales lists the shaded color branches under "colors".
var ColorScales = []string{"primary", "secondary", "success", "warning", "error", "info", "gray"}

// Schema is the root of the token schema. Declaration order is the
// serialization order.
var Schema = branch("",
	leaf("name", KindText),
	leaf("description", KindText),
	leaf("version", KindText),
	leaf("author", KindText),
	branch("colors", colorBranches()...),
	branch("spacing", join(
		leaves(KindString, "none", "xs", "sm", "md", "lg", "xl", "2xl", "3xl"),
		branch("button", leaves(KindString, "paddingX", "paddingY", "gap")...),
		branch("card", leaves(KindString, "padding", "gap")...),
		branch("input", leaves(KindString, "paddingX", "paddingY")...),
		branch("layout", leaves(KindString, "sidebarWidth", "headerHeight", "containerMaxWidth")...),
	)...),
	branch("typography",
		branch("fontFamily", leaves(KindList, "sans", "serif", "mono")...),
		branch("fontSize", leaves(KindString, "xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl")...),
		branch("fontWeight", leaves(KindString, "light", "normal", "medium", "semibold", "bold")...),
		branch("lineHeight", leaves(KindString, "tight", "normal", "relaxed")...),
		branch("letterSpacing", leaves(KindString, "tight", "normal", "wide")...),
	),
	branch("shadows", leaves(KindString, "none", "sm", "md", "lg", "xl", "inner", "card", "dropdown", "modal")...),
	branch("transitions", join(
		[]*Field{
			branch("duration", leaves(KindString, "fast", "normal", "slow")...),
			branch("easing", leaves(KindString, "linear", "easeIn", "easeOut", "easeInOut")...),
		},
		leaves(KindString, "button", "modal", "dropdown")...,
	)...),
	branch("breakpoints", leaves(KindString, "sm", "md", "lg", "xl", "2xl")...),
	branch("zIndex", leaves(KindLayer, "hide", "base", "dropdown", "sticky", "overlay", "modal", "popover", "toast", "tooltip", "auto")...),
	branch("responsive", leaves(KindBool, "enabled", "fluidTypography")...),
	branch("animations", leaves(KindBool, "enabled", "reducedMotion")...),
)

func colorBranches() []*Field {
	fields := make([]*Field, 0, len(ColorScales)+3)
	for _, name := range ColorScales {
		fields = append(fields, branch(name, leaves(KindColor, ShadeKeys...)...))
	}
	return append(fields,
		branch("background", leaves(KindColor, "primary", "secondary", "tertiary", "inverse", "overlay")...),
		branch("text", leaves(KindColor, "primary", "secondary", "tertiary", "inverse", "disabled", "link")...),
		branch("border", leaves(KindColor, "primary", "secondary", "focus", "error")...),
	)
}

func branch(key string, children ...*Field) *Field {
	f := &Field{Key: key, Kind: KindBranch, Children: children, index: make(map[string]*Field, len(children))}
	for _, c := range children {
		if _, dup := f.index[c.Key]; dup {
			panic("theme: duplicate schema key " + key + "." + c.Key)
		}
		f.index[c.Key] = c
	}
	return f
}

func leaf(key string, kind Kind) *Field {
	return &Field{Key: key, Kind: kind}
}

func leaves(kind Kind, keys ...string) []*Field {
	out := make([]*Field, len(keys))
	for i, k := range keys {
		out[i] = leaf(k, kind)
	}
	return out
}

func join(head []*Field, tail ...*Field) []*Field {
	out := make([]*Field, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}

// Leaves returns every leaf below f in declaration order.
func (f *Field) Leaves() []Leaf {
	var out []Leaf
	var walk func(n *Field, prefix []string)
	walk = func(n *Field, prefix []string) {
		for _, c := range n.Children {
			p := make([]string, len(prefix)+1)
			copy(p, prefix)
			p[len(prefix)] = c.Key
			if c.IsBranch() {
				walk(c, p)
				continue
			}
			out = append(out, Leaf{Path: p, Field: c})
		}
	}
	walk(f, nil)
	return out
}

// Lookup finds the field at path, or nil.
func (f *Field) Lookup(path ...string) *Field {
	cur := f
	for _, k := range path {
		if !cur.IsBranch() {
			return nil
		}
		cur = cur.Child(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// TokenSet is a complete, schema-shaped set of design tokens. The zero value
// is empty; complete sets come from Default, Merge or NewTokenSet. A TokenSet
// is immutable: accessors return copies.
type TokenSet struct {
	tree map[string]any
}

// Patch is a partial token set: nested objects keyed like the schema, holding
// only the branches and leaves it changes.
type Patch map[string]any

// NewTokenSet validates tree against the schema and requires it to be
// complete.
func NewTokenSet(tree map[string]any) (TokenSet, error) {
	norm, err := ValidatePatch(Patch(tree))
	if err != nil {
		return TokenSet{}, err
	}
	ts := TokenSet{tree: norm}
	if missing := ts.MissingPaths(); len(missing) > 0 {
		return TokenSet{}, &SchemaError{Path: missing[0], Reason: "missing required token"}
	}
	return ts, nil
}

// Lookup returns a copy of the value at path.
func (t TokenSet) Lookup(path ...string) (any, bool) {
	var cur any = t.tree
	for _, k := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cloneValue(cur), true
}

// String returns the string leaf at path, or "" when absent or not a string.
func (t TokenSet) String(path ...string) string {
	v, _ := t.Lookup(path...)
	s, _ := v.(string)
	return s
}

// Color returns colors.<scale>.<shade>, for example Color("primary", "500").
// Semantic roles work the same way: Color("background", "primary").
func (t TokenSet) Color(scale, shade string) string {
	return t.String("colors", scale, shade)
}

// Spacing returns a flat spacing token such as "md".
func (t TokenSet) Spacing(key string) string {
	return t.String("spacing", key)
}

// FontSize returns typography.fontSize.<key>.
func (t TokenSet) FontSize(key string) string {
	return t.String("typography", "fontSize", key)
}

// FontFamily returns typography.fontFamily.<key>.
func (t TokenSet) FontFamily(key string) []string {
	v, _ := t.Lookup("typography", "fontFamily", key)
	l, _ := v.([]string)
	return l
}

// ZIndex returns the layer value: an int or a keyword string.
func (t TokenSet) ZIndex(key string) any {
	v, _ := t.Lookup("zIndex", key)
	return v
}

// Name returns the metadata name.
func (t TokenSet) Name() string {
	return t.String("name")
}

// Tree returns a deep copy of the underlying value tree.
func (t TokenSet) Tree() map[string]any {
	return cloneTree(t.tree)
}

// Equal reports whether both sets hold identical values.
func (t TokenSet) Equal(o TokenSet) bool {
	return reflect.DeepEqual(t.tree, o.tree)
}

// IsZero reports whether the set has no tokens at all.
func (t TokenSet) IsZero() bool {
	return len(t.tree) == 0
}

// MissingPaths lists the dotted paths of schema leaves absent from t.
func (t TokenSet) MissingPaths() []string {
	var missing []string
	for _, l := range Schema.Leaves() {
		if _, ok := t.Lookup(l.Path...); !ok {
			missing = append(missing, strings.Join(l.Path, "."))
		}
	}
	return missing
}

// MarshalJSON encodes the token tree.
func (t TokenSet) MarshalJSON() ([]byte, error) {
	if t.tree == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.tree)
}

// UnmarshalJSON decodes and validates a complete token tree.
func (t *TokenSet) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := NewTokenSet(raw)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Patch:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

func cloneTree(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneTree(x)
	case Patch:
		return cloneTree(map[string]any(x))
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	default:
		return v
	}
}

// Clone returns a deep copy of p.
func (p Patch) Clone() Patch {
	if p == nil {
		return Patch{}
	}
	return Patch(cloneTree(map[string]any(p)))
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p) == 0
}
