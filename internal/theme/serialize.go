package theme

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Pair is one flattened token: a kebab-case key and its textual value.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// listSeparator joins list leaves such as font stacks.
const listSeparator = ", "

// Serialize flattens t into key/value pairs in schema declaration order.
// Equal token sets always serialize to identical slices.
func Serialize(t TokenSet) []Pair {
	leaves := Schema.Leaves()
	out := make([]Pair, 0, len(leaves))
	for _, l := range leaves {
		v, ok := t.Lookup(l.Path...)
		if !ok {
			continue
		}
		value := formatLeaf(v)
		if l.Field.Kind == KindText {
			value = quoteCSS(value)
		}
		out = append(out, Pair{Key: FlatKey(l.Path), Value: value})
	}
	return out
}

// VariablesBlock renders pairs as custom properties on the document root.
func VariablesBlock(pairs []Pair) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, p := range pairs {
		b.WriteString("  --")
		b.WriteString(p.Key)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Checksum returns a short digest of a variables block, suitable as an ETag.
func Checksum(block string) string {
	return strconv.FormatUint(xxhash.Sum64String(block), 16)
}

// FlatKey joins path segments in kebab case: colors.primary.500 becomes
// colors-primary-500 and typography.fontSize.lg becomes typography-font-size-lg.
func FlatKey(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = kebab(p)
	}
	return strings.Join(parts, "-")
}

func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatLeaf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, listSeparator)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

var cssStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteCSS renders s as a double-quoted CSS string.
func quoteCSS(s string) string {
	return `"` + cssStringEscaper.Replace(s) + `"`
}

func unquoteCSS(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", s)
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\':
			i++
			if i == len(body) {
				return "", fmt.Errorf("dangling escape in %q", s)
			}
			b.WriteByte(body[i])
		case c == '"':
			return "", fmt.Errorf("unescaped quote in %q", s)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

var (
	flatIndexOnce sync.Once
	flatIndex     map[string]Leaf
)

func leafByFlatKey(key string) (Leaf, bool) {
	flatIndexOnce.Do(func() {
		leaves := Schema.Leaves()
		flatIndex = make(map[string]Leaf, len(leaves))
		for _, l := range leaves {
			flatIndex[FlatKey(l.Path)] = l
		}
	})
	l, ok := flatIndex[key]
	return l, ok
}

// ParsePairs rebuilds the nested token tree from flattened pairs. It is the
// inverse of Serialize: ParsePairs(Serialize(t)) holds exactly t's leaves.
func ParsePairs(pairs []Pair) (Patch, error) {
	out := make(map[string]any)
	for _, p := range pairs {
		l, ok := leafByFlatKey(p.Key)
		if !ok {
			return nil, &SchemaError{Path: p.Key, Reason: "unknown flattened key"}
		}
		v, err := parseLeaf(l.Field.Kind, p.Value)
		if err != nil {
			return nil, &SchemaError{Path: strings.Join(l.Path, "."), Reason: err.Error()}
		}
		node := out
		for _, k := range l.Path[:len(l.Path)-1] {
			next, ok := node[k].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[k] = next
			}
			node = next
		}
		node[l.Path[len(l.Path)-1]] = v
	}
	return Patch(out), nil
}

func parseLeaf(kind Kind, s string) (any, error) {
	switch kind {
	case KindList:
		items := strings.Split(s, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return items, nil
	case KindLayer:
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		return s, nil
	case KindBool:
		return strconv.ParseBool(s)
	case KindText:
		return unquoteCSS(s)
	default:
		return s, nil
	}
}

// ParseBlock reads the pairs back out of a variables block.
func ParseBlock(block string) ([]Pair, error) {
	var pairs []Pair
	sc := bufio.NewScanner(strings.NewReader(block))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == ":root {" || line == "}" {
			continue
		}
		if !strings.HasPrefix(line, "--") || !strings.HasSuffix(line, ";") {
			return nil, fmt.Errorf("malformed declaration %q", line)
		}
		decl := strings.TrimSuffix(strings.TrimPrefix(line, "--"), ";")
		key, value, ok := strings.Cut(decl, ": ")
		if !ok {
			return nil, fmt.Errorf("malformed declaration %q", line)
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
