package theme

// Merge applies patches to a copy of base, left to right. Branches present
// on both sides are merged key by key; leaves, lists included, are replaced
// wholesale. Keys absent from a patch are inherited. Merge walks the schema,
// so keys outside the closed key sets and leaves of the wrong kind are
// skipped; callers validate patches with ValidatePatch to have those
// reported instead. base is never modified.
func Merge(base TokenSet, patches ...Patch) TokenSet {
	out := cloneTree(base.tree)
	if out == nil {
		out = make(map[string]any)
	}
	for _, p := range patches {
		mergeInto(Schema, out, map[string]any(p))
	}
	return TokenSet{tree: out}
}

// MergePatch combines two partial patches with the same semantics as Merge:
// b wins on every leaf it sets, everything else in a is kept.
func MergePatch(a, b Patch) Patch {
	out := cloneTree(map[string]any(a))
	if out == nil {
		out = make(map[string]any)
	}
	mergeInto(Schema, out, map[string]any(b))
	return Patch(out)
}

func mergeInto(f *Field, dst, src map[string]any) {
	if len(src) == 0 {
		return
	}
	for _, child := range f.Children {
		v, ok := src[child.Key]
		if !ok {
			continue
		}
		if child.IsBranch() {
			srcBranch, ok := asMap(v)
			if !ok {
				continue
			}
			dstBranch, ok := dst[child.Key].(map[string]any)
			if !ok {
				dstBranch = make(map[string]any, len(srcBranch))
				dst[child.Key] = dstBranch
			}
			mergeInto(child, dstBranch, srcBranch)
			continue
		}
		norm, err := normalizeLeaf(child.Kind, v)
		if err != nil {
			continue
		}
		dst[child.Key] = norm
	}
}
