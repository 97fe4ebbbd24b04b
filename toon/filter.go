package toon

// FilterKeys returns a copy of v with every mapping key whose dot-path
// matches one of patterns removed. A pattern segment of "*" matches any
// single path segment; patterns only match paths of the same length. This
// is a semantic pre-encode transform outside the core TOON contract (spec
// §6 "Semantic filter layer") - TOON's own decode/encode never calls it.
func FilterKeys(v *Value, patterns []string) *Value {
	keys := make(JsonKeys, len(patterns))
	for i, p := range patterns {
		keys[i] = JsonKey(p)
	}
	return filterValue(v, "", keys)
}

func filterValue(v *Value, path JsonKey, patterns JsonKeys) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindMapping:
		out := NewMapping()
		for _, e := range v.Mapping.Entries() {
			childPath := path.CopyPlusAdd(JsonKey(e.Key))
			if childPath.MatchesAny(patterns) {
				continue
			}
			out.Mapping.Set(e.Key, filterValue(e.Value, childPath, patterns))
		}
		return out
	case KindSequence:
		items := make([]*Value, len(v.Sequence))
		for i, item := range v.Sequence {
			items[i] = filterValue(item, path, patterns)
		}
		return &Value{Kind: KindSequence, Sequence: items}
	default:
		return v
	}
}
