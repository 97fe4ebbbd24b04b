package toon

import (
	"fmt"
	"strings"
)

// Encode parses jsonText as JSON and renders it as a TOON document.
func Encode(jsonText string) (string, error) {
	v, err := DecodeJSON([]byte(jsonText))
	if err != nil {
		return "", err
	}
	return EncodeValue(v)
}

// EncodeValue renders v as a TOON document per spec §4.5.2-§4.5.3: key
// insertion order preserved, the most compact of the three array forms
// chosen per element, and the quoting rules of §4.5.2 applied to every
// string token.
func EncodeValue(v *Value) (string, error) {
	if v == nil {
		return "", nil
	}
	switch v.Kind {
	case KindMapping:
		if v.Mapping.Len() == 0 {
			return "", nil
		}
		lines, err := encodeMappingLines(0, v.Mapping)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	case KindSequence:
		lines, err := encodeArrayLines(0, "", v.Sequence)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	default:
		tok, err := encodePrimitive(v, ctxMappingValue)
		if err != nil {
			return "", err
		}
		return tok, nil
	}
}

func indentPad(level int) string {
	return strings.Repeat("  ", level)
}

// encodeMappingLines renders every entry of m at the given indent level.
func encodeMappingLines(level int, m *OrderedMap) ([]string, error) {
	pad := indentPad(level)
	var out []string
	for _, e := range m.Entries() {
		switch e.Value.Kind {
		case KindMapping:
			if e.Value.Mapping.Len() == 0 {
				out = append(out, pad+e.Key+":")
				continue
			}
			out = append(out, pad+e.Key+":")
			child, err := encodeMappingLines(level+1, e.Value.Mapping)
			if err != nil {
				return nil, err
			}
			out = append(out, child...)
		case KindSequence:
			arrLines, err := encodeArrayLines(level, e.Key, e.Value.Sequence)
			if err != nil {
				return nil, err
			}
			out = append(out, arrLines...)
		default:
			tok, err := encodePrimitive(e.Value, ctxMappingValue)
			if err != nil {
				return nil, err
			}
			out = append(out, pad+e.Key+": "+tok)
		}
	}
	return out, nil
}

// encodeArrayLines renders a sequence, keyed by key (key == "" for a
// top-level or nested-header-less array), at the given indent level.
func encodeArrayLines(level int, key string, items []*Value) ([]string, error) {
	pad := indentPad(level)
	header := pad + key + fmt.Sprintf("[%d]", len(items))

	if len(items) == 0 {
		return []string{header + ":"}, nil
	}

	if cols, ok := tabularEligible(items); ok {
		lines := make([]string, 0, len(items)+1)
		lines = append(lines, header+"{"+strings.Join(cols, ",")+"}:")
		rowPad := indentPad(level + 1)
		for _, item := range items {
			cells := make([]string, len(cols))
			for i, col := range cols {
				val, _ := item.Mapping.Get(col)
				tok, err := encodePrimitive(val, ctxArrayElement)
				if err != nil {
					return nil, err
				}
				cells[i] = tok
			}
			lines = append(lines, rowPad+strings.Join(cells, ","))
		}
		return lines, nil
	}

	if allPrimitive(items) {
		tokens := make([]string, len(items))
		for i, item := range items {
			tok, err := encodePrimitive(item, ctxArrayElement)
			if err != nil {
				return nil, err
			}
			tokens[i] = tok
		}
		return []string{header + ": " + strings.Join(tokens, ",")}, nil
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, header+":")
	for _, item := range items {
		elemLines, err := encodeExpandedElement(level+1, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, elemLines...)
	}
	return lines, nil
}

// encodeExpandedElement renders one element of an expanded array. level is
// the indent depth the leading "- " sits at.
func encodeExpandedElement(level int, v *Value) ([]string, error) {
	pad := indentPad(level)
	switch v.Kind {
	case KindMapping:
		if v.Mapping.Len() == 0 {
			return []string{pad + "-"}, nil
		}
		lines, err := encodeMappingLines(level+1, v.Mapping)
		if err != nil {
			return nil, err
		}
		childPad := indentPad(level + 1)
		out := make([]string, len(lines))
		out[0] = pad + "- " + strings.TrimPrefix(lines[0], childPad)
		copy(out[1:], lines[1:])
		return out, nil
	case KindSequence:
		lines, err := encodeArrayLines(level+1, "", v.Sequence)
		if err != nil {
			return nil, err
		}
		childPad := indentPad(level + 1)
		out := make([]string, len(lines))
		out[0] = pad + "- " + strings.TrimPrefix(lines[0], childPad)
		copy(out[1:], lines[1:])
		return out, nil
	default:
		tok, err := encodePrimitive(v, ctxMappingValue)
		if err != nil {
			return nil, err
		}
		return []string{pad + "- " + tok}, nil
	}
}

// tabularEligible reports whether items qualify for the tabular array form:
// every element a mapping, all sharing identical key order, every value a
// primitive, and no key containing a character that would break the
// "{k1,k2,...}" header syntax.
func tabularEligible(items []*Value) ([]string, bool) {
	if len(items) == 0 || items[0].Kind != KindMapping {
		return nil, false
	}
	keys := items[0].Mapping.Keys()
	for _, k := range keys {
		if strings.ContainsAny(k, ",{}") {
			return nil, false
		}
	}
	for _, it := range items {
		if it.Kind != KindMapping {
			return nil, false
		}
		ks := it.Mapping.Keys()
		if len(ks) != len(keys) {
			return nil, false
		}
		for i := range ks {
			if ks[i] != keys[i] {
				return nil, false
			}
		}
		for _, k := range ks {
			val, _ := it.Mapping.Get(k)
			if !val.IsPrimitive() {
				return nil, false
			}
		}
	}
	return keys, true
}

func allPrimitive(items []*Value) bool {
	for _, it := range items {
		if !it.IsPrimitive() {
			return false
		}
	}
	return true
}
