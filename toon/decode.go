package toon

import (
	"strings"

	"github.com/jpfluger/toonengine/aerr"
)

// Decode parses toonText and renders the recovered tree as JSON text.
func Decode(toonText string) (string, error) {
	v, err := DecodeToon(toonText)
	if err != nil {
		return "", err
	}
	b, err := EncodeJSON(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// toonLine is one physical line of a TOON document, with its indentation
// already resolved to a nesting level.
type toonLine struct {
	level   int
	content string
}

// DecodeToon parses a TOON document into its Value tree, per the grammar
// and rejection rules of spec §4.5.2/§4.5.4.
func DecodeToon(text string) (*Value, error) {
	raw := strings.Split(text, "\n")
	for len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return NewMapping(), nil
	}

	lines, err := tokenizeLines(raw)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].level > effectiveDepth(lines[i-1])+1 {
			return nil, aerr.Newf(aerr.KindToonParse, "indentation jumps more than one level at line %d", i+1)
		}
	}
	if lines[0].level != 0 {
		return nil, aerr.New(aerr.KindToonParse, "root line must not be indented")
	}

	pos := 0

	if key, n, hasTabular, cols, inlineRest, ok := matchArrayHeader(lines[0].content); ok && key == "" {
		pos++
		val, err := parseArrayBody(lines, &pos, 0, n, hasTabular, cols, inlineRest)
		if err != nil {
			return nil, err
		}
		if pos != len(lines) {
			return nil, aerr.New(aerr.KindToonParse, "trailing content after root array")
		}
		return val, nil
	}

	if len(lines) == 1 && !looksLikeKeyedLine(lines[0].content) {
		return decodePrimitiveToken(lines[0].content, ctxMappingValue)
	}

	m, err := parseMappingBody(lines, &pos, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(lines) {
		return nil, aerr.Newf(aerr.KindToonParse, "unexpected indentation at line %d", pos+1)
	}
	return &Value{Kind: KindMapping, Mapping: m}, nil
}

// effectiveDepth is the nesting depth a line's content sits at for the
// purpose of validating the NEXT line's indentation. A "- " marker adds
// two columns (one indent level) beyond the line's own raw indentation, so
// whatever follows it may legally sit one level deeper than line.level.
func effectiveDepth(line toonLine) int {
	if strings.HasPrefix(line.content, "-") {
		return line.level + 1
	}
	return line.level
}

// tokenizeLines splits each raw line into its indentation level and
// content, rejecting tabs and odd-length indentation.
func tokenizeLines(raw []string) ([]toonLine, error) {
	out := make([]toonLine, len(raw))
	for i, line := range raw {
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			if line[n] == '\t' {
				return nil, aerr.Newf(aerr.KindToonParse, "tab character in indentation at line %d", i+1)
			}
			n++
		}
		if n%2 != 0 {
			return nil, aerr.Newf(aerr.KindToonParse, "odd-count indentation at line %d", i+1)
		}
		out[i] = toonLine{level: n / 2, content: line[n:]}
	}
	return out, nil
}

// parseMappingBody consumes consecutive lines at exactly level, building an
// OrderedMap, recursing into children at level+1 as needed.
func parseMappingBody(lines []toonLine, pos *int, level int) (*OrderedMap, error) {
	m := NewOrderedMap()
	for *pos < len(lines) && lines[*pos].level == level {
		content := lines[*pos].content
		if strings.HasPrefix(content, "-") {
			return nil, aerr.Newf(aerr.KindToonParse, "unexpected array element at line %d", *pos+1)
		}

		if key, n, hasTabular, cols, inlineRest, ok := matchArrayHeader(content); ok && key != "" {
			*pos++
			val, err := parseArrayBody(lines, pos, level, n, hasTabular, cols, inlineRest)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
			continue
		}

		key, rest, ok := matchMappingHeader(content)
		if !ok {
			return nil, aerr.Newf(aerr.KindToonParse, "malformed line %d: %q", *pos+1, content)
		}
		*pos++
		if rest == "" {
			if *pos < len(lines) && lines[*pos].level == level+1 {
				child, err := parseMappingBody(lines, pos, level+1)
				if err != nil {
					return nil, err
				}
				m.Set(key, &Value{Kind: KindMapping, Mapping: child})
			} else {
				m.Set(key, NewMapping())
			}
			continue
		}
		v, err := decodePrimitiveToken(rest, ctxMappingValue)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, nil
}

// parseArrayBody consumes the body belonging to an array header at
// headerLevel (already consumed by the caller), returning its Value.
func parseArrayBody(lines []toonLine, pos *int, headerLevel, n int, hasTabular bool, cols []string, inlineRest string) (*Value, error) {
	if n == 0 {
		return NewSequence(), nil
	}

	if hasTabular {
		rows := make([]*Value, 0, n)
		for i := 0; i < n; i++ {
			if *pos >= len(lines) || lines[*pos].level != headerLevel+1 {
				return nil, aerr.Newf(aerr.KindToonParse, "tabular array declared %d rows but found %d", n, i)
			}
			cells := splitCells(lines[*pos].content)
			if len(cells) != len(cols) {
				return nil, aerr.Newf(aerr.KindToonParse, "column mismatch at line %d: expected %d, got %d", *pos+1, len(cols), len(cells))
			}
			om := NewOrderedMap()
			for ci, col := range cols {
				v, err := decodePrimitiveToken(cells[ci], ctxArrayElement)
				if err != nil {
					return nil, err
				}
				om.Set(col, v)
			}
			rows = append(rows, &Value{Kind: KindMapping, Mapping: om})
			*pos++
		}
		if *pos < len(lines) && lines[*pos].level == headerLevel+1 {
			return nil, aerr.Newf(aerr.KindToonParse, "tabular array has more rows than declared count %d", n)
		}
		return &Value{Kind: KindSequence, Sequence: rows}, nil
	}

	if inlineRest != "" {
		cells := splitCells(inlineRest)
		if len(cells) != n {
			return nil, aerr.Newf(aerr.KindToonParse, "inline array declared %d elements but found %d", n, len(cells))
		}
		items := make([]*Value, n)
		for i, c := range cells {
			v, err := decodePrimitiveToken(c, ctxArrayElement)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return NewSequence(items...), nil
	}

	items := make([]*Value, 0, n)
	for i := 0; i < n; i++ {
		if *pos >= len(lines) || lines[*pos].level != headerLevel+1 || !strings.HasPrefix(lines[*pos].content, "-") {
			return nil, aerr.Newf(aerr.KindToonParse, "expanded array declared %d elements but found %d", n, i)
		}
		v, err := parseExpandedElement(lines, pos, headerLevel+1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return NewSequence(items...), nil
}

// parseExpandedElement consumes one "- ..." block whose dash sits at level.
func parseExpandedElement(lines []toonLine, pos *int, level int) (*Value, error) {
	content := lines[*pos].content
	rest := strings.TrimPrefix(content, "- ")
	if rest == content {
		rest = strings.TrimPrefix(content, "-")
	}
	*pos++

	if rest == "" {
		// A bare "-" with nothing following represents an empty mapping
		// element (an empty string would have been quoted as "").
		return NewMapping(), nil
	}

	if key, n, hasTabular, cols, inlineRest, ok := matchArrayHeader(rest); ok {
		if key == "" {
			// The element is itself a bare nested array, not a mapping.
			return parseArrayBody(lines, pos, level+1, n, hasTabular, cols, inlineRest)
		}
		om := NewOrderedMap()
		val, err := parseArrayBody(lines, pos, level+1, n, hasTabular, cols, inlineRest)
		if err != nil {
			return nil, err
		}
		om.Set(key, val)
		return finishExpandedMapping(lines, pos, level, om)
	}

	if !looksLikeKeyedLine(rest) {
		return decodePrimitiveToken(rest, ctxMappingValue)
	}

	om := NewOrderedMap()
	{
		key, valRest, _ := matchMappingHeader(rest)
		if valRest == "" {
			if *pos < len(lines) && lines[*pos].level == level+2 {
				child, err := parseMappingBody(lines, pos, level+2)
				if err != nil {
					return nil, err
				}
				om.Set(key, &Value{Kind: KindMapping, Mapping: child})
			} else {
				om.Set(key, NewMapping())
			}
		} else {
			v, err := decodePrimitiveToken(valRest, ctxMappingValue)
			if err != nil {
				return nil, err
			}
			om.Set(key, v)
		}
	}

	return finishExpandedMapping(lines, pos, level, om)
}

// finishExpandedMapping consumes any sibling keys of an expanded-array
// element's first entry (at level+1) and merges them into om in order.
func finishExpandedMapping(lines []toonLine, pos *int, level int, om *OrderedMap) (*Value, error) {
	if *pos < len(lines) && lines[*pos].level == level+1 {
		siblings, err := parseMappingBody(lines, pos, level+1)
		if err != nil {
			return nil, err
		}
		for _, e := range siblings.Entries() {
			om.Set(e.Key, e.Value)
		}
	}
	return &Value{Kind: KindMapping, Mapping: om}, nil
}
