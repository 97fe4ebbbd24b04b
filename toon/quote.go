package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpfluger/toonengine/aerr"
)

// quoteContext distinguishes the two places comma and colon carry special
// meaning: a mapping's "key: value" line versus a comma-separated inline
// array or tabular row cell.
type quoteContext int

const (
	ctxMappingValue quoteContext = iota
	ctxArrayElement
)

// numericPattern matches any bare token that would parse as a JSON integer
// or number (with optional fraction and/or exponent).
var numericPattern = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)

// integerOnlyPattern matches the subset of numericPattern with no fraction
// or exponent, i.e. the textual form decode infers as an integer.
var integerOnlyPattern = regexp.MustCompile(`^-?(0|[1-9]\d*)$`)

func looksNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

func isIntegerForm(s string) bool {
	return integerOnlyPattern.MatchString(s)
}

func hasEdgeWhitespace(s string) bool {
	if s == "" {
		return false
	}
	isWS := func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
	return isWS(s[0]) || isWS(s[len(s)-1])
}

// needsQuote reports whether string s, if emitted bare in ctx, would be
// ambiguous with another primitive type or break the surrounding grammar,
// per the quoting table in spec §4.5.2.
func needsQuote(s string, ctx quoteContext) bool {
	if s == "" {
		return true
	}
	if s == "null" || s == "true" || s == "false" {
		return true
	}
	if looksNumeric(s) {
		return true
	}
	if hasEdgeWhitespace(s) {
		return true
	}
	if strings.ContainsAny(s, "[]{}") {
		return true
	}
	if strings.HasPrefix(s, "-") {
		return true
	}
	if strings.HasPrefix(s, `"`) {
		return true
	}
	if strings.ContainsAny(s, "\n\r\t") {
		return true
	}
	switch ctx {
	case ctxMappingValue:
		if strings.Contains(s, ":") {
			return true
		}
	case ctxArrayElement:
		if strings.Contains(s, ",") {
			return true
		}
	}
	return false
}

// quoteString wraps s in double quotes, escaping backslash, quote, and
// control characters per spec §4.5.2.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// unquote reverses quoteString: tok must be a complete "..." token.
func unquote(tok string) (string, error) {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return "", aerr.Newf(aerr.KindToonParse, "malformed quoted token %q", tok)
	}
	inner := tok[1 : len(tok)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(inner) {
			return "", aerr.Newf(aerr.KindToonParse, "unterminated escape in %q", tok)
		}
		switch inner[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 >= len(inner) {
				return "", aerr.Newf(aerr.KindToonParse, "truncated \\u escape in %q", tok)
			}
			hex := inner[i+1 : i+5]
			n, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return "", aerr.Newf(aerr.KindToonParse, "invalid \\u escape %q", hex)
			}
			b.WriteRune(rune(n))
			i += 4
		default:
			return "", aerr.Newf(aerr.KindToonParse, "invalid escape \\%c in %q", inner[i], tok)
		}
	}
	return b.String(), nil
}

// encodePrimitive renders a primitive Value as its TOON token in ctx.
func encodePrimitive(v *Value, ctx quoteContext) (string, error) {
	switch v.Kind {
	case KindNull:
		return "null", nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case KindNumber:
		return formatNumberToken(v.Number), nil
	case KindString:
		if needsQuote(v.Str, ctx) {
			return quoteString(v.Str), nil
		}
		return v.Str, nil
	default:
		return "", aerr.Newf(aerr.KindEncode, "value of kind %d is not a primitive", v.Kind)
	}
}

// formatNumberToken renders a float so its textual form always carries a
// '.' or exponent, preserving the integer/number distinction on decode.
func formatNumberToken(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// decodePrimitiveToken parses a single bare-or-quoted TOON token (already
// isolated from its surrounding comma/line context) into a Value.
func decodePrimitiveToken(tok string, ctx quoteContext) (*Value, error) {
	if tok == "" {
		return nil, aerr.New(aerr.KindToonParse, "empty value must be written as \"\"")
	}
	if tok[0] == '"' {
		s, err := unquote(tok)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	}
	switch tok {
	case "null":
		return NewNull(), nil
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	}
	if isIntegerForm(tok) {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(tok, 64)
			if ferr != nil {
				return nil, aerr.Newf(aerr.KindToonParse, "malformed numeric token %q", tok)
			}
			return NewNumber(f), nil
		}
		return NewInt(n), nil
	}
	if looksNumeric(tok) {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, aerr.Newf(aerr.KindToonParse, "malformed numeric token %q", tok)
		}
		return NewNumber(f), nil
	}
	if strings.HasPrefix(tok, "-") {
		return nil, aerr.Newf(aerr.KindToonParse, "bare token %q starting with '-' must be quoted", tok)
	}
	if strings.ContainsAny(tok, "[]{}") {
		return nil, aerr.Newf(aerr.KindToonParse, "bare token %q containing bracket characters must be quoted", tok)
	}
	if hasEdgeWhitespace(tok) {
		return nil, aerr.Newf(aerr.KindToonParse, "bare token %q with leading/trailing whitespace must be quoted", tok)
	}
	if ctx == ctxMappingValue && strings.Contains(tok, ":") {
		return nil, aerr.Newf(aerr.KindToonParse, "bare token %q containing ':' must be quoted", tok)
	}
	if ctx == ctxArrayElement && strings.Contains(tok, ",") {
		return nil, aerr.Newf(aerr.KindToonParse, "bare token %q containing ',' must be quoted", tok)
	}
	return NewString(tok), nil
}

// splitCells splits a comma-separated line into its raw cell tokens,
// treating commas inside a quoted token as literal content rather than
// separators.
func splitCells(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuotes {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inQuotes = false
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = true
			cur.WriteByte(c)
		case ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, cur.String())
	return out
}
