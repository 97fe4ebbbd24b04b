package toon

import (
	"regexp"
	"strconv"
	"strings"
)

// arrayHeaderPattern matches "<key>[N]:" optionally followed by "{col,...}"
// (tabular) or " v1,v2,..." (inline). key is empty for a top-level array or
// for an expanded-array element that is itself a bare nested array.
var arrayHeaderPattern = regexp.MustCompile(`^([^:\[\]]*)\[(\d+)\](\{([^{}]*)\})?:(.*)$`)

// matchArrayHeader parses content as an array header line. ok is false if
// content doesn't have the "[N]" shape at all.
func matchArrayHeader(content string) (key string, n int, hasTabular bool, cols []string, inlineRest string, ok bool) {
	m := arrayHeaderPattern.FindStringSubmatch(content)
	if m == nil {
		return "", 0, false, nil, "", false
	}
	key = m[1]
	n, _ = strconv.Atoi(m[2])
	hasTabular = m[3] != ""
	if hasTabular && m[4] != "" {
		cols = strings.Split(m[4], ",")
	} else if hasTabular {
		cols = []string{}
	}
	rest := m[5]
	inlineRest = strings.TrimPrefix(rest, " ")
	return key, n, hasTabular, cols, inlineRest, true
}

// matchMappingHeader splits content on its first ':' into a key
// and the remainder (trimmed of exactly one leading space, if present).
// content must not start with '"' (callers check that first, since a
// quoted primitive never represents a key).
func matchMappingHeader(content string) (key string, rest string, ok bool) {
	idx := strings.Index(content, ":")
	if idx < 0 {
		return "", "", false
	}
	key = content[:idx]
	remainder := content[idx+1:]
	rest = strings.TrimPrefix(remainder, " ")
	return key, rest, true
}

// looksLikeKeyedLine reports whether content opens with an (unquoted) key
// followed by ':', as opposed to being a bare/quoted primitive token.
func looksLikeKeyedLine(content string) bool {
	if strings.HasPrefix(content, `"`) {
		return false
	}
	return strings.Contains(content, ":")
}
