package markdown

import (
	"regexp"
	"strings"
)

var (
	placeholderPattern = regexp.MustCompile(`\[([^\[\]\n]+)\]`)
	listMarkerPattern  = regexp.MustCompile(`^\s*([-*+]|\d+[.)])\s+$`)
)

type placeholder struct {
	start, end int
	name       string
}

// findPlaceholders returns [Name] tokens. Link text ("[text](url)" and
// "[text][ref]") and task list boxes ("- [x]") are not placeholders.
func findPlaceholders(content string) []placeholder {
	var out []placeholder
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(content, -1) {
		end := loc[1]
		if end < len(content) && (content[end] == '(' || content[end] == '[') {
			continue
		}
		if loc[0] > 0 && content[loc[0]-1] == ']' {
			continue
		}
		name := strings.TrimSpace(content[loc[2]:loc[3]])
		if name == "" || isTaskBox(content, loc[0], name) {
			continue
		}
		out = append(out, placeholder{start: loc[0], end: end, name: name})
	}
	return out
}

// Placeholders lists distinct placeholder names in order of first use.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, p := range findPlaceholders(content) {
		if seen[p.name] {
			continue
		}
		seen[p.name] = true
		names = append(names, p.name)
	}
	return names
}

// ResolvePlaceholders substitutes every placeholder that has a non-empty
// value. Names match exactly first, then case-insensitively. Placeholders
// without a value stay bracketed.
func ResolvePlaceholders(content string, values map[string]string) string {
	out, _ := Resolve(content, values)
	return out
}

// Resolve is ResolvePlaceholders that also reports, in order of first use,
// the names left without a value. Brackets inside substituted values are
// never reported.
func Resolve(content string, values map[string]string) (string, []string) {
	matches := findPlaceholders(content)
	unresolved := make([]string, 0)
	if len(matches) == 0 {
		return content, unresolved
	}

	folded := make(map[string]string, len(values))
	for k, v := range values {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}

	seen := make(map[string]bool)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		value, ok := values[m.name]
		if !ok {
			value, ok = folded[strings.ToLower(m.name)]
		}
		if !ok || value == "" {
			if !seen[m.name] {
				seen[m.name] = true
				unresolved = append(unresolved, m.name)
			}
			continue
		}
		b.WriteString(content[last:m.start])
		b.WriteString(value)
		last = m.end
	}
	b.WriteString(content[last:])

	return b.String(), unresolved
}

func isTaskBox(content string, start int, name string) bool {
	if name != "x" && name != "X" {
		return false
	}
	lineStart := strings.LastIndexByte(content[:start], '\n') + 1
	return listMarkerPattern.MatchString(content[lineStart:start])
}
