// Package fill substitutes placeholder tokens in LaTeX templates with content values.
//
// Two token styles are recognized: {{NAME}} and <NAME>. Identifiers are uppercase;
// spaces and underscores are interchangeable, so <COVER LETTER CONTENT> and
// {{COVER_LETTER_CONTENT}} address the same value. Tokens without a value are left
// in place so missing data stays visible in the rendered document.
package fill

import (
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_ ]*)\}\}|<([A-Z][A-Z0-9_ ]*)>`)

// Apply replaces every recognized token in tpl with its value in a single pass.
// Substituted values are not rescanned.
func Apply(tpl string, values map[string]string) string {
	if len(values) == 0 {
		return tpl
	}
	return tokenPattern.ReplaceAllStringFunc(tpl, func(token string) string {
		if val, ok := values[Key(tokenName(token))]; ok {
			return val
		}
		return token
	})
}

// Key canonicalizes a token identifier.
func Key(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// Tokens returns the distinct canonical identifiers of all tokens present in s, sorted.
func Tokens(s string) []string {
	seen := map[string]struct{}{}
	for _, m := range tokenPattern.FindAllString(s, -1) {
		seen[Key(tokenName(m))] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func tokenName(token string) string {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
