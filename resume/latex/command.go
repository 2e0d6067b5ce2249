package latex

import (
	"regexp"
	"strings"
)

// rewriteCommand replaces every unescaped match of head together with the
// arguments described by spec. Each byte of spec is '{' for a required brace
// group or '[' for an optional bracket group (absent optional groups yield "").
// Arguments are brace-balanced and may span lines. Matches whose required
// arguments are missing or unbalanced are left in place.
func rewriteCommand(src string, head *regexp.Regexp, spec string, fn func(args []string) string) string {
	var b strings.Builder
	i := 0
	for i < len(src) {
		loc := head.FindStringIndex(src[i:])
		if loc == nil {
			break
		}
		start, end := i+loc[0], i+loc[1]
		if escaped(src, start) {
			b.WriteString(src[i:end])
			i = end
			continue
		}
		args, next, ok := parseArgs(src, end, spec)
		if !ok {
			b.WriteString(src[i:end])
			i = end
			continue
		}
		for k := range args {
			args[k] = rewriteCommand(args[k], head, spec, fn)
		}
		b.WriteString(src[i:start])
		b.WriteString(fn(args))
		i = next
	}
	if i < len(src) {
		b.WriteString(src[i:])
	}
	return b.String()
}

func parseArgs(src string, pos int, spec string) ([]string, int, bool) {
	args := make([]string, 0, len(spec))
	for _, kind := range spec {
		switch kind {
		case '[':
			k := skipBlank(src, pos, false)
			if k < len(src) && src[k] == '[' {
				end := matchGroup(src, k, '[', ']')
				if end < 0 {
					return nil, 0, false
				}
				args = append(args, src[k+1:end])
				pos = end + 1
				continue
			}
			args = append(args, "")
		case '{':
			k := skipBlank(src, pos, true)
			if k >= len(src) || src[k] != '{' {
				return nil, 0, false
			}
			end := matchGroup(src, k, '{', '}')
			if end < 0 {
				return nil, 0, false
			}
			args = append(args, src[k+1:end])
			pos = end + 1
		}
	}
	return args, pos, true
}

// matchGroup returns the index of the delimiter closing the group opened at
// src[open], skipping escaped characters and nested brace groups.
func matchGroup(src string, open int, opener, closer byte) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case c == opener:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return i
			}
		case opener == '[' && c == '{':
			end := matchGroup(src, i, '{', '}')
			if end < 0 {
				return -1
			}
			i = end
		}
	}
	return -1
}

func skipBlank(src string, pos int, newlines bool) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t':
			pos++
		case '\n', '\r':
			if !newlines {
				return pos
			}
			pos++
		default:
			return pos
		}
	}
	return pos
}

// escaped reports whether the backslash at src[pos] is itself preceded by an
// odd number of backslashes, i.e. it is the second half of a \\ line break.
func escaped(src string, pos int) bool {
	n := 0
	for k := pos - 1; k >= 0 && src[k] == '\\'; k-- {
		n++
	}
	return n%2 == 1
}
