package latex

import (
	"regexp"
	"strings"
)

const (
	dateRangeOpen  = `<span class="date-range">`
	dateRangeClose = `</span>`
)

var listToken = regexp.MustCompile(`</?(?:ul|ol)>|<li>`)

// closeListItems closes each open list item at the next item of the same list
// or at the list's closing tag. Nested lists keep their own open state.
func closeListItems(src string) string {
	var (
		b    strings.Builder
		open []bool
		last int
	)
	closeItem := func(text string) {
		trimmed := strings.TrimRight(text, " \t\r\n")
		b.WriteString(trimmed)
		b.WriteString("</li>")
		b.WriteString(text[len(trimmed):])
	}
	for _, loc := range listToken.FindAllStringIndex(src, -1) {
		text := src[last:loc[0]]
		tok := src[loc[0]:loc[1]]
		n := len(open)
		switch {
		case tok == "<li>" && n > 0:
			if open[n-1] {
				closeItem(text)
			} else {
				b.WriteString(text)
			}
			open[n-1] = true
		case strings.HasPrefix(tok, "</") && n > 0:
			if open[n-1] {
				closeItem(text)
			} else {
				b.WriteString(text)
			}
			open = open[:n-1]
		case tok == "<ul>" || tok == "<ol>":
			b.WriteString(text)
			open = append(open, false)
		default:
			b.WriteString(text)
		}
		b.WriteString(tok)
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// closeDateRanges ends each date-range span right before the next break or
// newline following it, or at the next date-range or end of input.
func closeDateRanges(src string) string {
	parts := strings.Split(src, dateRangeOpen)
	if len(parts) == 1 {
		return src
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		b.WriteString(dateRangeOpen)
		cut := len(part)
		if i := strings.Index(part, "<br>"); i >= 0 && i < cut {
			cut = i
		}
		if i := strings.IndexByte(part, '\n'); i >= 0 && i < cut {
			cut = i
		}
		content := strings.TrimRight(part[:cut], " \t\r")
		b.WriteString(content)
		b.WriteString(dateRangeClose)
		b.WriteString(part[len(content):])
	}
	return b.String()
}

var tagToken = regexp.MustCompile(`<[^<>]*>`)

// outsideTags applies fn to each run of text between tags.
func outsideTags(src string, fn func(string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tagToken.FindAllStringIndex(src, -1) {
		b.WriteString(fn(src[last:loc[0]]))
		b.WriteString(src[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(fn(src[last:]))
	return b.String()
}
