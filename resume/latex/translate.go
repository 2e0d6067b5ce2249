// Package latex translates the LaTeX produced by the resume and cover letter
// templates into a printable HTML document.
//
// Translation is an ordered list of whole-document rewrite rules. Only the
// commands those templates use are recognized; anything else passes through
// as literal text and no error is ever returned.
package latex

import "time"

// DefaultTitle is the document title used when none is set.
const DefaultTitle = "Resume"

// Translator runs a rule table over LaTeX markup.
type Translator struct {
	// Today replaces \today. A zero value leaves \today untouched.
	Today time.Time
	// Title is the HTML document title.
	Title string
	// Rules overrides DefaultRules when non-nil.
	Rules []Rule
}

// Fragment applies every rule and returns the HTML body content.
func (t Translator) Fragment(markup string) string {
	rules := t.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	env := Env{Today: t.Today}
	out := markup
	for _, r := range rules {
		out = r.Apply(out, env)
	}
	return out
}

// Translate returns a complete HTML document for markup.
func (t Translator) Translate(markup string) string {
	return Wrap(t.Fragment(markup), t.Title)
}

// ToHTML translates markup into a resume-titled HTML document dated today.
func ToHTML(markup string, today time.Time) string {
	return Translator{Today: today}.Translate(markup)
}

// Fragment translates markup without the document shell.
func Fragment(markup string, today time.Time) string {
	return Translator{Today: today}.Fragment(markup)
}
