// Package template holds the two fixed LaTeX documents the generator fills.
package template

import (
	_ "embed"
	"strings"
)

// Template is an immutable LaTeX document containing placeholder tokens.
type Template string

//go:embed resume.tex
var resumeSource string

//go:embed cover_letter.tex
var coverLetterSource string

var (
	resumeTemplate      = Template(strings.TrimSpace(resumeSource))
	coverLetterTemplate = Template(strings.TrimSpace(coverLetterSource))
)

// LoadResumeTemplate returns the resume document.
func LoadResumeTemplate() Template {
	return resumeTemplate
}

// LoadCoverLetterTemplate returns the cover letter document.
func LoadCoverLetterTemplate() Template {
	return coverLetterTemplate
}

// String returns the raw markup.
func (t Template) String() string {
	return string(t)
}
