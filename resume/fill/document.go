package fill

import (
	"fmt"
	"strings"

	"resumegen/resume/model"
	"resumegen/resume/template"
)

const entrySeparator = "\n\n"

// FillResumeTemplate renders a resume content record into the template.
func FillResumeTemplate(tpl template.Template, r model.ResumeContent) string {
	return Apply(tpl.String(), ResumeValues(r))
}

// FillCoverLetterTemplate renders a cover letter content record into the template.
func FillCoverLetterTemplate(tpl template.Template, c model.CoverLetterContent) string {
	return Apply(tpl.String(), CoverLetterValues(c))
}

// ResumeValues maps a resume record onto token identifiers.
func ResumeValues(r model.ResumeContent) map[string]string {
	return map[string]string{
		"NAME":       r.Name,
		"EMAIL":      r.Email,
		"PHONE":      r.Phone,
		"LOCATION":   r.Location,
		"LINKEDIN":   r.LinkedIn,
		"GITHUB":     r.GitHub,
		"SUMMARY":    r.Summary,
		"EXPERIENCE": joinEntries(r.Experience, experienceBlock),
		"EDUCATION":  joinEntries(r.Education, educationBlock),
		"SKILLS":     JoinSkills(r.Skills),
		"PROJECTS":   joinEntries(r.Projects, projectBlock),
	}
}

// CoverLetterValues maps a cover letter record onto token identifiers.
func CoverLetterValues(c model.CoverLetterContent) map[string]string {
	return map[string]string{
		"NAME":                 c.Name,
		"EMAIL":                c.Email,
		"PHONE":                c.Phone,
		"LOCATION":             c.Location,
		"COVER_LETTER_CONTENT": c.Body,
	}
}

// JoinSkills comma-joins skills, dropping blanks and case-insensitive duplicates.
func JoinSkills(skills []string) string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return strings.Join(out, ", ")
}

func joinEntries[T any](entries []T, render func(T) string) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, render(e))
	}
	return strings.Join(blocks, entrySeparator)
}

func experienceBlock(e model.Experience) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\textbf{%s} \\hfill %s \\\\\n", e.Title, e.Duration)
	fmt.Fprintf(&b, "\\textit{%s} \\\\\n", e.Company)
	if len(e.Description) > 0 {
		b.WriteString("\\begin{itemize}\n")
		for _, item := range e.Description {
			fmt.Fprintf(&b, "    \\item %s\n", item)
		}
		b.WriteString("\\end{itemize}\n")
	}
	b.WriteString("\\vspace{0.2cm}")
	return b.String()
}

func educationBlock(e model.Education) string {
	return fmt.Sprintf("\\textbf{%s} \\hfill %s \\\\\n\\textit{%s}", e.Degree, e.Year, e.Institution)
}

func projectBlock(p model.Project) string {
	return fmt.Sprintf("\\textbf{%s} \\\\\n%s \\\\\n\\textit{Technologies: %s}\n\\vspace{0.2cm}",
		p.Name, p.Description, strings.Join(p.Technologies, ", "))
}
