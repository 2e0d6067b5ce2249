package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ResumeContent is the structured payload a resume template is filled with.
// It is built fresh per request and never persisted.
type ResumeContent struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	Projects   []Project    `json:"projects"`
}

// Experience is one employment entry.
type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// Education is one credential entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// CoverLetterContent is the payload for the cover letter template.
type CoverLetterContent struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Body     string `json:"body"`
}

// PersonalInfo carries the optional hints a caller sends along with a job offer.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// IsZero reports whether no hint was provided.
func (p PersonalInfo) IsZero() bool {
	return strings.TrimSpace(p.Name) == "" &&
		strings.TrimSpace(p.Email) == "" &&
		strings.TrimSpace(p.Phone) == "" &&
		strings.TrimSpace(p.Location) == "" &&
		strings.TrimSpace(p.LinkedIn) == "" &&
		strings.TrimSpace(p.GitHub) == ""
}

// Normalize returns a copy with NFC-normalized, trimmed text and empty entries removed.
func (r ResumeContent) Normalize() ResumeContent {
	out := ResumeContent{
		Name:     clean(r.Name),
		Email:    clean(r.Email),
		Phone:    clean(r.Phone),
		Location: clean(r.Location),
		LinkedIn: clean(r.LinkedIn),
		GitHub:   clean(r.GitHub),
		Summary:  clean(r.Summary),
		Skills:   cleanList(r.Skills),
	}
	for _, exp := range r.Experience {
		e := Experience{
			Title:       clean(exp.Title),
			Company:     clean(exp.Company),
			Duration:    clean(exp.Duration),
			Description: cleanList(exp.Description),
		}
		if e.Title == "" && e.Company == "" && e.Duration == "" && len(e.Description) == 0 {
			continue
		}
		out.Experience = append(out.Experience, e)
	}
	for _, edu := range r.Education {
		e := Education{
			Degree:      clean(edu.Degree),
			Institution: clean(edu.Institution),
			Year:        clean(edu.Year),
		}
		if e.Degree == "" && e.Institution == "" && e.Year == "" {
			continue
		}
		out.Education = append(out.Education, e)
	}
	for _, project := range r.Projects {
		p := Project{
			Name:         clean(project.Name),
			Description:  clean(project.Description),
			Technologies: cleanList(project.Technologies),
		}
		if p.Name == "" && p.Description == "" && len(p.Technologies) == 0 {
			continue
		}
		out.Projects = append(out.Projects, p)
	}
	return out
}

// ApplyHints overwrites contact fields with the caller's own values where provided.
func (r ResumeContent) ApplyHints(p PersonalInfo) ResumeContent {
	r.Name = prefer(p.Name, r.Name)
	r.Email = prefer(p.Email, r.Email)
	r.Phone = prefer(p.Phone, r.Phone)
	r.Location = prefer(p.Location, r.Location)
	r.LinkedIn = prefer(p.LinkedIn, r.LinkedIn)
	r.GitHub = prefer(p.GitHub, r.GitHub)
	return r
}

// NewCoverLetterContent combines the caller's contact hints with a generated body.
func NewCoverLetterContent(p PersonalInfo, body string) CoverLetterContent {
	return CoverLetterContent{
		Name:     clean(p.Name),
		Email:    clean(p.Email),
		Phone:    clean(p.Phone),
		Location: clean(p.Location),
		Body:     Paragraphs(body),
	}
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n\s*`)

// Paragraphs rejoins blank-line separated paragraphs with an explicit \par so the
// paragraph structure survives whitespace collapsing during translation.
func Paragraphs(body string) string {
	body = strings.ReplaceAll(norm.NFC.String(body), "\r\n", "\n")
	parts := blankLine.Split(strings.TrimSpace(body), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n\\par\n")
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := clean(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func prefer(hint, fallback string) string {
	if trimmed := clean(hint); trimmed != "" {
		return trimmed
	}
	return fallback
}
