package fill

import (
	"reflect"
	"strings"
	"testing"

	"resumegen/resume/model"
	"resumegen/resume/template"
)

func TestApplyReplacesAllOccurrences(t *testing.T) {
	got := Apply("{{NAME}} and {{NAME}} again", map[string]string{"NAME": "Jane"})
	if got != "Jane and Jane again" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestApplyLeavesUnknownTokens(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
	}{
		{name: "angle", tpl: "Dear <COMPANY NAME>,"},
		{name: "braces", tpl: "Hello {{UNKNOWN}}"},
		{name: "lowercase is not a token", tpl: "{{name}} <b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.tpl, map[string]string{"NAME": "Jane"}); got != tt.tpl {
				t.Fatalf("Apply(%q) = %q, want unchanged", tt.tpl, got)
			}
		})
	}
}

func TestApplyAngleAndBraceStylesShareKeys(t *testing.T) {
	values := map[string]string{"COVER_LETTER_CONTENT": "body"}
	got := Apply("<COVER LETTER CONTENT>|{{COVER_LETTER_CONTENT}}", values)
	if got != "body|body" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestApplyDoesNotRescanValues(t *testing.T) {
	got := Apply("{{A}}", map[string]string{"A": "{{B}}", "B": "nope"})
	if got != "{{B}}" {
		t.Fatalf("expected value inserted verbatim, got %q", got)
	}
}

func TestApplyTripleBraceArgument(t *testing.T) {
	got := Apply(`\textbf{{{NAME}}}`, map[string]string{"NAME": "Jane Doe"})
	if got != `\textbf{Jane Doe}` {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestSkillsCommaJoined(t *testing.T) {
	got := FillResumeTemplate(template.Template("Skills: {{SKILLS}}."), model.ResumeContent{Skills: []string{"Go", "Rust"}})
	if got != "Skills: Go, Rust." {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestJoinSkillsDeduplicates(t *testing.T) {
	got := JoinSkills([]string{"Go", " go ", "", "Rust", "SQL", "rust"})
	if got != "Go, Rust, SQL" {
		t.Fatalf("unexpected skills: %q", got)
	}
}

func TestEmptySequencesSubstituteEmpty(t *testing.T) {
	tpl := template.Template("[{{EXPERIENCE}}][{{EDUCATION}}][{{PROJECTS}}][{{SKILLS}}]")
	got := FillResumeTemplate(tpl, model.ResumeContent{})
	if got != "[][][][]" {
		t.Fatalf("unexpected output: %q", got)
	}
	for _, bad := range []string{"undefined", "null", "<nil>"} {
		if strings.Contains(got, bad) {
			t.Fatalf("output contains %q", bad)
		}
	}
}

func TestFillResumeTemplateResolvesAllTokens(t *testing.T) {
	record := sampleResume()
	got := FillResumeTemplate(template.LoadResumeTemplate(), record)
	if remaining := Tokens(got); len(remaining) != 0 {
		t.Fatalf("expected no tokens left, got %v", remaining)
	}
	for _, want := range []string{
		`\Large\textbf{Jane Doe}`,
		`\href{https://linkedin.com/in/jane}{LinkedIn}`,
		`\textbf{Staff Engineer} \hfill 2021 -- Present \\`,
		`\textit{Acme Corp} \\`,
		`    \item Cut p99 latency by 40\%`,
		`\textbf{BSc Computer Science} \hfill 2015 \\`,
		`\textit{Technologies: Go, gRPC}`,
		"Go, Kubernetes, PostgreSQL",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("filled resume missing %q", want)
		}
	}
}

func TestExperienceEntriesSeparatedByBlankLine(t *testing.T) {
	record := model.ResumeContent{Experience: []model.Experience{
		{Title: "A", Company: "X", Duration: "2020", Description: []string{"one"}},
		{Title: "B", Company: "Y", Duration: "2019"},
	}}
	got := ResumeValues(record)["EXPERIENCE"]
	parts := strings.Split(got, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %q", len(parts), got)
	}
	if strings.Contains(parts[1], `\begin{itemize}`) {
		t.Fatalf("entry without achievements should not open a list: %q", parts[1])
	}
}

func TestFillCoverLetterLeavesCompanyTokens(t *testing.T) {
	content := model.CoverLetterContent{Name: "Jane Doe", Email: "jane@example.com", Body: "I am writing."}
	got := FillCoverLetterTemplate(template.LoadCoverLetterTemplate(), content)
	if !strings.Contains(got, "<COMPANY NAME>") {
		t.Fatalf("expected company token to remain")
	}
	if strings.Contains(got, "<COVER LETTER CONTENT>") || !strings.Contains(got, "I am writing.") {
		t.Fatalf("expected body substituted")
	}
	if strings.Count(got, "Jane Doe") != 2 {
		t.Fatalf("expected name substituted twice")
	}
	if want := []string{"COMPANY_LOCATION", "COMPANY_NAME", "HIRING_MANAGER", "JOB_TITLE"}; !reflect.DeepEqual(Tokens(got), want) {
		t.Fatalf("unexpected unresolved tokens: %v", Tokens(got))
	}
}

func TestFillIsNoOpOnFilledOutput(t *testing.T) {
	once := FillResumeTemplate(template.LoadResumeTemplate(), sampleResume())
	twice := FillResumeTemplate(template.Template(once), sampleResume())
	if once != twice {
		t.Fatalf("second fill changed output")
	}
}

func sampleResume() model.ResumeContent {
	return model.ResumeContent{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Location: "Berlin, DE",
		LinkedIn: "https://linkedin.com/in/jane",
		GitHub:   "https://github.com/jane",
		Summary:  "Backend engineer focused on distributed systems.",
		Experience: []model.Experience{{
			Title:       "Staff Engineer",
			Company:     "Acme Corp",
			Duration:    "2021 -- Present",
			Description: []string{`Cut p99 latency by 40\%`, "Led a team of five"},
		}},
		Education: []model.Education{{Degree: "BSc Computer Science", Institution: "TU Berlin", Year: "2015"}},
		Skills:    []string{"Go", "Kubernetes", "PostgreSQL"},
		Projects: []model.Project{{
			Name:         "ratelimiter",
			Description:  "Distributed token bucket",
			Technologies: []string{"Go", "gRPC"},
		}},
	}
}
