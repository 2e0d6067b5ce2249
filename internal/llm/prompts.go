package llm

import (
	_ "embed"
	"encoding/json"
	"strings"

	"resumegen/resume/model"
)

var (
	//go:embed prompts/resume_v1.txt
	resumePromptV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterPromptV1 string
)

const noPersonalInfo = "None provided"

// ResumePrompt returns the resume prompt with the job offer and hints filled in.
func ResumePrompt(jobOffer string, hints model.PersonalInfo) string {
	return fillPrompt(resumePromptV1, jobOffer, hints)
}

// CoverLetterPrompt returns the cover letter prompt with the job offer and hints filled in.
func CoverLetterPrompt(jobOffer string, hints model.PersonalInfo) string {
	return fillPrompt(coverLetterPromptV1, jobOffer, hints)
}

// PersonalInfoText renders hints as indented JSON, or a fixed marker when none were given.
func PersonalInfoText(hints model.PersonalInfo) string {
	if hints.IsZero() {
		return noPersonalInfo
	}
	raw, err := json.MarshalIndent(hints, "", "  ")
	if err != nil {
		return noPersonalInfo
	}
	return string(raw)
}

func fillPrompt(template, jobOffer string, hints model.PersonalInfo) string {
	replacer := strings.NewReplacer(
		"{{JOB_OFFER}}", strings.TrimSpace(jobOffer),
		"{{PERSONAL_INFO}}", PersonalInfoText(hints),
	)
	return strings.TrimSpace(replacer.Replace(template))
}
