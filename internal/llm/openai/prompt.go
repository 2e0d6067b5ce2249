package openai

import (
	"fmt"

	"resumegen/internal/llm"
	"resumegen/resume/model"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	systemPromptResume      = "You are a resume content engine. Respond with JSON only. No markdown. Never omit keys."
	systemPromptCoverLetter = "You write cover letter bodies. Respond with plain text paragraphs only."
	systemPromptFixJSON     = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."
)

// BuildResumePrompt creates the chat messages for a resume content request.
func BuildResumePrompt(jobOffer string, hints model.PersonalInfo) []Message {
	return []Message{
		{Role: "system", Content: systemPromptResume},
		{Role: "user", Content: llm.ResumePrompt(jobOffer, hints)},
	}
}

// BuildCoverLetterPrompt creates the chat messages for a cover letter body request.
func BuildCoverLetterPrompt(jobOffer string, hints model.PersonalInfo) []Message {
	return []Message{
		{Role: "system", Content: systemPromptCoverLetter},
		{Role: "user", Content: llm.CoverLetterPrompt(jobOffer, hints)},
	}
}

func buildFixPrompt(raw string) []Message {
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "user", Content: fmt.Sprintf("Fix this resume JSON so it is a single valid object with keys name, email, phone, location, linkedin, github, summary, experience, education, skills, projects. Output JSON only:\n%s", raw)},
	}
}
