package llm

import (
	"context"
	"errors"

	"resumegen/resume/model"
)

// ContentGenerator produces tailored document content from a job offer.
type ContentGenerator interface {
	GenerateResumeContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (model.ResumeContent, error)
	GenerateCoverLetterContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (string, error)
}

// ErrNotConfigured is returned by the placeholder generator.
var ErrNotConfigured = errors.New("content generator not configured")

// PlaceholderGenerator is used when no provider credentials are configured.
type PlaceholderGenerator struct{}

// GenerateResumeContent returns ErrNotConfigured.
func (PlaceholderGenerator) GenerateResumeContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (model.ResumeContent, error) {
	return model.ResumeContent{}, ErrNotConfigured
}

// GenerateCoverLetterContent returns ErrNotConfigured.
func (PlaceholderGenerator) GenerateCoverLetterContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (string, error) {
	return "", ErrNotConfigured
}
