package generation

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resumegen/internal/generateddocs"
	"resumegen/internal/shared/storage/object"
	"resumegen/resume/model"
	"resumegen/resume/render"
)

type mockContent struct{ mock.Mock }

func (m *mockContent) GenerateResumeContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (model.ResumeContent, error) {
	args := m.Called(ctx, jobOffer, hints)
	return args.Get(0).(model.ResumeContent), args.Error(1)
}

func (m *mockContent) GenerateCoverLetterContent(ctx context.Context, jobOffer string, hints model.PersonalInfo) (string, error) {
	args := m.Called(ctx, jobOffer, hints)
	return args.String(0), args.Error(1)
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(ctx context.Context, html string, opts render.PageOptions) ([]byte, error) {
	args := m.Called(ctx, html, opts)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type failingHistory struct{}

func (failingHistory) Record(ctx context.Context, in generateddocs.RecordInput) (generateddocs.GeneratedDocument, error) {
	return generateddocs.GeneratedDocument{}, errors.New("bucket unavailable")
}

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestService(content *mockContent, renderer *mockRenderer) *Service {
	svc := NewService(content, renderer)
	svc.Now = func() time.Time { return fixedNow }
	svc.NewID = func() string { return "gen-1" }
	return svc
}

func sampleContent() model.ResumeContent {
	return model.ResumeContent{
		Name:    "Generated Name",
		Email:   "generated@example.com",
		Summary: "Backend engineer.",
		Experience: []model.Experience{{
			Title: "Engineer", Company: "Acme", Duration: "2020 -- 2024",
			Description: []string{"Built services"},
		}},
		Skills: []string{"Go", "go", "SQL"},
	}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = buf.String()
	}
	return out
}

func TestGenerateResume(t *testing.T) {
	content := &mockContent{}
	renderer := &mockRenderer{}
	hints := model.PersonalInfo{Name: "Jane Doe"}
	content.On("GenerateResumeContent", mock.Anything, "Go engineer", hints).Return(sampleContent(), nil)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "<title>Resume</title>") && strings.Contains(html, "Jane Doe")
	}), render.ResumePageOptions()).Return([]byte("%PDF-1.4 fake"), nil)

	store := object.NewMemoryStore()
	history := generateddocs.NewService(generateddocs.NewMemoryRepo(), store)
	svc := newTestService(content, renderer)
	svc.History = history

	result, err := svc.GenerateResume(context.Background(), Request{JobOffer: "  Go engineer ", PersonalInfo: hints})
	require.NoError(t, err)

	base := "resume_" + strconv.FormatInt(fixedNow.UnixMilli(), 10)
	assert.Equal(t, "gen-1", result.ID)
	assert.Equal(t, base, result.BaseName)
	assert.Equal(t, base+".zip", result.Archive.FileName)
	assert.True(t, result.Stored)
	assert.Equal(t, 1, store.Len())
	assert.Contains(t, result.Markup, "Jane Doe")
	assert.NotContains(t, result.Markup, "Generated Name")
	assert.Contains(t, result.Markup, "Go, SQL")

	files := readZip(t, result.Archive.Data)
	assert.Equal(t, "%PDF-1.4 fake", files[base+".pdf"])
	assert.Equal(t, result.Markup, files[base+".tex"])

	content.AssertExpectations(t)
	renderer.AssertExpectations(t)
}

func TestGenerateCoverLetter(t *testing.T) {
	content := &mockContent{}
	renderer := &mockRenderer{}
	hints := model.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"}
	content.On("GenerateCoverLetterContent", mock.Anything, "Data role", hints).
		Return("First paragraph.\n\nSecond paragraph.", nil)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "<title>Cover Letter</title>") &&
			strings.Contains(html, "June 1, 2025") &&
			strings.Contains(html, "First paragraph. <br><br>Second paragraph.")
	}), render.CoverLetterPageOptions()).Return([]byte("%PDF"), nil)

	svc := newTestService(content, renderer)
	result, err := svc.GenerateCoverLetter(context.Background(), Request{JobOffer: "Data role", PersonalInfo: hints})
	require.NoError(t, err)

	assert.Equal(t, generateddocs.KindCoverLetter, result.Kind)
	assert.True(t, strings.HasPrefix(result.BaseName, "cover_letter_"))
	assert.False(t, result.Stored)
	assert.Contains(t, result.Markup, `First paragraph.`+"\n"+`\par`)
	renderer.AssertExpectations(t)
}

func TestGenerateRejectsBlankJobOffer(t *testing.T) {
	content := &mockContent{}
	renderer := &mockRenderer{}
	svc := newTestService(content, renderer)

	_, err := svc.GenerateResume(context.Background(), Request{JobOffer: " \n\t"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GenerateCoverLetter(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	content.AssertNotCalled(t, "GenerateResumeContent", mock.Anything, mock.Anything, mock.Anything)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateWrapsUpstreamFailures(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		content := &mockContent{}
		renderer := &mockRenderer{}
		content.On("GenerateResumeContent", mock.Anything, "job", model.PersonalInfo{}).
			Return(model.ResumeContent{}, errors.New("quota exceeded"))

		_, err := newTestService(content, renderer).GenerateResume(context.Background(), Request{JobOffer: "job"})
		assert.ErrorIs(t, err, ErrContentGeneration)
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("render", func(t *testing.T) {
		content := &mockContent{}
		renderer := &mockRenderer{}
		content.On("GenerateCoverLetterContent", mock.Anything, "job", model.PersonalInfo{}).Return("Body", nil)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed"))

		_, err := newTestService(content, renderer).GenerateCoverLetter(context.Background(), Request{JobOffer: "job"})
		assert.ErrorIs(t, err, ErrRendering)
	})
}

func TestGenerateKeepsResultWhenHistoryFails(t *testing.T) {
	content := &mockContent{}
	renderer := &mockRenderer{}
	content.On("GenerateResumeContent", mock.Anything, "job", model.PersonalInfo{}).Return(sampleContent(), nil)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	svc := newTestService(content, renderer)
	svc.History = failingHistory{}
	result, err := svc.GenerateResume(context.Background(), Request{JobOffer: "job"})
	require.NoError(t, err)
	assert.False(t, result.Stored)
	assert.NotEmpty(t, result.Archive.Data)
}
