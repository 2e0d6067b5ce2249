// Package generation turns a job offer into a downloadable archive holding a
// rendered PDF and the LaTeX it was produced from.
package generation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumegen/internal/generateddocs"
	"resumegen/internal/llm"
	"resumegen/internal/shared/metrics"
	"resumegen/internal/shared/telemetry"
	"resumegen/resume/bundle"
	"resumegen/resume/fill"
	"resumegen/resume/latex"
	"resumegen/resume/model"
	"resumegen/resume/render"
	"resumegen/resume/template"
)

const coverLetterTitle = "Cover Letter"

// Pipeline stage names used in logs and metrics.
const (
	StageContent   = "content"
	StageFill      = "fill"
	StageTranslate = "translate"
	StageRender    = "render"
	StageBundle    = "bundle"
	StageRecord    = "record"
)

// Request is the caller input for one generation.
type Request struct {
	JobOffer     string
	PersonalInfo model.PersonalInfo
}

// Result is a finished generation.
type Result struct {
	ID       string
	Kind     generateddocs.Kind
	BaseName string
	Markup   string
	Archive  bundle.Archive
	// Stored reports whether the archive was kept in generation history.
	Stored bool
}

// HistoryRecorder keeps produced archives. generateddocs.Service satisfies it.
type HistoryRecorder interface {
	Record(ctx context.Context, in generateddocs.RecordInput) (generateddocs.GeneratedDocument, error)
}

// Service runs the generation pipeline.
type Service struct {
	Content  llm.ContentGenerator
	Renderer render.Renderer
	// History is optional.
	History HistoryRecorder
	// Metrics is optional.
	Metrics *metrics.Recorder
	Now     func() time.Time
	NewID   func() string
}

// NewService constructs a Service with wall-clock time and UUID generation IDs.
func NewService(content llm.ContentGenerator, renderer render.Renderer) *Service {
	return &Service{
		Content:  content,
		Renderer: renderer,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// GenerateResume builds a resume archive for the job offer.
func (s *Service) GenerateResume(ctx context.Context, req Request) (Result, error) {
	run := s.begin(generateddocs.KindResume, "resume")
	result, err := s.generateResume(ctx, run, req)
	run.finish(err)
	return result, err
}

// GenerateCoverLetter builds a cover letter archive for the job offer.
func (s *Service) GenerateCoverLetter(ctx context.Context, req Request) (Result, error) {
	run := s.begin(generateddocs.KindCoverLetter, "cover_letter")
	result, err := s.generateCoverLetter(ctx, run, req)
	run.finish(err)
	return result, err
}

func (s *Service) generateResume(ctx context.Context, run *pipelineRun, req Request) (Result, error) {
	jobOffer := strings.TrimSpace(req.JobOffer)
	if jobOffer == "" {
		return Result{}, ErrInvalidInput
	}

	var content model.ResumeContent
	err := run.stage(StageContent, func() error {
		generated, err := s.Content.GenerateResumeContent(ctx, jobOffer, req.PersonalInfo)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrContentGeneration, err)
		}
		content = generated.Normalize().ApplyHints(req.PersonalInfo)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var markup string
	_ = run.stage(StageFill, func() error {
		markup = fill.FillResumeTemplate(template.LoadResumeTemplate(), content)
		return nil
	})

	translator := latex.Translator{Today: run.started, Title: latex.DefaultTitle}
	return s.finishDocument(ctx, run, jobOffer, markup, translator, render.ResumePageOptions())
}

func (s *Service) generateCoverLetter(ctx context.Context, run *pipelineRun, req Request) (Result, error) {
	jobOffer := strings.TrimSpace(req.JobOffer)
	if jobOffer == "" {
		return Result{}, ErrInvalidInput
	}

	var content model.CoverLetterContent
	err := run.stage(StageContent, func() error {
		body, err := s.Content.GenerateCoverLetterContent(ctx, jobOffer, req.PersonalInfo)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrContentGeneration, err)
		}
		content = model.NewCoverLetterContent(req.PersonalInfo, body)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var markup string
	_ = run.stage(StageFill, func() error {
		markup = fill.FillCoverLetterTemplate(template.LoadCoverLetterTemplate(), content)
		return nil
	})

	translator := latex.Translator{Today: run.started, Title: coverLetterTitle}
	return s.finishDocument(ctx, run, jobOffer, markup, translator, render.CoverLetterPageOptions())
}

// finishDocument translates, renders and bundles markup, then records it when history is configured.
func (s *Service) finishDocument(ctx context.Context, run *pipelineRun, jobOffer, markup string, translator latex.Translator, opts render.PageOptions) (Result, error) {
	var doc string
	_ = run.stage(StageTranslate, func() error {
		doc = translator.Translate(markup)
		return nil
	})

	var pdf []byte
	err := run.stage(StageRender, func() error {
		out, err := s.Renderer.Render(ctx, doc, opts)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRendering, err)
		}
		pdf = out
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	baseName := run.baseName()
	var archive bundle.Archive
	err = run.stage(StageBundle, func() error {
		out, err := bundle.Bundle(pdf, markup, baseName, run.started)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBundling, err)
		}
		archive = out
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ID:       run.id,
		Kind:     run.kind,
		BaseName: baseName,
		Markup:   markup,
		Archive:  archive,
	}
	if s.History == nil {
		return result, nil
	}

	// History is best effort; the caller still receives the archive.
	err = run.stage(StageRecord, func() error {
		_, err := s.History.Record(ctx, generateddocs.RecordInput{
			ID:       run.id,
			Kind:     run.kind,
			BaseName: baseName,
			Archive:  archive,
			JobOffer: jobOffer,
		})
		return err
	})
	result.Stored = err == nil
	return result, nil
}

// pipelineRun carries per-request identity and timing through the stages.
type pipelineRun struct {
	svc     *Service
	id      string
	kind    generateddocs.Kind
	prefix  string
	started time.Time
	clock   time.Time
}

func (s *Service) begin(kind generateddocs.Kind, prefix string) *pipelineRun {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	newID := uuid.NewString
	if s.NewID != nil {
		newID = s.NewID
	}
	return &pipelineRun{svc: s, id: newID(), kind: kind, prefix: prefix, started: now(), clock: time.Now()}
}

func (r *pipelineRun) baseName() string {
	return r.prefix + "_" + strconv.FormatInt(r.started.UnixMilli(), 10)
}

func (r *pipelineRun) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.svc.Metrics.ObserveStage(string(r.kind), name, elapsed)

	fields := map[string]any{
		"generation_id": r.id,
		"kind":          string(r.kind),
		"stage":         name,
		"duration_ms":   float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		fields["error"] = err
		telemetry.Error("generation.stage", fields)
		return err
	}
	telemetry.Info("generation.stage", fields)
	return nil
}

func (r *pipelineRun) finish(err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	r.svc.Metrics.ObserveGeneration(string(r.kind), outcome, time.Since(r.clock))
}
