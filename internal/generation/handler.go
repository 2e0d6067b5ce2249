package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumegen/internal/credentials"
	"resumegen/internal/shared/server/middleware"
	"resumegen/internal/shared/server/respond"
	"resumegen/internal/shared/telemetry"
	"resumegen/resume/model"
)

const (
	msgUnauthorized      = "Invalid or missing master password"
	msgJobOfferRequired  = "Job offer text is required"
	msgMethodNotAllowed  = "Method not allowed"
	msgInvalidJSON       = "Invalid JSON body"
	msgResumeFailed      = "Internal server error while generating resume"
	msgCoverLetterFailed = "Internal server error while generating cover letter"

	maxBodyBytes = 1 << 20
)

// Generator runs generation pipelines. *Service satisfies it.
type Generator interface {
	GenerateResume(ctx context.Context, req Request) (Result, error)
	GenerateCoverLetter(ctx context.Context, req Request) (Result, error)
}

// PasswordVerifier checks the caller's master password.
type PasswordVerifier interface {
	Verify(ctx context.Context, provided string) error
}

// Handler wires HTTP handlers to the generation service.
type Handler struct {
	Svc      Generator
	Verifier PasswordVerifier
}

// NewHandler constructs a Handler.
func NewHandler(svc Generator, verifier PasswordVerifier) *Handler {
	return &Handler{Svc: svc, Verifier: verifier}
}

// RegisterRoutes attaches the generation endpoints to the engine. Methods other than
// POST and OPTIONS answer 405.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	resume := h.handle(true)
	coverLetter := h.handle(false)
	for _, path := range []string{"/api/generateResume", "/api/v1/generate/resume"} {
		register(r, path, resume)
	}
	for _, path := range []string{"/api/generateCoverLetter", "/api/v1/generate/cover-letter"} {
		register(r, path, coverLetter)
	}
}

var rejectedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

func register(r gin.IRoutes, path string, post gin.HandlerFunc) {
	r.POST(path, post)
	for _, method := range rejectedMethods {
		r.Handle(method, path, methodNotAllowed)
	}
}

// GenerateRequest is the JSON body of both generation endpoints.
type GenerateRequest struct {
	JobOffer       string             `json:"jobOffer"`
	MasterPassword string             `json:"masterPassword"`
	PersonalInfo   model.PersonalInfo `json:"personalInfo"`
}

func (h *Handler) handle(resume bool) gin.HandlerFunc {
	kind, failure := "cover_letter", msgCoverLetterFailed
	if resume {
		kind, failure = "resume", msgResumeFailed
	}
	return func(c *gin.Context) {
		c.Set(middleware.DocumentKindKey, kind)

		req := GenerateRequest{}
		if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
			// The password may still arrive by query or header; reject it first when it is wrong.
			if !h.authorized(c, "") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", msgUnauthorized, nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, "validation_error", msgInvalidJSON, nil)
			return
		}

		if !h.authorized(c, req.MasterPassword) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", msgUnauthorized, nil)
			return
		}

		in := Request{JobOffer: req.JobOffer, PersonalInfo: req.PersonalInfo}
		var (
			result Result
			err    error
		)
		if resume {
			result, err = h.Svc.GenerateResume(c.Request.Context(), in)
		} else {
			result, err = h.Svc.GenerateCoverLetter(c.Request.Context(), in)
		}
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				respond.Error(c, http.StatusBadRequest, "validation_error", msgJobOfferRequired, nil)
				return
			}
			telemetry.Error("generation.failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"kind":       kind,
				"error":      err,
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", failure, nil)
			return
		}

		c.Set(middleware.GenerationIDKey, result.ID)
		writeArchive(c, result)
	}
}

func (h *Handler) authorized(c *gin.Context, bodyPassword string) bool {
	if h.Verifier == nil {
		return false
	}
	provided := credentials.PasswordFromRequest(c, bodyPassword)
	err := h.Verifier.Verify(c.Request.Context(), provided)
	if err == nil {
		return true
	}
	if !errors.Is(err, credentials.ErrUnauthorized) {
		telemetry.Error("credentials.lookup_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err,
		})
	}
	return false
}

func writeArchive(c *gin.Context, result Result) {
	h := c.Writer.Header()
	h.Set("Content-Disposition", "attachment; filename=\""+result.Archive.FileName+"\"")
	h.Set("Content-Length", strconv.FormatInt(result.Archive.Size(), 10))
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("X-Generation-Id", result.ID)
	c.Data(http.StatusOK, "application/zip", result.Archive.Data)
}

func methodNotAllowed(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Header("Allow", "POST, OPTIONS")
	respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", msgMethodNotAllowed, nil)
}

func decodeOptionalJSON(body io.ReadCloser, out any) error {
	if body == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
