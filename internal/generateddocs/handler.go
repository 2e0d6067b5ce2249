package generateddocs

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resumegen/internal/shared/server/respond"
	"resumegen/internal/shared/telemetry"
)

// Handler exposes generation history over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/generated-documents", h.list)
	rg.GET("/generated-documents/:id", h.get)
	rg.GET("/generated-documents/:id/download", h.download)
}

type listResponse struct {
	Items  []GeneratedDocument `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func (h *Handler) list(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be an integer", nil)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offset must be an integer", nil)
		return
	}
	limit, offset = clampPage(limit, offset)

	items, err := h.Svc.List(c.Request.Context(), Kind(c.Query("kind")), limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown document kind", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generated documents", nil)
		return
	}
	respond.OK(c, listResponse{Items: items, Limit: limit, Offset: offset})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) download(c *gin.Context) {
	doc, reader, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", doc.MimeType)
	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	if doc.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		telemetry.Warn("generated_documents.download_failed", map[string]any{"id": doc.ID, "error": err})
	}
}

func (h *Handler) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "generated document id is required", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "generated document not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load generated document", nil)
	}
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
