package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/weiawesome/uidgen/internal/dispatch"
	"github.com/weiawesome/uidgen/internal/export"
	"github.com/weiawesome/uidgen/internal/kind"
	"github.com/weiawesome/uidgen/internal/service"
	"github.com/weiawesome/uidgen/pkg/log"
	"github.com/weiawesome/uidgen/pkg/response"
	"github.com/weiawesome/uidgen/pkg/storage"
)

// GenerateRequest is the body of POST /api/v1/ids.
type GenerateRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	Count     *int   `json:"count"`
}

// InspectRequest is the body of the validate and parse routes.
type InspectRequest struct {
	Kind string `json:"kind" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// ExportRequest is the body of POST /api/v1/exports.
type ExportRequest struct {
	GenerateRequest
	Format   string   `json:"format"`
	IDs      []string `json:"ids"`
	FileName string   `json:"file_name"`
}

// Handler handles HTTP requests for uidgen.
type Handler struct {
	idService service.IDService
}

// NewHandler creates a new HTTP handler.
func NewHandler(idService service.IDService) *Handler {
	return &Handler{idService: idService}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/kinds", h.ListKinds)
		api.GET("/namespaces", h.ListNamespaces)
		api.GET("/links", h.ListLinks)

		ids := api.Group("/ids")
		{
			ids.POST("", h.Generate)
			ids.POST("/validate", h.Validate)
			ids.POST("/parse", h.Parse)
		}

		exports := api.Group("/exports")
		{
			exports.POST("", h.Export)
			exports.GET("", h.ListExports)
			exports.GET("/:key", h.DownloadExport)
		}
	}
}

// NewRouter builds a gin engine with the request logger and all routes.
func NewRouter(h *Handler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinMiddleware(logger))
	h.RegisterRoutes(r)
	return r
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// ListKinds lists every identifier kind.
func (h *Handler) ListKinds(c *gin.Context) {
	response.Success(c, gin.H{
		"kinds":     h.idService.Kinds(c.Request.Context()),
		"max_count": h.idService.MaxCount(),
	})
}

// ListNamespaces lists the predefined namespaces.
func (h *Handler) ListNamespaces(c *gin.Context) {
	response.Success(c, h.idService.Namespaces(c.Request.Context()))
}

// ListLinks lists the external pages.
func (h *Handler) ListLinks(c *gin.Context) {
	response.Success(c, h.idService.Links(c.Request.Context()))
}

func (r *GenerateRequest) toDispatch() (dispatch.Request, error) {
	k, err := kind.Parse(r.Kind)
	if err != nil {
		return dispatch.Request{}, err
	}
	count := 1
	if r.Count != nil {
		count = *r.Count
	}
	return dispatch.Request{
		Kind:      k,
		Namespace: r.Namespace,
		Name:      r.Name,
		Prefix:    r.Prefix,
		Count:     count,
	}, nil
}

// writeError maps a service error to the response envelope.
func writeError(c *gin.Context, err error, msg string) {
	l := log.Ctx(c.Request.Context())
	_ = c.Error(err)

	switch {
	case errors.Is(err, kind.ErrUnknown),
		errors.Is(err, dispatch.ErrInvalidCount),
		errors.Is(err, dispatch.ErrCountTooLarge),
		errors.Is(err, dispatch.ErrInvalidNamespace),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, export.ErrEmptyFileName),
		errors.Is(err, export.ErrInvalidKey):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnsupported):
		response.Unsupported(c, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		l.Error().Err(err).Msg(msg)
		response.InternalError(c, msg)
	}
}

// Generate produces one batch of identifiers.
func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind generate request")
		response.BadRequest(c, err.Error())
		return
	}

	dreq, err := req.toDispatch()
	if err != nil {
		writeError(c, err, "failed to generate ids")
		return
	}

	res, err := h.idService.Generate(ctx, dreq)
	if err != nil {
		writeError(c, err, "failed to generate ids")
		return
	}

	c.Set(log.FieldKind, res.Kind.String())
	c.Set(log.FieldCount, len(res.IDs))
	response.Success(c, res)
}

func (h *Handler) bindInspect(c *gin.Context) (kind.Kind, string, bool) {
	var req InspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return "", "", false
	}
	k, err := kind.Parse(req.Kind)
	if err != nil {
		response.BadRequest(c, err.Error())
		return "", "", false
	}
	return k, req.ID, true
}

// Validate checks an identifier.
func (h *Handler) Validate(c *gin.Context) {
	k, id, ok := h.bindInspect(c)
	if !ok {
		return
	}

	v, err := h.idService.Validate(c.Request.Context(), k, id)
	if err != nil {
		writeError(c, err, "failed to validate id")
		return
	}
	response.Success(c, v)
}

// Parse decodes an identifier.
func (h *Handler) Parse(c *gin.Context) {
	k, id, ok := h.bindInspect(c)
	if !ok {
		return
	}

	res, err := h.idService.Parse(c.Request.Context(), k, id)
	if err != nil {
		writeError(c, err, "failed to parse id")
		return
	}
	response.Success(c, res)
}

// Export saves ids, generating them when none are supplied.
func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind export request")
		response.BadRequest(c, err.Error())
		return
	}

	dreq, err := req.toDispatch()
	if err != nil {
		writeError(c, err, "failed to export ids")
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(c, err, "failed to export ids")
		return
	}

	receipt, err := h.idService.Export(ctx, service.ExportRequest{
		Generate: dreq,
		Format:   format,
		IDs:      req.IDs,
		FileName: req.FileName,
	})
	if err != nil {
		writeError(c, err, "failed to export ids")
		return
	}

	c.Set(log.FieldKind, dreq.Kind.String())
	c.Set(log.FieldCount, receipt.Count)
	if receipt.Skipped {
		response.Success(c, receipt)
		return
	}
	response.Created(c, receipt)
}

// ListExports lists saved exports, optionally filtered by ?prefix=.
func (h *Handler) ListExports(c *gin.Context) {
	files, err := h.idService.ListExports(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		writeError(c, err, "failed to list exports")
		return
	}
	response.Success(c, files)
}

// DownloadExport streams a saved export.
func (h *Handler) DownloadExport(c *gin.Context) {
	key := c.Param("key")

	rc, err := h.idService.OpenExport(c.Request.Context(), key)
	if err != nil {
		writeError(c, err, "failed to read export")
		return
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	if f, ok := export.FormatForExt(strings.TrimPrefix(path.Ext(key), ".")); ok {
		contentType = f.ContentType()
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": key}))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Str(log.FieldKey, key).Msg("failed to stream export")
	}
}
