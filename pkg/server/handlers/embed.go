// Package handlers implements the gin handlers of the embedlink REST
// surface.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/embedlink"
	"github.com/soundprediction/embedlink/pkg/embedder"
	"github.com/soundprediction/embedlink/pkg/server/dto"
)

// EmbedHandler handles embedding requests.
type EmbedHandler struct {
	link   *embedlink.Client
	logger *slog.Logger
}

// NewEmbedHandler creates a new embed handler.
func NewEmbedHandler(link *embedlink.Client, logger *slog.Logger) *EmbedHandler {
	return &EmbedHandler{link: link, logger: logger}
}

// Embed handles POST /api/v1/embed - single text, direct-output shape.
func (h *EmbedHandler) Embed(c *gin.Context) {
	var req dto.EmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.link.EmbedText(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, embedder.ErrEmptyInput) {
			writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger.Error("embed request failed", "error", err)
		writeError(c, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// EmbedBatch handles POST /api/v1/embed/batch. Per-item failures become
// error-shaped records; the run itself only fails on invalid input.
func (h *EmbedHandler) EmbedBatch(c *gin.Context) {
	var req dto.EmbedBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	vectors, statuses, err := h.link.EmbedDocumentsWithReport(c.Request.Context(), req.Texts)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	items := make([]dto.BatchItem, len(vectors))
	for i, v := range vectors {
		items[i] = dto.BatchItem{Index: i, Embedding: v}
	}
	for _, s := range statuses {
		if s.Skipped {
			items[s.Index].Skipped = true
		}
		if s.Err != nil {
			items[s.Index].Error = s.Err.Error()
			h.logger.Warn("batch item degraded", "index", s.Index, "error", s.Err)
		}
	}

	c.JSON(http.StatusOK, dto.EmbedBatchResponse{
		Model:          h.link.Model(),
		EncodingFormat: h.link.EncodingFormat(),
		Items:          items,
	})
}

// writeError writes a JSON error response.
func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.ErrorResponse{Error: code, Message: message, Code: status})
}
