package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soundprediction/embedlink"
	"github.com/soundprediction/embedlink/pkg/server/dto"
)

// ModelsHandler handles model listing requests.
type ModelsHandler struct {
	link   *embedlink.Client
	logger *slog.Logger
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(link *embedlink.Client, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{link: link, logger: logger}
}

// List handles GET /api/v1/models - the dropdown options for a host UI, in
// the order the upstream returned them.
func (h *ModelsHandler) List(c *gin.Context) {
	options, err := h.link.Models(c.Request.Context())
	if err != nil {
		h.logger.Error("model listing failed", "error", err)
		writeError(c, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	resp := dto.ModelsResponse{Data: make([]dto.ModelOption, 0, len(options))}
	for _, opt := range options {
		resp.Data = append(resp.Data, dto.ModelOption{Name: opt.Name, Value: opt.Value})
	}

	c.JSON(http.StatusOK, resp)
}
