package handler

import (
	"context"
	"net/http"

	"github.com/kdduha/chiliguard/internal/models"
)

type upstreamClient interface {
	Health(ctx context.Context) (*models.HealthStatus, error)
	Classes(ctx context.Context) (*models.ClassCatalog, error)
}

// UpstreamHandler exposes read-only calls of the inference service.
type UpstreamHandler struct {
	client upstreamClient
}

func NewUpstreamHandler(client upstreamClient) *UpstreamHandler {
	return &UpstreamHandler{client: client}
}

// Health godoc
// @Summary Inference service health
// @Tags upstream
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Failure 502 {object} models.ErrorResponse
// @Router /upstream/health [get]
func (h *UpstreamHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.client.Health(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Classes godoc
// @Summary Detectable classes
// @Tags upstream
// @Produce json
// @Success 200 {object} models.ClassCatalog
// @Failure 502 {object} models.ErrorResponse
// @Router /classes [get]
func (h *UpstreamHandler) Classes(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.client.Classes(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}
