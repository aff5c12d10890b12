package handler

import (
	"context"
	"net/http"

	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/models"
)

type cameraControl interface {
	Capabilities(ctx context.Context) (camera.Capabilities, error)
	SetFacing(ctx context.Context, f camera.Facing) error
	ToggleTorch(ctx context.Context) (bool, error)
}

type CameraHandler struct {
	camera cameraControl
}

func NewCameraHandler(camera cameraControl) *CameraHandler {
	return &CameraHandler{camera: camera}
}

// Capabilities godoc
// @Summary Camera capabilities
// @Description Reports whether a camera is usable, whether facing can be switched and whether a torch exists.
// @Tags camera
// @Produce json
// @Success 200 {object} camera.Capabilities
// @Router /camera/capabilities [get]
func (h *CameraHandler) Capabilities(w http.ResponseWriter, r *http.Request) {
	caps, err := h.camera.Capabilities(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, caps)
}

// Facing godoc
// @Summary Switch camera facing
// @Tags camera
// @Accept json
// @Produce json
// @Param request body models.FacingRequest true "Facing"
// @Success 200 {object} camera.Capabilities
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /camera/facing [post]
func (h *CameraHandler) Facing(w http.ResponseWriter, r *http.Request) {
	var req models.FacingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.camera.SetFacing(r.Context(), camera.Facing(req.Facing)); err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	h.Capabilities(w, r)
}

// Torch godoc
// @Summary Toggle the torch
// @Description Best effort. Devices without a torch keep it off and still answer 200.
// @Tags camera
// @Produce json
// @Success 200 {object} models.TorchState
// @Router /camera/torch [post]
func (h *CameraHandler) Torch(w http.ResponseWriter, r *http.Request) {
	on, err := h.camera.ToggleTorch(r.Context())
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, models.TorchState{TorchOn: on})
}
