package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/models"
	"github.com/kdduha/chiliguard/internal/service"
)

const uploadField = "image"

type scanService interface {
	Scan(ctx context.Context, img models.Capture) (*models.PredictionResult, error)
	ScanCamera(ctx context.Context) (*models.PredictionResult, error)
}

type ScanHandler struct {
	service  scanService
	maxBytes int64
}

func NewScanHandler(service scanService, maxUploadMB int64) *ScanHandler {
	return &ScanHandler{
		service:  service,
		maxBytes: maxUploadMB << 20,
	}
}

// Upload godoc
// @Summary Diagnose an uploaded leaf photo
// @Description Runs one capture cycle on a multipart image: normalize, predict, record in history.
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Leaf photo (JPEG, PNG or WebP)"
// @Success 200 {object} models.PredictionResult
// @Failure 400 {object} models.ScanFailure
// @Failure 409 {object} models.ScanFailure
// @Failure 422 {object} models.ScanFailure
// @Failure 502 {object} models.ScanFailure
// @Router /scan [post]
func (h *ScanHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	file, header, err := r.FormFile(uploadField)
	if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
		err = camera.ErrFileTooLarge
	}
	if err != nil {
		h.fail(w, acquisitionError(err))
		return
	}
	defer file.Close()

	img, err := camera.FromReader(file, header.Filename, h.maxBytes)
	if err != nil {
		h.fail(w, acquisitionError(err))
		return
	}
	h.scan(w, r, img)
}

// Base64 godoc
// @Summary Diagnose a base64 leaf photo
// @Description Runs one capture cycle on an image sent as a data URL or bare base64 string.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body models.ScanRequest true "Scan request"
// @Success 200 {object} models.PredictionResult
// @Failure 400 {object} models.ScanFailure
// @Failure 409 {object} models.ScanFailure
// @Failure 413 {object} models.ScanFailure
// @Failure 422 {object} models.ScanFailure
// @Failure 502 {object} models.ScanFailure
// @Router /scan/base64 [post]
func (h *ScanHandler) Base64(w http.ResponseWriter, r *http.Request) {
	// encoded image plus room for the JSON envelope and data URL prefix
	limit := int64(base64.StdEncoding.EncodedLen(int(h.maxBytes))) + 1<<20
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
		err = camera.ErrFileTooLarge
	}
	if err != nil {
		h.fail(w, acquisitionError(err))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var req models.ScanRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, acquisitionError(err))
		return
	}
	img, err := models.CaptureFromBase64(req.ImageBase64, req.FileName)
	if err != nil {
		h.fail(w, acquisitionError(err))
		return
	}
	if int64(len(img.Data)) > h.maxBytes {
		h.fail(w, acquisitionError(camera.ErrFileTooLarge))
		return
	}
	h.scan(w, r, img)
}

// Camera godoc
// @Summary Diagnose a camera frame
// @Description Grabs one frame from the local camera and runs a capture cycle. When the camera is unavailable the notification suggests uploading a file instead.
// @Tags scan
// @Produce json
// @Success 200 {object} models.PredictionResult
// @Failure 409 {object} models.ScanFailure
// @Failure 424 {object} models.ScanFailure
// @Failure 502 {object} models.ScanFailure
// @Router /scan/camera [post]
func (h *ScanHandler) Camera(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ScanCamera(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ScanHandler) scan(w http.ResponseWriter, r *http.Request, img models.Capture) {
	result, err := h.service.Scan(r.Context(), img)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ScanHandler) fail(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), models.ScanFailure{
		Error:        err.Error(),
		Notification: service.ToNotification(err),
	})
}

func acquisitionError(err error) error {
	return &service.StageError{Stage: service.ErrAcquisition, Err: err}
}
