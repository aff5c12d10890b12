package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/inference"
	"github.com/kdduha/chiliguard/internal/models"
	"github.com/kdduha/chiliguard/internal/service"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError puts the detail in pesan, where the inference service puts it,
// and the status text in error.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, models.ErrorResponse{Message: err.Error(), Error: http.StatusText(status)})
}

// decode reads a JSON body and validates it.
func decode(r *http.Request, dst any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}

// statusOf maps service errors onto HTTP status codes.
func statusOf(err error) int {
	var apiErr *inference.APIError
	switch {
	case errors.Is(err, service.ErrBusy), errors.Is(err, service.ErrAssistantBusy):
		return http.StatusConflict
	case errors.Is(err, camera.ErrUnavailable):
		return http.StatusFailedDependency
	case errors.Is(err, camera.ErrFacingUnsupported):
		return http.StatusUnprocessableEntity
	case errors.Is(err, camera.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrAcquisition),
		errors.Is(err, camera.ErrEmptyFile),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNormalization):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoDiagnosis):
		return http.StatusPreconditionFailed
	case errors.As(err, &apiErr), errors.Is(err, service.ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
