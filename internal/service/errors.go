package service

import (
	"errors"
	"fmt"

	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/inference"
	"github.com/kdduha/chiliguard/internal/models"
)

var (
	ErrBusy          = errors.New("a capture is already being analyzed")
	ErrAcquisition   = errors.New("image acquisition failed")
	ErrNormalization = errors.New("image normalization failed")
	ErrInference     = errors.New("inference failed")

	ErrEmptyMessage  = errors.New("message is empty")
	ErrAssistantBusy = errors.New("assistant is still replying")
	ErrNoDiagnosis   = errors.New("no diagnosis to talk about")

	errNoCamera = fmt.Errorf("%w: camera is not configured", camera.ErrUnavailable)
)

const (
	FallbackUpload = "upload"

	titleScanFailed   = "Gagal Menganalisis"
	titleBusy         = "Analisis Sedang Berjalan"
	titleNoCamera     = "Kamera Tidak Tersedia"
	messageBusy       = "Tunggu hingga analisis sebelumnya selesai."
	messageNoCamera   = "Gagal mengakses kamera. Pastikan izin kamera sudah diberikan."
	messageScanFailed = "Terjadi kesalahan saat menganalisis gambar"
)

// StageError tags a failure with the capture-cycle stage it happened in.
// errors.Is matches both the stage and the cause.
type StageError struct {
	Stage error
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() []error {
	return []error{e.Stage, e.Err}
}

func stageError(stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// ToNotification converts any capture-cycle error into the one message
// shown to the user.
func ToNotification(err error) models.Notification {
	switch {
	case errors.Is(err, ErrBusy):
		return models.Notification{Title: titleBusy, Message: messageBusy, Recoverable: true}
	case errors.Is(err, camera.ErrUnavailable):
		return models.Notification{
			Title:       titleNoCamera,
			Message:     messageNoCamera,
			Recoverable: true,
			Fallback:    FallbackUpload,
		}
	}

	n := models.Notification{Title: titleScanFailed, Message: messageScanFailed, Recoverable: true}
	if errors.Is(err, ErrAcquisition) {
		n.Fallback = FallbackUpload
	}

	var apiErr *inference.APIError
	var stageErr *StageError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		n.Message = apiErr.Message
	case errors.As(err, &stageErr):
		n.Message = stageErr.Err.Error()
	case err != nil && err.Error() != "":
		n.Message = err.Error()
	}
	return n
}
