package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry pairs a past capture with its diagnosis.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"tanggal"`
	Image     string           `json:"gambar"`
	Result    PredictionResult `json:"hasil"`
}

func NewHistoryEntry(image string, result PredictionResult, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: now,
		Image:     image,
		Result:    result.Clone(),
	}
}
