package models

// CaptureInfo describes the current capture without its payload.
type CaptureInfo struct {
	Name     string `json:"nama"`
	MIMEType string `json:"tipe"`
	Size     int    `json:"ukuran"`
}

// StateSnapshot is a read-only copy of the application state.
type StateSnapshot struct {
	Capture    *CaptureInfo      `json:"gambarTangkapan"`
	Processing bool              `json:"sedangMemproses"`
	Result     *PredictionResult `json:"hasilPrediksi"`
	History    []HistoryEntry    `json:"riwayatDiagnosis"`
	Messages   []ChatMessage     `json:"pesanChat"`
	Typing     bool              `json:"sedangMengetik"`
}

// Notification is the single user-facing outcome of a failed operation.
type Notification struct {
	Title       string `json:"judul"`
	Message     string `json:"pesan"`
	Recoverable bool   `json:"dapatDipulihkan"`
	Fallback    string `json:"alternatif,omitempty"`
}

// ScanFailure is the body of a failed capture cycle.
type ScanFailure struct {
	Success      bool         `json:"sukses"`
	Error        string       `json:"error"`
	Notification Notification `json:"notifikasi"`
}

type FacingRequest struct {
	Facing string `json:"facing" validate:"required,oneof=user environment" example:"environment"`
}

type TorchState struct {
	TorchOn bool `json:"senterAktif"`
}
