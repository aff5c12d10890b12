package models

// HealthStatus is returned by the inference service health probe.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"pesan"`
	Version string `json:"versi"`
}

type ClassItem struct {
	Class       string `json:"kelas"`
	LocalName   string `json:"namaIndonesia"`
	Description string `json:"deskripsi"`
}

// ClassCatalog lists every class the model can detect.
type ClassCatalog struct {
	Success bool        `json:"sukses"`
	Count   int         `json:"jumlahKelas"`
	Classes []ClassItem `json:"daftarKelas"`
}

// ErrorResponse is the failure body shared by the inference service and
// this agent.
type ErrorResponse struct {
	Success bool   `json:"sukses"`
	Message string `json:"pesan,omitempty"`
	Error   string `json:"error,omitempty"`
}
