package models

import "math"

// ClassScore is one entry of the ranked model output.
type ClassScore struct {
	Class      string  `json:"kelas"`
	Confidence float64 `json:"kepercayaan"`
}

// PredictionResult is the diagnosis returned by the inference service.
type PredictionResult struct {
	Success           bool         `json:"sukses"`
	Class             string       `json:"kelas"`
	LocalName         string       `json:"namaIndonesia"`
	Confidence        float64      `json:"kepercayaan"`
	ConfidencePercent float64      `json:"persentaseKepercayaan"`
	Healthy           bool         `json:"statusSehat"`
	Description       string       `json:"deskripsi"`
	Symptoms          []string     `json:"gejala"`
	OrganicTreatments []string     `json:"penangananOrganik"`
	ChemicalTreatment []string     `json:"penangananKimia"`
	Prevention        []string     `json:"pencegahan"`
	Ranking           []ClassScore `json:"semuaPrediksi"`
	Message           string       `json:"pesan,omitempty"`
}

// Normalize replaces nil lists with empty ones and derives the percentage
// from the raw score, so the two can never disagree.
func (p *PredictionResult) Normalize() {
	if p.Symptoms == nil {
		p.Symptoms = []string{}
	}
	if p.OrganicTreatments == nil {
		p.OrganicTreatments = []string{}
	}
	if p.ChemicalTreatment == nil {
		p.ChemicalTreatment = []string{}
	}
	if p.Prevention == nil {
		p.Prevention = []string{}
	}
	if p.Ranking == nil {
		p.Ranking = []ClassScore{}
	}
	p.ConfidencePercent = DecimalToPercent(p.Confidence)
}

// Clone returns a deep copy.
func (p PredictionResult) Clone() PredictionResult {
	p.Symptoms = append([]string{}, p.Symptoms...)
	p.OrganicTreatments = append([]string{}, p.OrganicTreatments...)
	p.ChemicalTreatment = append([]string{}, p.ChemicalTreatment...)
	p.Prevention = append([]string{}, p.Prevention...)
	p.Ranking = append([]ClassScore{}, p.Ranking...)
	return p
}

// percentScale keeps the scaled value free of binary noise (0.93*100 would
// otherwise be 93.00000000000001).
const percentScale = 1e9

func DecimalToPercent(x float64) float64 {
	return math.Round(x*100*percentScale) / percentScale
}

func PercentToDecimal(p float64) float64 {
	return math.Round(p/100*percentScale*100) / (percentScale * 100)
}
