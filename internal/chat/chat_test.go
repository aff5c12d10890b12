package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/chiliguard/internal/models"
)

func leafSpot() models.PredictionResult {
	r := models.PredictionResult{
		Success:           true,
		Class:             "leaf_spot",
		LocalName:         "Bercak Daun",
		Confidence:        0.8734,
		Symptoms:          []string{"Bercak coklat", "Daun menguning"},
		OrganicTreatments: []string{"Semprot ekstrak bawang putih", "Buang daun terinfeksi"},
		ChemicalTreatment: []string{"Mankozeb 80 WP"},
		Prevention:        []string{"Rotasi tanaman"},
	}
	r.Normalize()
	return r
}

func healthy() models.PredictionResult {
	r := models.PredictionResult{Success: true, Class: "healthy", LocalName: "Sehat", Confidence: 0.99, Healthy: true}
	r.Normalize()
	return r
}

func TestComposeOrganic(t *testing.T) {
	reply := Compose("ada solusi organik?", leafSpot())

	assert.True(t, strings.HasPrefix(reply, "Berikut penanganan organik untuk **Bercak Daun**"))
	assert.Contains(t, reply, "1. Semprot ekstrak bawang putih\n2. Buang daun terinfeksi")
}

func TestComposeKeywordPriority(t *testing.T) {
	reply := Compose("obat organik apa yang cocok?", leafSpot())
	assert.Contains(t, reply, "1. Mankozeb 80 WP")
	assert.NotContains(t, reply, "Semprot ekstrak")
}

func TestComposeCaseInsensitive(t *testing.T) {
	reply := Compose("Bagaimana CARA MENCEGAH?", leafSpot())
	assert.Contains(t, reply, "Tips pencegahan **Bercak Daun**")
	assert.Contains(t, reply, "1. Rotasi tanaman")
}

func TestComposeSymptomsUseBullets(t *testing.T) {
	reply := Compose("apa ciri-cirinya", leafSpot())
	assert.Contains(t, reply, "• Bercak coklat\n• Daun menguning")
}

func TestComposeHealthyReplies(t *testing.T) {
	tests := map[string]string{
		"obat apa?":       "tidak diperlukan penggunaan fungisida",
		"cara alami?":     "gunakan pupuk kompos",
		"pencegahan?":     "lakukan perawatan rutin",
		"gejala tanaman?": "daun berwarna hijau segar",
	}
	for question, want := range tests {
		t.Run(question, func(t *testing.T) {
			assert.Contains(t, Compose(question, healthy()), want)
		})
	}
}

func TestComposeDefault(t *testing.T) {
	reply := Compose("Kapan panen?", leafSpot())

	assert.Contains(t, reply, `pertanyaan Anda tentang "Kapan panen?"`)
	assert.Contains(t, reply, "**Bercak Daun** dengan tingkat kepercayaan 87.3%")
}

func TestWelcome(t *testing.T) {
	assert.Contains(t, Welcome(leafSpot()), "terdeteksi **Bercak Daun**")
}

func TestSimulatorReply(t *testing.T) {
	sim := NewSimulator(10 * time.Millisecond)

	start := time.Now()
	reply, err := sim.Reply(context.Background(), "gejala?", leafSpot())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Contains(t, reply, "Gejala **Bercak Daun**")
}

func TestSimulatorReplyCancelled(t *testing.T) {
	sim := NewSimulator(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Reply(ctx, "gejala?", leafSpot())
	assert.ErrorIs(t, err, context.Canceled)
}
