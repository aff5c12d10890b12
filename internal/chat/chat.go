package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kdduha/chiliguard/internal/models"
)

const DefaultDelay = 1500 * time.Millisecond

// Responder answers a user question about a diagnosis.
type Responder interface {
	Reply(ctx context.Context, text string, diagnosis models.PredictionResult) (string, error)
}

// Simulator produces canned answers after a fixed delay.
type Simulator struct {
	Delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{Delay: delay}
}

func (s *Simulator) Reply(ctx context.Context, text string, diagnosis models.PredictionResult) (string, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return Compose(text, diagnosis), nil
}

// Welcome is the first assistant message of a chat.
func Welcome(diagnosis models.PredictionResult) string {
	return fmt.Sprintf("Halo! 👋 Saya adalah asisten AI ChiliGuard. Saya melihat tanaman Anda terdeteksi **%s**. "+
		"Ada yang ingin Anda tanyakan tentang kondisi ini atau cara penanganannya?", diagnosis.LocalName)
}

// Compose picks a reply by the first matching keyword group.
func Compose(text string, diagnosis models.PredictionResult) string {
	q := strings.ToLower(text)
	name := diagnosis.LocalName

	switch {
	case containsAny(q, "obat", "fungisida"):
		if len(diagnosis.ChemicalTreatment) == 0 {
			return "Untuk kondisi tanaman sehat, tidak diperlukan penggunaan fungisida atau pestisida khusus. " +
				"Fokus pada perawatan preventif dan pemupukan berimbang."
		}
		return fmt.Sprintf("Untuk penanganan **%s**, berikut rekomendasi produk yang bisa digunakan:\n\n%s\n\n"+
			"⚠️ Pastikan mengikuti petunjuk dosis yang tertera pada kemasan dan gunakan APD saat aplikasi.",
			name, numbered(diagnosis.ChemicalTreatment))

	case containsAny(q, "organik", "alami"):
		if len(diagnosis.OrganicTreatments) == 0 {
			return "Tanaman Anda dalam kondisi sehat. Untuk menjaga kesehatan secara organik, " +
				"gunakan pupuk kompos dan hindari penggunaan pestisida sintetis."
		}
		return fmt.Sprintf("Berikut penanganan organik untuk **%s**:\n\n%s\n\n"+
			"🌿 Penanganan organik lebih aman untuk lingkungan dan tidak meninggalkan residu pada tanaman.",
			name, numbered(diagnosis.OrganicTreatments))

	case containsAny(q, "pencegahan", "cegah"):
		if len(diagnosis.Prevention) == 0 {
			return "Untuk menjaga kesehatan tanaman, lakukan perawatan rutin, pemangkasan, dan jaga kebersihan lahan."
		}
		return fmt.Sprintf("Tips pencegahan **%s**:\n\n%s\n\n"+
			"💡 Pencegahan lebih baik daripada pengobatan. Terapkan langkah-langkah ini secara konsisten.",
			name, numbered(diagnosis.Prevention))

	case containsAny(q, "gejala", "ciri"):
		if len(diagnosis.Symptoms) == 0 {
			return "Tanaman sehat biasanya memiliki daun berwarna hijau segar, pertumbuhan normal, " +
				"dan tidak ada bercak atau kerusakan."
		}
		return fmt.Sprintf("Gejala **%s** yang perlu diwaspadai:\n\n%s\n\n"+
			"👀 Pantau tanaman secara berkala untuk deteksi dini.",
			name, bulleted(diagnosis.Symptoms))
	}

	return fmt.Sprintf("Terima kasih atas pertanyaan Anda tentang \"%s\". \n\n"+
		"Berdasarkan diagnosis **%s** dengan tingkat kepercayaan %.1f%%, saya sarankan untuk:\n\n"+
		"1. Memahami gejala yang muncul\n"+
		"2. Menerapkan penanganan yang sesuai\n"+
		"3. Melakukan pencegahan untuk tanaman lain\n\n"+
		"Silakan tanyakan lebih spesifik tentang penanganan organik, kimia, atau pencegahan!",
		text, name, diagnosis.ConfidencePercent)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
