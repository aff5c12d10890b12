package inference

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/models"
)

const predictBody = `{
	"sukses": true,
	"kelas": "antraknosa",
	"namaIndonesia": "Antraknosa",
	"kepercayaan": 0.93,
	"persentaseKepercayaan": 93.0,
	"statusSehat": false,
	"deskripsi": "Penyakit jamur Colletotrichum",
	"gejala": ["Bercak cekung pada buah"],
	"penangananOrganik": ["Semprot ekstrak bawang putih"],
	"penangananKimia": ["Fungisida mankozeb"],
	"pencegahan": ["Rotasi tanaman"],
	"semuaPrediksi": [{"kelas": "antraknosa", "kepercayaan": 0.93}, {"kelas": "Healthy Leaf", "kepercayaan": 0.05}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.APIConfig{BaseURL: server.URL + "/api/"}, zap.NewNop())
	client.httpClient = server.Client()
	return client
}

func TestPredictSendsMultipartImage(t *testing.T) {
	img := models.Capture{Name: "leaf.jpg", MIMEType: models.MIMEJPEG, Data: []byte{0xFF, 0xD8, 0xFF, 0x01}}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict/", r.URL.Path)

		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		assert.NoError(t, err)

		assert.Equal(t, img.Data, data)
		assert.Equal(t, "leaf.jpg", header.Filename)
		assert.Equal(t, models.MIMEJPEG, header.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(predictBody))
	})

	got, err := client.Predict(context.Background(), img)
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, "antraknosa", got.Class)
	assert.Equal(t, 0.93, got.Confidence)
	assert.Equal(t, 93.0, got.ConfidencePercent)
	assert.Len(t, got.Ranking, 2)
	assert.Equal(t, []string{"Semprot ekstrak bawang putih"}, got.OrganicTreatments)
}

func TestPredictDerivesPercentFromScore(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sukses":true,"kelas":"Healthy Leaf","kepercayaan":0.5,"persentaseKepercayaan":10}`))
	})

	got, err := client.Predict(context.Background(), models.Capture{Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.ConfidencePercent)
	assert.NotNil(t, got.Symptoms)
	assert.NotNil(t, got.Ranking)
}

func TestPredictUsesServerMessageOnFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"sukses":false,"pesan":"File gambar tidak ditemukan."}`))
	})

	_, err := client.Predict(context.Background(), models.Capture{Data: []byte{1}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "File gambar tidak ditemukan.", apiErr.Message)
}

func TestPredictSynthesizesMessageFromStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.Predict(context.Background(), models.Capture{Data: []byte{1}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "HTTP error! status: 500", apiErr.Error())
}

func TestPredictTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(config.APIConfig{BaseURL: server.URL}, zap.NewNop())

	_, err := client.Predict(context.Background(), models.Capture{Data: []byte{1}})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestPredictMakesSingleAttempt(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Predict(context.Background(), models.Capture{Data: []byte{1}})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/health/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"aktif","pesan":"ChiliGuard API berjalan dengan baik","versi":"1.0.0"}`))
	})

	got, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aktif", got.Status)
	assert.Equal(t, "1.0.0", got.Version)
}

func TestClasses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/classes/", r.URL.Path)
		_, _ = w.Write([]byte(`{"sukses":true,"jumlahKelas":1,"daftarKelas":[{"kelas":"Healthy Leaf","namaIndonesia":"Daun Sehat","deskripsi":"Daun cabai sehat"}]}`))
	})

	got, err := client.Classes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Classes, 1)
	assert.Equal(t, "Daun Sehat", got.Classes[0].LocalName)
}

func TestAuxiliaryCallsShareErrorConvention(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Health(context.Background())
	assert.EqualError(t, err, "HTTP error! status: 502")
	_, err = client.Classes(context.Background())
	assert.EqualError(t, err, "HTTP error! status: 502")
}
