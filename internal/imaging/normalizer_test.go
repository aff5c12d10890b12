package imaging

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/chiliguard/internal/models"
)

func pngCapture(t *testing.T, width, height int) models.Capture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y += 7 {
		for x := 0; x < width; x += 7 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return models.NewCapture("leaf.png", buf.Bytes())
}

func decodeJPEGConfig(t *testing.T, c models.Capture) image.Config {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(c.Data))
	require.NoError(t, err)
	return cfg
}

func TestNormalizeShrinksLargeImage(t *testing.T) {
	n := NewNormalizer(0.8, 1024)

	out, err := n.Normalize(context.Background(), pngCapture(t, 2000, 1500))
	require.NoError(t, err)

	cfg := decodeJPEGConfig(t, out)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, models.MIMEJPEG, out.MIMEType)
	assert.Equal(t, "leaf.jpg", out.Name)
}

func TestNormalizeBoundsAndAspect(t *testing.T) {
	n := NewNormalizer(0.7, 300)
	sizes := [][2]int{{1200, 400}, {401, 1999}, {301, 301}, {640, 300}, {5000, 17}}

	for _, size := range sizes {
		out, err := n.Normalize(context.Background(), pngCapture(t, size[0], size[1]))
		require.NoError(t, err)

		cfg := decodeJPEGConfig(t, out)
		assert.LessOrEqual(t, cfg.Width, 300)
		assert.LessOrEqual(t, cfg.Height, 300)

		want := float64(size[0]) / float64(size[1])
		got := float64(cfg.Width) / float64(cfg.Height)
		// one pixel of rounding on the shorter side
		tolerance := want / float64(min(cfg.Width, cfg.Height))
		assert.InDelta(t, want, got, math.Max(tolerance, 0.01), "size %v", size)
	}
}

func TestNormalizeDoesNotUpscale(t *testing.T) {
	n := NewNormalizer(0.8, 1024)

	for _, size := range [][2]int{{640, 480}, {1024, 1024}, {1, 1}, {1024, 10}} {
		out, err := n.Normalize(context.Background(), pngCapture(t, size[0], size[1]))
		require.NoError(t, err)

		cfg := decodeJPEGConfig(t, out)
		assert.Equal(t, size[0], cfg.Width)
		assert.Equal(t, size[1], cfg.Height)
	}
}

func TestNormalizeRejectsCorruptInput(t *testing.T) {
	n := NewNormalizer(0.8, 1024)

	_, err := n.Normalize(context.Background(), models.NewCapture("x.jpg", []byte("definitely not an image")))
	require.ErrorIs(t, err, ErrDecode)
}

// withDimensions rewrites the IHDR width and height of a PNG without
// touching its pixel data.
func withDimensions(t *testing.T, c models.Capture, width, height uint32) models.Capture {
	t.Helper()
	data := append([]byte{}, c.Data...)
	require.Equal(t, "IHDR", string(data[12:16]))
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return models.NewCapture(c.Name, data)
}

func TestNormalizeRejectsHugeDimensionsBeforeDecoding(t *testing.T) {
	huge := withDimensions(t, pngCapture(t, 8, 8), 16000, 16000)

	_, err := NewNormalizer(0.8, 1024).Normalize(context.Background(), huge)
	require.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestNormalizeHonoursMaxPixels(t *testing.T) {
	n := NewNormalizer(0.8, 1024)
	n.MaxPixels = 100

	_, err := n.Normalize(context.Background(), pngCapture(t, 20, 20))
	require.ErrorIs(t, err, ErrTooManyPixels)

	_, err = n.Normalize(context.Background(), pngCapture(t, 10, 10))
	require.NoError(t, err)
}

func TestNormalizeRejectsInvalidOptions(t *testing.T) {
	for _, n := range []*Normalizer{NewNormalizer(0, 1024), NewNormalizer(1.2, 1024), NewNormalizer(0.8, 0)} {
		_, err := n.Normalize(context.Background(), pngCapture(t, 10, 10))
		require.ErrorIs(t, err, ErrInvalidOptions)
	}
}

func TestNormalizeHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNormalizer(0.8, 1024).Normalize(ctx, pngCapture(t, 10, 10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h, limit  int
		wantW, wantH int
	}{
		{2000, 1500, 1024, 1024, 768},
		{1500, 2000, 1024, 768, 1024},
		{2048, 2048, 1024, 1024, 1024},
		{800, 600, 1024, 800, 600},
		{10000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := ScaledSize(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}
