package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/kdduha/chiliguard/internal/metrics"
	"github.com/kdduha/chiliguard/internal/models"
)

var (
	ErrDecode         = errors.New("failed to load image")
	ErrEncode         = errors.New("failed to compress image")
	ErrInvalidOptions = errors.New("invalid normalizer options")
	ErrTooManyPixels  = errors.New("image dimensions exceed pixel limit")
)

// DefaultMaxPixels bounds decoded images to about 160 MB of RGBA.
const DefaultMaxPixels = 40_000_000

const (
	statusOK    = "ok"
	statusError = "error"
)

// Normalizer bounds the size of an image before it is uploaded.
type Normalizer struct {
	// Quality is the JPEG quality in (0, 1].
	Quality float64
	// MaxDimension bounds both width and height, in pixels.
	MaxDimension int
	// MaxPixels bounds width*height of the decoded source.
	MaxPixels int
}

func NewNormalizer(quality float64, maxDimension int) *Normalizer {
	return &Normalizer{Quality: quality, MaxDimension: maxDimension, MaxPixels: DefaultMaxPixels}
}

// Normalize decodes the capture, shrinks it so neither side exceeds
// MaxDimension and re-encodes it as JPEG. Images already in bounds keep
// their size.
func (n *Normalizer) Normalize(ctx context.Context, in models.Capture) (models.Capture, error) {
	start := time.Now()

	out, format, err := n.normalize(ctx, in)

	status := statusOK
	if err != nil {
		status = statusError
	}
	metrics.ImageNormalizeTotal(status, format)
	metrics.ImageNormalizeDuration(status, format, time.Since(start))

	return out, err
}

func (n *Normalizer) normalize(ctx context.Context, in models.Capture) (models.Capture, string, error) {
	if n.Quality <= 0 || n.Quality > 1 || n.MaxDimension <= 0 || n.MaxPixels <= 0 {
		return models.Capture{}, "unknown", fmt.Errorf("%w: quality=%v max=%d", ErrInvalidOptions, n.Quality, n.MaxDimension)
	}
	if err := ctx.Err(); err != nil {
		return models.Capture{}, "unknown", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return models.Capture{}, "unknown", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(n.MaxPixels) {
		return models.Capture{}, format, fmt.Errorf("%w: %w: %dx%d", ErrDecode, ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(in.Data))
	if err != nil {
		return models.Capture{}, "unknown", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := ScaledSize(bounds.Dx(), bounds.Dy(), n.MaxDimension)

	var dst image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		if err := ctx.Err(); err != nil {
			return models.Capture{}, format, err
		}
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), src, bounds, draw.Over, nil)
		dst = rgba
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(n.Quality)}); err != nil {
		return models.Capture{}, format, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return models.Capture{
		Name:     jpegName(in.Name),
		MIMEType: models.MIMEJPEG,
		Data:     buf.Bytes(),
	}, format, nil
}

// ScaledSize fits width x height into a limit x limit box keeping the aspect
// ratio. The longer side becomes limit; sizes already in bounds are
// returned unchanged.
func ScaledSize(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width > height {
		h := int(math.Round(float64(height) / float64(width) * float64(limit)))
		return limit, clampMin(h)
	}
	w := int(math.Round(float64(width) / float64(height) * float64(limit)))
	return clampMin(w), limit
}

func clampMin(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	return v
}

func jpegName(name string) string {
	if name == "" {
		return models.DefaultCaptureName
	}
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return name
	}
	return strings.TrimSuffix(name, ext) + ".jpg"
}
