package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/metrics"
	"github.com/kdduha/chiliguard/internal/models"
	"github.com/kdduha/chiliguard/internal/state"
)

type Normalizer interface {
	Normalize(ctx context.Context, in models.Capture) (models.Capture, error)
}

type Predictor interface {
	Predict(ctx context.Context, img models.Capture) (*models.PredictionResult, error)
}

type Camera interface {
	Capture(ctx context.Context) (models.Capture, error)
}

// Cache remembers predictions for identical normalized images.
type Cache interface {
	Get(ctx context.Context, img models.Capture) (*models.PredictionResult, bool, error)
	Set(ctx context.Context, img models.Capture, result *models.PredictionResult) error
}

const (
	outcomeOK            = "ok"
	outcomeCached        = "cached"
	outcomeBusy          = "busy"
	outcomeAcquisition   = "acquisition_error"
	outcomeNormalization = "normalization_error"
	outcomeInference     = "inference_error"
)

type ScanService struct {
	logger     *zap.Logger
	store      *state.Store
	normalizer Normalizer
	predictor  Predictor
	camera     Camera
	cache      Cache
	now        func() time.Time
}

func NewScanService(
	logger *zap.Logger,
	store *state.Store,
	normalizer Normalizer,
	predictor Predictor,
	camera Camera,
) *ScanService {
	return &ScanService{
		logger:     logger,
		store:      store,
		normalizer: normalizer,
		predictor:  predictor,
		camera:     camera,
		now:        time.Now,
	}
}

func (s *ScanService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Scan runs one capture cycle: normalize, predict, record. Only one cycle
// runs at a time; a concurrent call fails with ErrBusy. The processing flag
// is cleared on every exit path.
func (s *ScanService) Scan(ctx context.Context, img models.Capture) (*models.PredictionResult, error) {
	if !s.store.TryBeginProcessing() {
		metrics.ScanCycle(outcomeBusy)
		return nil, ErrBusy
	}
	defer s.store.SetProcessing(false)

	return s.scan(ctx, img)
}

// ScanCamera grabs a frame from the camera and runs a capture cycle on it.
func (s *ScanService) ScanCamera(ctx context.Context) (*models.PredictionResult, error) {
	if !s.store.TryBeginProcessing() {
		metrics.ScanCycle(outcomeBusy)
		return nil, ErrBusy
	}
	defer s.store.SetProcessing(false)

	if s.camera == nil {
		metrics.ScanCycle(outcomeAcquisition)
		return nil, stageError(ErrAcquisition, errNoCamera)
	}
	img, err := s.camera.Capture(ctx)
	if err != nil {
		s.logger.Warn("Camera capture failed", zap.Error(err))
		metrics.ScanCycle(outcomeAcquisition)
		return nil, stageError(ErrAcquisition, err)
	}
	return s.scan(ctx, img)
}

func (s *ScanService) scan(ctx context.Context, img models.Capture) (*models.PredictionResult, error) {
	s.logger.Info("Starting capture cycle",
		zap.String("name", img.Name),
		zap.String("mime", img.MIMEType),
		zap.Int("bytes", img.Size()),
	)
	s.store.SetCapture(&img)

	normalized, err := s.normalizer.Normalize(ctx, img)
	if err != nil {
		s.logger.Warn("Image normalization failed", zap.Error(err))
		metrics.ScanCycle(outcomeNormalization)
		return nil, stageError(ErrNormalization, err)
	}

	outcome := outcomeOK
	result := s.cached(ctx, normalized)
	if result != nil {
		outcome = outcomeCached
	} else {
		result, err = s.predictor.Predict(ctx, normalized)
		if err != nil {
			s.logger.Warn("Prediction failed", zap.Error(err))
			metrics.ScanCycle(outcomeInference)
			return nil, stageError(ErrInference, err)
		}
		s.remember(ctx, normalized, result)
	}

	s.store.SetResult(result)
	s.store.AddHistory(models.NewHistoryEntry(normalized.DataURL(), *result, s.now()))
	s.store.ClearChat()

	metrics.ScanCycle(outcome)
	s.logger.Info("Capture cycle finished",
		zap.String("class", result.Class),
		zap.Float64("confidence", result.Confidence),
		zap.String("outcome", outcome),
	)
	return result, nil
}

func (s *ScanService) cached(ctx context.Context, img models.Capture) *models.PredictionResult {
	if s.cache == nil {
		return nil
	}
	result, found, err := s.cache.Get(ctx, img)
	if err != nil {
		s.logger.Warn("Cache get error", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	s.logger.Debug("Prediction served from cache")
	return result
}

func (s *ScanService) remember(ctx context.Context, img models.Capture, result *models.PredictionResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, img, result); err != nil {
		s.logger.Warn("Failed to set cache", zap.Error(err))
	}
}
