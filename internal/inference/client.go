package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/metrics"
	"github.com/kdduha/chiliguard/internal/models"
)

const (
	endpointPredict = "predict"
	endpointHealth  = "health"
	endpointClasses = "classes"

	imageField = "image"
)

// APIError is a non-success answer of the inference service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the remote inference service. Every call is a single
// attempt; retries are left to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Predict uploads one normalized image and returns the diagnosis.
func (c *Client) Predict(ctx context.Context, img models.Capture) (*models.PredictionResult, error) {
	body, contentType, err := multipartBody(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpointPredict), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var result models.PredictionResult
	if err := c.do(req, endpointPredict, &result); err != nil {
		c.logger.Error("Prediction request failed", zap.String("file", img.Name), zap.Error(err))
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// Health probes the inference service.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpointHealth), nil)
	if err != nil {
		return nil, err
	}
	var status models.HealthStatus
	if err := c.do(req, endpointHealth, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Classes lists every class the model can detect.
func (c *Client) Classes(ctx context.Context) (*models.ClassCatalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpointClasses), nil)
	if err != nil {
		return nil, err
	}
	var catalog models.ClassCatalog
	if err := c.do(req, endpointClasses, &catalog); err != nil {
		return nil, err
	}
	if catalog.Classes == nil {
		catalog.Classes = []models.ClassItem{}
	}
	return &catalog, nil
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + "/" + endpoint + "/"
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.InferenceRequest(endpoint, "error", time.Since(start))
		return fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.InferenceRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		}
	}

	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid response from %s: %w", endpoint, err)
	}
	return nil
}

// errorMessage prefers the server-provided message and falls back to one
// derived from the status code.
func errorMessage(raw []byte, status int) string {
	var body models.ErrorResponse
	if err := sonic.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func multipartBody(img models.Capture) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := img.Name
	if name == "" {
		name = models.DefaultCaptureName
	}
	contentType := img.MIMEType
	if contentType == "" {
		contentType = models.MIMEJPEG
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imageField, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
