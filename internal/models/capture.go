package models

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWebP = "image/webp"

	DefaultCaptureName = "capture.jpg"
)

// Capture is an in-memory encoded image from the camera or a file.
type Capture struct {
	Name     string
	MIMEType string
	Data     []byte
}

// NewCapture detects the MIME type from content.
func NewCapture(name string, data []byte) Capture {
	if strings.TrimSpace(name) == "" {
		name = DefaultCaptureName
	}
	return Capture{
		Name:     name,
		MIMEType: mimetype.Detect(data).String(),
		Data:     data,
	}
}

func (c Capture) Size() int {
	return len(c.Data)
}

// DataURL renders the capture as a data URL suitable for history entries.
func (c Capture) DataURL() string {
	mime := c.MIMEType
	if mime == "" {
		mime = MIMEJPEG
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
}

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// CaptureFromBase64 accepts a data URL or a bare base64 string. The MIME
// type comes from the data URL header; bare strings default to JPEG.
func CaptureFromBase64(encoded, name string) (Capture, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return Capture{}, fmt.Errorf("image is empty")
	}

	mime := MIMEJPEG
	switch {
	case strings.HasPrefix(encoded, "data:image/png"):
		mime = MIMEPNG
	case strings.HasPrefix(encoded, "data:image/webp"):
		mime = MIMEWebP
	}

	raw, err := base64.StdEncoding.DecodeString(dataURLPrefix.ReplaceAllString(encoded, ""))
	if err != nil {
		return Capture{}, fmt.Errorf("failed to decode base64: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultCaptureName
	}
	return Capture{Name: name, MIMEType: mime, Data: raw}, nil
}

// ScanRequest carries a capture encoded as base64 in JSON.
type ScanRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
	FileName    string `json:"file_name" example:"leaf.jpg"`
}
