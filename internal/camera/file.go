package camera

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kdduha/chiliguard/internal/models"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds size limit")
)

// FromReader reads a user-selected file into a capture. limit is in bytes;
// zero disables the check.
func FromReader(r io.Reader, name string, limit int64) (models.Capture, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Capture{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return models.Capture{}, ErrEmptyFile
	}
	if limit > 0 && int64(len(data)) > limit {
		return models.Capture{}, fmt.Errorf("%w of %d bytes", ErrFileTooLarge, limit)
	}
	return models.NewCapture(name, data), nil
}

func FromFile(path string, limit int64) (models.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Capture{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return FromReader(f, filepath.Base(path), limit)
}
