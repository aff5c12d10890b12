package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/kdduha/chiliguard/internal/models"
)

// JSONStorage writes the history record to a single file.
type JSONStorage struct {
	filePath string
	name     string
	mu       sync.Mutex
}

func NewJSONStorage(filePath, name string) *JSONStorage {
	return &JSONStorage{filePath: filePath, name: name}
}

func (s *JSONStorage) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return decodeHistory(data)
}

func (s *JSONStorage) Save(ctx context.Context, history []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

func (s *JSONStorage) Close() error {
	return nil
}
