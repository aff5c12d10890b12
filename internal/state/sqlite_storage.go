package state

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kdduha/chiliguard/internal/models"
)

// SQLiteStorage keeps the history record in a key/value table so several
// named records can share one database file.
type SQLiteStorage struct {
	db   *sql.DB
	name string
}

func NewSQLiteStorage(filePath, name string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, name: name}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS storage (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`)
	return err
}

func (s *SQLiteStorage) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE name = ?`, s.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeHistory([]byte(value))
}

func (s *SQLiteStorage) Save(ctx context.Context, history []models.HistoryEntry) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO storage (name, value, updated_at)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.name, string(data))
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
