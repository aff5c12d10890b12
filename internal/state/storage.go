package state

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/models"
)

const (
	EngineMemory = "memory"
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
	EngineRedis  = "redis"
)

// Storage persists the diagnosis history, the only durable part of the
// application state.
type Storage interface {
	Load(ctx context.Context) ([]models.HistoryEntry, error)
	Save(ctx context.Context, history []models.HistoryEntry) error
	Close() error
}

func NewByEngine(cfg config.StorageConfig, redisCfg config.RedisConfig) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case EngineMemory:
		return MemoryStorage{}, nil
	case "", EngineJSON:
		return NewJSONStorage(cfg.Path, cfg.Name), nil
	case EngineSQLite:
		return NewSQLiteStorage(sqlitePath(cfg.Path), cfg.Name)
	case EngineRedis:
		return NewRedisStorage(redisCfg.Addr, redisCfg.Password, redisCfg.DB, cfg.Name), nil
	default:
		return nil, errors.New("unsupported storage engine: " + cfg.Engine)
	}
}

func sqlitePath(path string) string {
	if filepath.Ext(path) == ".json" {
		return strings.TrimSuffix(path, ".json") + ".db"
	}
	return path
}

// MemoryStorage keeps nothing; history lives only as long as the process.
type MemoryStorage struct{}

func (MemoryStorage) Load(context.Context) ([]models.HistoryEntry, error) { return nil, nil }
func (MemoryStorage) Save(context.Context, []models.HistoryEntry) error   { return nil }
func (MemoryStorage) Close() error                                        { return nil }

// record mirrors the persisted layout of the web client, so existing
// browser exports load unchanged.
type record struct {
	State struct {
		History []models.HistoryEntry `json:"riwayatDiagnosis"`
	} `json:"state"`
	Version int `json:"version"`
}

func encodeHistory(history []models.HistoryEntry) ([]byte, error) {
	var rec record
	rec.State.History = history
	if rec.State.History == nil {
		rec.State.History = []models.HistoryEntry{}
	}
	return sonic.Marshal(rec)
}

func decodeHistory(data []byte) ([]models.HistoryEntry, error) {
	var rec record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	for i := range rec.State.History {
		rec.State.History[i].Result.Normalize()
	}
	return rec.State.History, nil
}
