package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/models"
)

func roundTrip(t *testing.T, storage Storage) {
	t.Helper()
	ctx := context.Background()

	empty, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	history := []models.HistoryEntry{entry(2), entry(1)}
	require.NoError(t, storage.Save(ctx, history))

	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "entry-2", loaded[0].ID)
	assert.Equal(t, "entry-1", loaded[1].ID)
	assert.True(t, history[0].Timestamp.Equal(loaded[0].Timestamp))
	assert.Equal(t, history[0].Result, loaded[0].Result)

	require.NoError(t, storage.Save(ctx, nil))
	loaded, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONStorageRoundTrip(t *testing.T) {
	storage := NewJSONStorage(filepath.Join(t.TempDir(), "nested", "state.json"), "chilliguard-storage")
	roundTrip(t, storage)
}

func TestJSONStorageLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	storage := NewJSONStorage(path, "chilliguard-storage")
	require.NoError(t, storage.Save(context.Background(), []models.HistoryEntry{entry(1)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":{"riwayatDiagnosis":[`)
	assert.Contains(t, string(data), `"version":0`)
	assert.Contains(t, string(data), `"tanggal"`)
	assert.Contains(t, string(data), `"hasil"`)
}

func TestJSONStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStorage(path, "chilliguard-storage").Load(context.Background())
	assert.Error(t, err)
}

func TestSQLiteStorageRoundTrip(t *testing.T) {
	storage, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "state.db"), "chilliguard-storage")
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	roundTrip(t, storage)
}

func TestRedisStorageRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	storage := NewRedisStorage(mr.Addr(), "", 0, "chilliguard-storage")
	t.Cleanup(func() { _ = storage.Close() })

	roundTrip(t, storage)
	assert.True(t, mr.Exists("chilliguard-storage"))
	assert.Equal(t, int64(0), int64(mr.TTL("chilliguard-storage")))
}

func TestNewByEngine(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)
	redisCfg := config.RedisConfig{Addr: mr.Addr()}

	tests := []struct {
		engine string
		want   any
	}{
		{EngineMemory, MemoryStorage{}},
		{EngineJSON, &JSONStorage{}},
		{EngineSQLite, &SQLiteStorage{}},
		{EngineRedis, &RedisStorage{}},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			storage, err := NewByEngine(config.StorageConfig{
				Engine: tt.engine,
				Path:   filepath.Join(dir, tt.engine, "chilliguard-storage.json"),
				Name:   "chilliguard-storage",
			}, redisCfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = storage.Close() })
			assert.IsType(t, tt.want, storage)
		})
	}

	_, err := NewByEngine(config.StorageConfig{Engine: "mongo"}, redisCfg)
	assert.Error(t, err)
}

func TestSQLitePath(t *testing.T) {
	assert.Equal(t, "data/chilliguard-storage.db", sqlitePath("data/chilliguard-storage.json"))
	assert.Equal(t, "data/state.sqlite", sqlitePath("data/state.sqlite"))
}
