package state

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kdduha/chiliguard/internal/models"
)

// RedisStorage keeps the history record under a single key without expiry.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(addr, password string, db int, key string) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		key: key,
	}
}

func (s *RedisStorage) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeHistory(val)
}

func (s *RedisStorage) Save(ctx context.Context, history []models.HistoryEntry) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
