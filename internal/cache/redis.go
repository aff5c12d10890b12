package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/kdduha/chiliguard/internal/models"
)

const keyPrefix = "chiliguard:prediction:"

// RedisCache stores predictions keyed by the normalized image bytes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func Key(img models.Capture) string {
	hash := sha256.Sum256(img.Data)
	return keyPrefix + hex.EncodeToString(hash[:])
}

func (r *RedisCache) Get(ctx context.Context, img models.Capture) (*models.PredictionResult, bool, error) {
	val, err := r.client.Get(ctx, Key(img)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result models.PredictionResult
	if err := sonic.Unmarshal(val, &result); err != nil {
		return nil, false, err
	}
	result.Normalize()
	return &result, true, nil
}

func (r *RedisCache) Set(ctx context.Context, img models.Capture, result *models.PredictionResult) error {
	data, err := sonic.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, Key(img), data, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
