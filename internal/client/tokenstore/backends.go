package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/metadata"
)

// MetadataBackend stores the token in the local state database.
type MetadataBackend struct {
	repo metadata.Repository
}

func NewMetadataBackend(repo metadata.Repository) *MetadataBackend {
	return &MetadataBackend{repo: repo}
}

func (b *MetadataBackend) Load(ctx context.Context) (string, error) {
	v, err := b.repo.Get(ctx, TokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (b *MetadataBackend) Save(ctx context.Context, token string) error {
	return b.repo.Set(ctx, TokenKey, []byte(token))
}

func (b *MetadataBackend) Delete(ctx context.Context) error {
	return b.repo.Delete(ctx, TokenKey)
}

// RedisBackend stores the token in Redis under "<prefix><scope>:access_token",
// letting several client hosts share one remembered session.
type RedisBackend struct {
	client redis.UniversalClient
	key    string
}

func NewRedisBackend(client redis.UniversalClient, prefix, scope string) *RedisBackend {
	return &RedisBackend{client: client, key: prefix + scope + ":" + TokenKey}
}

func (b *RedisBackend) Load(ctx context.Context) (string, error) {
	v, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (b *RedisBackend) Save(ctx context.Context, token string) error {
	if err := b.client.Set(ctx, b.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
