package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"askpilot/internal/model"
)

type historyPayload struct {
	Entries    []model.HistoryEntry `json:"entries"`
	LastActive time.Time            `json:"last_active"`
}

// RedisHistoryStore keeps per-user history as a JSON value with a TTL
// matching the history idle limit, so stale history also ages out of
// Redis on its own.
type RedisHistoryStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redisv9.Client, ttl time.Duration) *RedisHistoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) Get(ctx context.Context, username string) ([]model.HistoryEntry, time.Time, error) {
	raw, err := s.client.Get(ctx, s.key(username)).Result()
	if err == redisv9.Nil {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("redis get history failed: %w", err)
	}

	var payload historyPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal cached history failed: %w", err)
	}
	return payload.Entries, payload.LastActive, nil
}

func (s *RedisHistoryStore) Put(ctx context.Context, username string, entries []model.HistoryEntry, lastActive time.Time) error {
	payload, err := json.Marshal(historyPayload{Entries: entries, LastActive: lastActive})
	if err != nil {
		return fmt.Errorf("marshal history payload failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(username), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set history failed: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) Clear(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, s.key(username)).Err(); err != nil {
		return fmt.Errorf("redis delete history failed: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) key(username string) string {
	return fmt.Sprintf("qa:history:%s", username)
}
