// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"estately/models"
	"estately/utils"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore persists dialogue sessions in Redis. A session lives as
// long as its conversation; no TTL is applied here, cleanup follows the
// externally managed conversation lifetime.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	key := utils.SessionKeyPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ChatSession{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.ChatSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, slots models.Slots, language string) error {
	sess := models.ChatSession{
		SessionID: sessionID,
		Slots:     slots,
		Language:  language,
		UpdatedAt: time.Now(),
	}
	b, err := json.Marshal(&sess)
	if err != nil {
		return err
	}
	key := utils.SessionKeyPrefix + sessionID
	return s.client.Set(ctx, key, b, 0).Err()
}

// RedisMemoryStore keeps saved notes as a Redis list per session.
type RedisMemoryStore struct {
	client *redis.Client
}

func NewRedisMemoryStore(client *redis.Client) *RedisMemoryStore {
	return &RedisMemoryStore{client: client}
}

func (s *RedisMemoryStore) Save(ctx context.Context, sessionID, note string) error {
	return s.client.RPush(ctx, utils.MemoryKeyPrefix+sessionID, note).Err()
}

func (s *RedisMemoryStore) List(ctx context.Context, sessionID string) ([]string, error) {
	return s.client.LRange(ctx, utils.MemoryKeyPrefix+sessionID, 0, -1).Result()
}
