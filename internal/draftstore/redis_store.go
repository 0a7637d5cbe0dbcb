// Package draftstore keeps job posting wizard drafts between requests.
package draftstore

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/redis"
)

type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func draftKey(userID, id string) string {
	return fmt.Sprintf("job_draft:%s:%s", userID, id)
}

func (s *RedisStore) Get(ctx context.Context, userID, id string) (*domain.JobDraft, error) {
	var d domain.JobDraft
	found, err := redis.GetJSON(ctx, s.rdb, draftKey(userID, id), &d)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// Save writes the draft and restarts its ttl.
func (s *RedisStore) Save(ctx context.Context, d *domain.JobDraft) error {
	return redis.SetJSON(ctx, s.rdb, draftKey(d.UserID, d.ID), d, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, userID, id string) error {
	return redis.Delete(ctx, s.rdb, draftKey(userID, id))
}

var _ domain.DraftStore = (*RedisStore)(nil)
