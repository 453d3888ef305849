package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// LastLoginStore keeps the most recent successful login instant per username.
// Key format: lastlogin:<username>
type LastLoginStore struct {
	client *redis.Client
}

// NewLastLoginStore creates a LastLoginStore wrapping the given Redis client.
func NewLastLoginStore(client *redis.Client) *LastLoginStore {
	return &LastLoginStore{client: client}
}

// Record stores the unix timestamp of the latest successful login.
func (s *LastLoginStore) Record(ctx context.Context, username string, ts int64) error {
	if err := s.client.Set(ctx, s.key(username), strconv.FormatInt(ts, 10), 0).Err(); err != nil {
		return fmt.Errorf("record last login: %w", err)
	}
	return nil
}

// Get returns the unix timestamp of the latest successful login, or 0 when
// the user has never logged in.
func (s *LastLoginStore) Get(ctx context.Context, username string) (int64, error) {
	val, err := s.client.Get(ctx, s.key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get last login: %w", err)
	}

	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse last login: %w", err)
	}
	return ts, nil
}

func (s *LastLoginStore) key(username string) string {
	return "lastlogin:" + username
}
