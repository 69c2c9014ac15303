package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository keeps refresh sessions. Expiry is enforced by the
// store, so a token that can be found is still valid.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	FindUserID(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}

type redisRefreshTokenRepository struct {
	client *redis.Client
}

func NewRefreshTokenRepository(client *redis.Client) RefreshTokenRepository {
	return &redisRefreshTokenRepository{client: client}
}

func refreshKey(token string) string {
	return "refresh:" + token
}

func (r *redisRefreshTokenRepository) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	key := refreshKey(token)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"user_id":   userID,
			"issued_at": time.Now().UTC().Format(time.RFC3339),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *redisRefreshTokenRepository) FindUserID(ctx context.Context, token string) (int64, error) {
	raw, err := r.client.HGet(ctx, refreshKey(token), "user_id").Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find refresh token: %w", err)
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse refresh token owner: %w", err)
	}
	return userID, nil
}

func (r *redisRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
