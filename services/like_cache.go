package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// likeCountTTL keeps stale badge counters from living forever.
const likeCountTTL = 24 * time.Hour

// LikeCache tracks how many likes a user has received since they last
// matched, backing the "new likes" badge. It is strictly best-effort: a
// Redis failure never fails the like itself.
type LikeCache struct {
	Client *redis.Client
}

// NewLikeCache initializes the Redis client. Only Addr is mandatory.
func NewLikeCache(addr, password string, db int) *LikeCache {
	opts := &redis.Options{Addr: addr}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return &LikeCache{Client: redis.NewClient(opts)}
}

func (c *LikeCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *LikeCache) keyFor(userID string) string {
	return fmt.Sprintf("likes:new:%s", userID)
}

// IncrNewLikes bumps the counter for a user who just received a like.
func (c *LikeCache) IncrNewLikes(ctx context.Context, userID string) error {
	key := c.keyFor(userID)
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	// refresh TTL on every bump
	return c.Client.Expire(ctx, key, likeCountTTL).Err()
}

// GetNewLikes returns the counter, treating a missing key as zero.
func (c *LikeCache) GetNewLikes(ctx context.Context, userID string) (int64, error) {
	val, err := c.Client.Get(ctx, c.keyFor(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // cache miss
	} else if err != nil {
		return 0, err
	}
	return val, nil
}

// ClearNewLikes resets the counter, used when a user matches.
func (c *LikeCache) ClearNewLikes(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, c.keyFor(userID)).Err()
}
