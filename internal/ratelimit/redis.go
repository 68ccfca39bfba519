package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisTimeout = 500 * time.Millisecond

// NewRedisClient connects to the Redis server at url
func NewRedisClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)

// RedisStore counts requests in fixed windows shared by every instance.
// When Redis is unreachable requests are allowed.
type RedisStore struct {
	rdb    *goredis.Client
	clock  clockwork.Clock
	limit  Limit
	logger *zap.Logger
}

// NewRedisStore creates a store for one limit
func NewRedisStore(rdb *goredis.Client, clock clockwork.Clock, limit Limit, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		clock:  clock,
		limit:  limit,
		logger: logger,
	}
}

// Allow implements middleware.RateLimiterStore
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	window := s.clock.Now().UnixNano() / int64(s.limit.Window)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", s.limit.Name, identifier, window)

	var incr *goredis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.limit.Window)
		return nil
	})
	if err != nil {
		s.logger.Warn("Rate limit store unavailable, allowing request",
			zap.String("limit", s.limit.Name),
			zap.Error(err),
		)
		return true, nil
	}

	return incr.Val() <= int64(s.limit.Requests), nil
}
