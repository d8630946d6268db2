package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lovecorner/internal/middleware"
	"lovecorner/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Redis stores every collection as a plain string key holding JSON.
type Redis struct {
	rdb *redis.Client
}

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.StoreErrors.WithLabelValues("redis", cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.StoreErrors.WithLabelValues("redis", "pipeline").Inc()
		}
		return err
	}
}

// OpenRedis connects to Redis at addr, which may be a host:port pair or a
// redis:// URL. Unlike a cache, the store is a primary dependency, so a
// failed ping is an error rather than a degraded start.
func OpenRedis(addr string) (*Redis, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{rdb: client}, nil
}

// NewRedis wraps an existing client; used by tests with miniredis.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{rdb: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := observability.TraceStoreOperation(ctx, "redis", "get", key)
	defer span.End()

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, false, err
	}
	return raw, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := observability.TraceStoreOperation(ctx, "redis", "set", key)
	defer span.End()

	// Engagement data has no expiry; entries live until overwritten.
	err := r.rdb.Set(ctx, key, value, 0).Err()
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
	}
	return err
}

// Ping reports whether the backend is reachable; used by readiness checks.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
