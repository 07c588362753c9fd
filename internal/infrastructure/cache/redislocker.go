package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

const (
	lockKeyPrefix     = "redsys:lock:"
	lockRetryInterval = 25 * time.Millisecond
	releaseTimeout    = 2 * time.Second
)

// releaseScript deletes the key only while it still carries our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a lock.Locker shared by every server instance using the same
// Redis. A held key expires after ttl if its holder dies.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger logger.Interface
}

var _ lock.Locker = (*RedisLocker)(nil)

// NewRedisLocker creates a locker whose keys expire after ttl and whose
// Acquire gives up after wait; zero waits for ctx only.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, log logger.Interface) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: log,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (context.Context, func(), error) {
	if lock.IsHeld(ctx, key) {
		return ctx, func() {}, nil
	}

	waitCtx := ctx
	if l.wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err == nil && ok {
			break
		}
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			l.logger.Errorw("failed to acquire redis lock", "key", key, "error", err)
			return ctx, func() {}, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				return ctx, func() {}, fmt.Errorf("%w: %s", lock.ErrLockTimeout, key)
			}
			return ctx, func() {}, waitCtx.Err()
		}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			deleted, err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Int()
			if err != nil {
				l.logger.Warnw("failed to release redis lock", "key", key, "error", err)
				return
			}
			if deleted == 0 {
				l.logger.Warnw("redis lock expired before release", "key", key, "ttl", l.ttl)
			}
		})
	}
	return lock.MarkHeld(ctx, key), release, nil
}
