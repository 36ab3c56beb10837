// Package lock serializes updates to one call across service replicas.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock: not acquired")

// Release gives a held lock back. It is safe to call once per acquisition.
type Release func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// Noop grants every lock immediately. The row lock taken by the store is the
// only serialization when redis is not configured.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, key string) (Release, error) {
	return func(context.Context) error { return nil }, nil
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
	Wait   time.Duration
	Retry  time.Duration
}

func NewRedisLocker(opt *redis.Options, prefix string, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		Client: redis.NewClient(opt),
		Prefix: prefix,
		TTL:    ttl,
		Wait:   wait,
	}
}

func (l *RedisLocker) Key(key string) string {
	return l.Prefix + key
}

// Acquire polls SET NX until it wins, Wait elapses or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	if l == nil || l.Client == nil {
		return Noop{}.Acquire(ctx, key)
	}
	ttl := l.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	retry := l.Retry
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	fullKey := l.Key(key)
	token := uuid.NewString()
	deadline := time.Now().Add(l.Wait)

	for {
		ok, err := l.Client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func(rctx context.Context) error {
				return releaseScript.Run(rctx, l.Client, []string{fullKey}, token).Err()
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrNotAcquired
		}
		timer := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) Ping(ctx context.Context) error {
	if l == nil || l.Client == nil {
		return nil
	}
	return l.Client.Ping(ctx).Err()
}

func (l *RedisLocker) Close() error {
	if l == nil || l.Client == nil {
		return nil
	}
	return l.Client.Close()
}
