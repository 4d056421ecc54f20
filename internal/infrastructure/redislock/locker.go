package redislock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("lock wait timed out")

// delete only when the caller still owns the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived exclusive locks backed by Redis SET NX PX.
type Locker struct {
	rdb   *redis.Client
	ttl   time.Duration
	wait  time.Duration
	retry time.Duration
}

// New returns a Locker. ttl bounds how long a crashed holder can block others,
// wait bounds how long Lock retries before giving up.
func New(rdb *redis.Client, ttl, wait time.Duration) *Locker {
	return &Locker{rdb: rdb, ttl: ttl, wait: wait, retry: 50 * time.Millisecond}
}

// Lock acquires every key or none. Keys are taken in sorted order so two
// callers locking overlapping sets cannot deadlock.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	held := make([]string, 0, len(sorted))

	unlock := func() {
		// release with a fresh context so a cancelled request still frees its keys
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for _, k := range held {
			_ = releaseScript.Run(ctx, l.rdb, []string{k}, token).Err()
		}
	}

	for _, key := range sorted {
		if err := l.acquire(ctx, key, token, deadline); err != nil {
			unlock()
			return nil, err
		}
		held = append(held, key)
	}
	return unlock, nil
}

func (l *Locker) acquire(ctx context.Context, key, token string, deadline time.Time) error {
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
