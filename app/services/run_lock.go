package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrRunInProgress is returned when a run lock is already held.
var ErrRunInProgress = errors.New("run already in progress")

const lockReleaseTimeout = 5 * time.Second

// RunLocker guards long running jobs so only one instance executes at a time.
type RunLocker interface {
	// Obtain acquires key for at most ttl. The returned release func must be
	// called once the run is over.
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// RedisRunLocker shares the lock between processes through Redis.
type RedisRunLocker struct {
	client *redislock.Client
	prefix string
	logger logrus.FieldLogger
}

// NewRedisRunLocker creates a Redis backed locker. Keys are prefixed with prefix.
func NewRedisRunLocker(rc redis.UniversalClient, prefix string, logger logrus.FieldLogger) *RedisRunLocker {
	return &RedisRunLocker{
		client: redislock.New(rc),
		prefix: prefix,
		logger: logger,
	}
}

func (l *RedisRunLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lockKey := l.prefix + key
	lock, err := l.client.Obtain(ctx, lockKey, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%s: %w", key, ErrRunInProgress)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", lockKey, err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.WithError(err).WithField("key", lockKey).Warn("Failed to release run lock")
		}
	}, nil
}

// LocalRunLocker is the single process fallback used when Redis is disabled.
// The ttl is ignored; the lock is held until released.
type LocalRunLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalRunLocker() *LocalRunLocker {
	return &LocalRunLocker{held: make(map[string]struct{})}
}

func (l *LocalRunLocker) Obtain(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, fmt.Errorf("%s: %w", key, ErrRunInProgress)
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
