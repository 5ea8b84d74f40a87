package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRunLocker(t *testing.T) {
	locker := NewLocalRunLocker()
	ctx := context.Background()

	release, err := locker.Obtain(ctx, "pricing", time.Minute)
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, "pricing", time.Minute)
	assert.ErrorIs(t, err, ErrRunInProgress)

	otherRelease, err := locker.Obtain(ctx, "exports", time.Minute)
	require.NoError(t, err)
	otherRelease()

	release()
	release() // second call is a no-op

	again, err := locker.Obtain(ctx, "pricing", time.Minute)
	require.NoError(t, err)
	again()
}

func TestRedisRunLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opts)
	defer rc.Close()

	logger, _ := test.NewNullLogger()
	locker := NewRedisRunLocker(rc, "jasado_test:", logger)
	ctx := context.Background()

	release, err := locker.Obtain(ctx, "pricing", 10*time.Second)
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, "pricing", 10*time.Second)
	assert.ErrorIs(t, err, ErrRunInProgress)

	release()

	again, err := locker.Obtain(ctx, "pricing", 10*time.Second)
	require.NoError(t, err)
	again()
}
