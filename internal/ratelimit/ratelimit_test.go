package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "u1"))
	assert.True(t, l.Allow(ctx, "u1"))
	assert.False(t, l.Allow(ctx, "u1"))
	assert.True(t, l.Allow(ctx, "u2"), "keys are independent")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow(ctx, "u1"), "a new window starts fresh")
}

func TestMemoryLimiter_Disabled(t *testing.T) {
	l := NewMemoryLimiter(0, time.Minute)
	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(context.Background(), "u1"))
	}
	assert.True(t, NewMemoryLimiter(1, time.Minute).Allow(context.Background(), ""))
}

func TestRedisLimiter_NilAllows(t *testing.T) {
	var l *RedisLimiter
	assert.True(t, l.Allow(context.Background(), "u1"))
	assert.Nil(t, NewRedisLimiter(nil, 1, time.Second, "", nil))
}

func TestRedisLimiter_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 2, time.Minute, "it-"+uuid.NewString(), nil)
	ctx := context.Background()
	assert.True(t, l.Allow(ctx, "u1"))
	assert.True(t, l.Allow(ctx, "u1"))
	assert.False(t, l.Allow(ctx, "u1"))
	assert.True(t, l.Allow(ctx, "u2"))
}
