package redis

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

// setupTestRedis connects to TEST_REDIS_ADDR.
// Tests are skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := Connect(context.Background(), Options{Addr: addr})
	if err != nil {
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestDenylist_RevokeAndCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	d := NewDenylistWithPrefix(client, "test-revoked:")
	ctx := context.Background()

	t.Run("revoked token is reported", func(t *testing.T) {
		jti := uuid.NewString()
		require.NoError(t, d.Revoke(ctx, jti, time.Now().Add(time.Minute)))

		revoked, err := d.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl := client.TTL(ctx, "test-revoked:"+jti).Val()
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := d.IsRevoked(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		jti := uuid.NewString()
		require.NoError(t, d.Revoke(ctx, jti, time.Now().Add(-time.Minute)))

		revoked, err := d.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	require.NoError(t, d.Ping(ctx))
}

func TestDenylist_EmptyID(t *testing.T) {
	// no server needed: both paths return before touching the client
	d := NewDenylist(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))

	assert.Error(t, d.Revoke(context.Background(), "", time.Now().Add(time.Hour)))

	revoked, err := d.IsRevoked(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
