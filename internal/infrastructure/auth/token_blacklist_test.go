package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiry(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bl.now = func() time.Time { return now }

	require.NoError(t, bl.Revoke(ctx, "jti", time.Minute))
	now = now.Add(2 * time.Minute)

	revoked, err := bl.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, bl.jtis)

	require.NoError(t, bl.Revoke(ctx, "expired-already", 0))
	revoked, _ = bl.IsRevoked(ctx, "expired-already")
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	bl.now = func() time.Time { return now }

	revoked, err := bl.IsUserRevoked(ctx, "user-1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.RevokeUser(ctx, "user-1", time.Hour))

	revoked, _ = bl.IsUserRevoked(ctx, "user-1", now.Add(-time.Hour))
	assert.True(t, revoked)
	revoked, _ = bl.IsUserRevoked(ctx, "user-1", now)
	assert.True(t, revoked)
	revoked, _ = bl.IsUserRevoked(ctx, "user-1", now.Add(time.Second))
	assert.False(t, revoked)
	revoked, _ = bl.IsUserRevoked(ctx, "user-2", now.Add(-time.Hour))
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist(t *testing.T) {
	addr := os.Getenv("SHOP_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer client.Close()

	bl := NewRedisTokenBlacklist(client, "test:token:"+t.Name()+":")
	ctx = context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.RevokeUser(ctx, "user-1", time.Minute))
	revoked, err = bl.IsUserRevoked(ctx, "user-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-2", time.Now())
	require.NoError(t, err)
	assert.False(t, revoked)

	client.Del(ctx, bl.jtiKey("jti-1"), bl.userKey("user-1"))
}
