package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/tradeinsight/internal/adapter/cache"
	"github.com/seu-repo/tradeinsight/internal/domain"
	"github.com/seu-repo/tradeinsight/internal/service/auth"
)

// TestRedis_Cache tests the Redis cache adapter
func TestRedis_Cache(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	ctx := context.Background()
	c, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	require.NoError(t, err)
	defer c.Close()

	t.Run("SetGet string", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", "v1", time.Minute))
		val, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "v1", val)
	})

	t.Run("SetGet struct as JSON", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", domain.KeyValue{Key: "Tea", Value: 3}, time.Minute))
		val, err := c.Get(ctx, "k2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"key":"Tea","value":3}`, val)
	})

	t.Run("Keys are prefixed", func(t *testing.T) {
		n, err := env.Redis.Exists(ctx, "tradeinsight:k1").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Miss", func(t *testing.T) {
		_, err := c.Get(ctx, "absent")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("Expiration", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", "v", 100*time.Millisecond))
		time.Sleep(200 * time.Millisecond)
		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "k1"))
		_, err := c.Get(ctx, "k1")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, c.Ping())
	})
}

// TestRedis_TokenRevocation tests JWT revocation stored in Redis
func TestRedis_TokenRevocation(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	ctx := context.Background()
	c, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	require.NoError(t, err)
	defer c.Close()

	tokens := auth.NewJWTService("integration-test-secret", "tradeinsight", time.Hour, c, env.Logger)
	token, err := tokens.GenerateAccessToken(&domain.User{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, tokens.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time))

	_, err = tokens.ValidateToken(ctx, token)
	assert.Error(t, err)

	ttl, err := env.Redis.TTL(ctx, "tradeinsight:revoked_token:"+claims.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
