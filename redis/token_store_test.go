package redis

import (
	"context"
	"testing"
	"time"

	"ojena-analytics/shopify"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestTokenStore_ReportsUnavailableBackend(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	store := NewTokenStore(client)

	_, ok, err := store.Load(context.Background(), "shop.example")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get token")

	err = store.Save(context.Background(), "shop.example", shopify.CachedToken{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	})
	require.Error(t, err)
}

func TestTokenStore_SkipsExpiredToken(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	store := NewTokenStore(client)

	// 已过期的令牌不写入，也不会触发网络调用
	err := store.Save(context.Background(), "shop.example", shopify.CachedToken{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	})
	assert.NoError(t, err)
}

func TestGetClient_NilBeforeInit(t *testing.T) {
	assert.Nil(t, GetClient())
	assert.False(t, IsConnected())
}
