package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ojena-analytics/shopify"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "shopify:token:"

// TokenStore 基于 Redis 的令牌存储，多个代理实例共享同一令牌
type TokenStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewTokenStore 创建 Redis 令牌存储
func NewTokenStore(client redis.Cmdable) *TokenStore {
	return &TokenStore{client: client, now: time.Now}
}

var _ shopify.TokenStore = (*TokenStore)(nil)

func (s *TokenStore) Load(ctx context.Context, key string) (shopify.CachedToken, bool, error) {
	raw, err := s.client.Get(ctx, tokenKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return shopify.CachedToken{}, false, nil
	} else if err != nil {
		return shopify.CachedToken{}, false, fmt.Errorf("failed to get token: %w", err)
	}

	var token shopify.CachedToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return shopify.CachedToken{}, false, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, true, nil
}

// Save 按令牌剩余有效期设置过期时间
func (s *TokenStore) Save(ctx context.Context, key string, token shopify.CachedToken) error {
	ttl := token.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}
