package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"ojena-analytics/pkg/monitoring"
)

// RefreshMargin 令牌在到期前多久视为失效
const RefreshMargin = 60 * time.Second

// TokenState 令牌缓存状态
type TokenState string

const (
	StateNoToken  TokenState = "no-token"
	StateValid    TokenState = "valid"
	StateExpiring TokenState = "expiring"
)

// CachedToken 缓存的访问令牌
type CachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// usable 在 now 时刻距到期是否仍大于刷新余量
func (t CachedToken) usable(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.ExpiresAt.Add(-RefreshMargin))
}

// TokenStore 令牌持久化，默认只保存在进程内
type TokenStore interface {
	Load(ctx context.Context, key string) (CachedToken, bool, error)
	Save(ctx context.Context, key string, token CachedToken) error
}

// MemoryTokenStore 进程内令牌存储
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]CachedToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]CachedToken)}
}

func (s *MemoryTokenStore) Load(_ context.Context, key string) (CachedToken, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[key]
	return t, ok, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, key string, token CachedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = token
	return nil
}

// TokenOption TokenCache 可选项
type TokenOption func(*TokenCache)

// WithClock 注入时钟，便于测试
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCache) { c.now = now }
}

// WithTokenStore 多实例共享的令牌存储（例如 Redis），进程内缓存始终在前
func WithTokenStore(store TokenStore) TokenOption {
	return func(c *TokenCache) { c.shared = store }
}

func WithHTTPClient(client *http.Client) TokenOption {
	return func(c *TokenCache) { c.http = client }
}

// WithBaseURL 覆盖 https://{domain}，测试时指向 httptest 服务
func WithBaseURL(base string) TokenOption {
	return func(c *TokenCache) { c.baseURL = strings.TrimRight(base, "/") }
}

// TokenCache 持有一个商店的访问令牌，按需通过 client_credentials 刷新。
// 刷新期间持有互斥锁，等待者拿到锁后重新检查缓存，因此每个周期只换取一次。
type TokenCache struct {
	creds   Credentials
	local   *MemoryTokenStore
	shared  TokenStore
	http    *http.Client
	now     func() time.Time
	baseURL string

	mu sync.Mutex
}

// NewTokenCache 创建令牌缓存
func NewTokenCache(creds Credentials, opts ...TokenOption) *TokenCache {
	c := &TokenCache{
		creds:   creds,
		local:   NewMemoryTokenStore(),
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
		baseURL: "https://" + creds.Domain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TokenCache) key() string {
	return c.creds.Domain
}

// Token 返回可用的访问令牌，必要时换取新令牌
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if c.creds.hasStaticToken() {
		return c.creds.AccessToken, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.load(ctx); ok && cached.usable(c.now()) {
		return cached.AccessToken, nil
	}

	token, err := c.exchange(ctx)
	if err != nil {
		monitoring.RecordTokenExchange("error")
		return "", err
	}
	monitoring.RecordTokenExchange("success")

	c.save(ctx, token)
	return token.AccessToken, nil
}

// State 当前缓存状态
func (c *TokenCache) State(ctx context.Context) TokenState {
	if c.creds.hasStaticToken() {
		return StateValid
	}
	cached, ok := c.load(ctx)
	if !ok || cached.AccessToken == "" {
		return StateNoToken
	}
	if cached.usable(c.now()) {
		return StateValid
	}
	return StateExpiring
}

// load 先读进程内缓存，失效时再读共享存储；共享存储不可用时以进程内结果为准
func (c *TokenCache) load(ctx context.Context) (CachedToken, bool) {
	local, found, _ := c.local.Load(ctx, c.key())
	if (found && local.usable(c.now())) || c.shared == nil {
		return local, found
	}

	cached, ok, err := c.shared.Load(ctx, c.key())
	if err != nil {
		log.Printf("⚠️ [TokenCache] 读取共享令牌失败: %v", err)
		return local, found
	}
	if !ok {
		return local, found
	}
	_ = c.local.Save(ctx, c.key(), cached)
	return cached, true
}

// save 写穿：进程内缓存总是写入，共享存储失败只记录日志
func (c *TokenCache) save(ctx context.Context, token CachedToken) {
	_ = c.local.Save(ctx, c.key(), token)
	if c.shared == nil {
		return
	}
	if err := c.shared.Save(ctx, c.key(), token); err != nil {
		log.Printf("⚠️ [TokenCache] 保存共享令牌失败: %v", err)
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// exchange 调用 /admin/oauth/access_token，失败不重试
func (c *TokenCache) exchange(ctx context.Context) (CachedToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.creds.ClientID)
	form.Set("client_secret", c.creds.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/admin/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return CachedToken{}, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	issuedAt := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return CachedToken{}, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CachedToken{}, fmt.Errorf("%w: read body: %v", ErrTokenExchange, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CachedToken{}, fmt.Errorf("%w: status %d: %s", ErrTokenExchange, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return CachedToken{}, fmt.Errorf("%w: decode: %v", ErrTokenExchange, err)
	}
	if tr.AccessToken == "" {
		return CachedToken{}, fmt.Errorf("%w: empty access_token", ErrTokenExchange)
	}

	log.Printf("✅ [TokenCache] 已换取新令牌, 有效期 %ds", tr.ExpiresIn)
	return CachedToken{
		AccessToken: tr.AccessToken,
		ExpiresAt:   issuedAt.Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
