package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTokenServer(t *testing.T, calls *int32, expiresIn int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, n, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func clientCreds() Credentials {
	return Credentials{Domain: "shop.example", ClientID: "id", ClientSecret: "secret"}
}

func TestTokenCache_ReusesTokenWithinMargin(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 3600)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewTokenCache(clientCreds(), WithBaseURL(srv.URL), WithClock(clock.Now))
	ctx := context.Background()

	assert.Equal(t, StateNoToken, cache.State(ctx))

	tok, err := cache.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, StateValid, cache.State(ctx))

	clock.Advance(time.Second)
	tok, err = cache.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestTokenCache_RefreshesInsideMargin(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 3600)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewTokenCache(clientCreds(), WithBaseURL(srv.URL), WithClock(clock.Now))
	ctx := context.Background()

	_, err := cache.Token(ctx)
	require.NoError(t, err)

	clock.Advance(3600*time.Second - RefreshMargin)
	assert.Equal(t, StateExpiring, cache.State(ctx))

	tok, err := cache.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestTokenCache_ConcurrentCallersShareOneExchange(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 3600)
	cache := NewTokenCache(clientCreds(), WithBaseURL(srv.URL))

	var wg sync.WaitGroup
	tokens := make([]string, 20)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := cache.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, tok := range tokens {
		assert.Equal(t, "tok-1", tok)
	}
}

func TestTokenCache_ExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	cache := NewTokenCache(clientCreds(), WithBaseURL(srv.URL))
	_, err := cache.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenExchange))
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid_client")
	assert.Equal(t, StateNoToken, cache.State(context.Background()))
}

func TestTokenCache_StaticTokenSkipsExchange(t *testing.T) {
	cache := NewTokenCache(Credentials{Domain: "shop.example", AccessToken: "shpat_static"},
		WithBaseURL("http://127.0.0.1:0"))
	tok, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shpat_static", tok)
	assert.Equal(t, StateValid, cache.State(context.Background()))
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (CachedToken, bool, error) {
	return CachedToken{}, false, errors.New("store down")
}

func (failingStore) Save(context.Context, string, CachedToken) error {
	return errors.New("store down")
}

func TestTokenCache_StoreFailureFallsBackToExchange(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 3600)
	clock := &fakeClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	cache := NewTokenCache(clientCreds(), WithBaseURL(srv.URL), WithTokenStore(failingStore{}), WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		tok, err := cache.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok)
		clock.Advance(time.Second)
	}
	// 共享存储不可用时仍复用进程内令牌
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, StateValid, cache.State(context.Background()))
}

func TestTokenCache_ReadsTokenSharedByAnotherInstance(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 3600)
	clock := &fakeClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	shared := NewMemoryTokenStore()

	first := NewTokenCache(clientCreds(), WithBaseURL(srv.URL), WithTokenStore(shared), WithClock(clock.Now))
	second := NewTokenCache(clientCreds(), WithBaseURL(srv.URL), WithTokenStore(shared), WithClock(clock.Now))

	tok, err := first.Token(context.Background())
	require.NoError(t, err)
	tok2, err := second.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, tok, tok2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCredentials_Missing(t *testing.T) {
	m := Credentials{}.Missing()
	assert.True(t, m.Domain)
	assert.True(t, m.ClientID)
	assert.True(t, m.ClientSecret)
	assert.True(t, m.Any())

	m = Credentials{Domain: "d", AccessToken: "t"}.Missing()
	assert.False(t, m.Any())

	m = Credentials{Domain: "d", ClientID: "id"}.Missing()
	assert.False(t, m.ClientID)
	assert.True(t, m.ClientSecret)
}
