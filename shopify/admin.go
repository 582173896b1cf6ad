package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ojena-analytics/pkg/monitoring"
)

// ProxyRequest 浏览器发来的 GraphQL 请求体
type ProxyRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables,omitempty"`
}

// TokenSource 提供访问令牌
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AdminClient 把 GraphQL 请求转发到商店 Admin API
type AdminClient struct {
	creds   Credentials
	tokens  TokenSource
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// AdminOption AdminClient 可选项
type AdminOption func(*AdminClient)

func WithAdminHTTPClient(client *http.Client) AdminOption {
	return func(a *AdminClient) { a.http = client }
}

// WithAdminBaseURL 覆盖 https://{domain}
func WithAdminBaseURL(base string) AdminOption {
	return func(a *AdminClient) { a.baseURL = strings.TrimRight(base, "/") }
}

// WithUpstreamTimeout 单次上游调用的超时
func WithUpstreamTimeout(d time.Duration) AdminOption {
	return func(a *AdminClient) { a.timeout = d }
}

// NewAdminClient 创建转发客户端
func NewAdminClient(creds Credentials, tokens TokenSource, opts ...AdminOption) *AdminClient {
	if creds.APIVersion == "" {
		creds.APIVersion = "2026-01"
	}
	a := &AdminClient{
		creds:   creds,
		tokens:  tokens,
		http:    &http.Client{},
		baseURL: "https://" + creds.Domain,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Endpoint Admin GraphQL 地址
func (a *AdminClient) Endpoint() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", a.baseURL, a.creds.APIVersion)
}

// Store 商店域名
func (a *AdminClient) Store() string { return a.creds.Domain }

// Version API 版本
func (a *AdminClient) Version() string { return a.creds.APIVersion }

type upstreamEnvelope struct {
	Errors json.RawMessage `json:"errors"`
}

// Forward 转发一次 GraphQL 请求，成功时原样返回上游响应体
func (a *AdminClient) Forward(ctx context.Context, req ProxyRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrMissingQuery
	}

	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Shopify-Access-Token", token)

	start := time.Now()
	resp, err := a.http.Do(httpReq)
	if err != nil {
		monitoring.RecordUpstreamRequest("unreachable", time.Since(start))
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.RecordUpstreamRequest("unreachable", time.Since(start))
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		monitoring.RecordUpstreamRequest("http_error", time.Since(start))
		log.Printf("❌ [shopify-proxy] 上游返回 %d", resp.StatusCode)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}

	var env upstreamEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		monitoring.RecordUpstreamRequest("http_error", time.Since(start))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}
	if len(env.Errors) > 0 && string(env.Errors) != "null" {
		monitoring.RecordUpstreamRequest("graphql_error", time.Since(start))
		return nil, &GraphQLError{Details: env.Errors}
	}

	monitoring.RecordUpstreamRequest("success", time.Since(start))
	return json.RawMessage(body), nil
}
