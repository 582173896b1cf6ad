// Package graphql 调用凭证代理的 GraphQL 客户端，聚合层只通过它访问商店数据。
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured 未配置代理地址或密钥
var ErrNotConfigured = errors.New("graphql: proxy endpoint not configured")

// Querier 聚合层依赖的最小接口
type Querier interface {
	Send(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
}

// ResponseError 代理返回非 2xx 或顶层 error 字段
type ResponseError struct {
	Status  int
	Message string
	Body    json.RawMessage
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("graphql: proxy responded %d: %s", e.Status, e.Message)
}

// Client 代理客户端，单次调用一次 POST，不重试不缓存
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient endpoint 或 apiKey 为空时 Send 直接返回 ErrNotConfigured
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		http:     &http.Client{Timeout: timeout},
	}
}

// Configured 是否可以发起请求
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != "" && c.apiKey != ""
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

// Send 发送查询，返回 data 字段；响应没有 data 时返回整个响应体
func (c *Client) Send(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if variables == nil {
		variables = map[string]interface{}{}
	}

	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("graphql: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("graphql: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("graphql: read body: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok || decodeErr != nil || isPresent(env.Error) {
		return nil, &ResponseError{
			Status:  resp.StatusCode,
			Message: errorMessage(env.Error, decodeErr),
			Body:    rawBody(body),
		}
	}

	if isPresent(env.Data) {
		return env.Data, nil
	}
	return json.RawMessage(body), nil
}

// DecodeData 发送查询并把 data 解码到 out
func DecodeData(ctx context.Context, q Querier, query string, variables map[string]interface{}, out interface{}) error {
	data, err := q.Send(ctx, query, variables)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}
	return nil
}

func isPresent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null" && s != "false" && s != `""`
}

func errorMessage(raw json.RawMessage, decodeErr error) string {
	if decodeErr != nil {
		return "invalid response body"
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
		return msg
	}
	if isPresent(raw) {
		return string(raw)
	}
	return "proxy error"
}

func rawBody(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
