package shopify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingQuery 请求体缺少 query 字段
	ErrMissingQuery = errors.New("GraphQL query is required")
	// ErrTokenExchange 令牌换取失败，不做重试
	ErrTokenExchange = errors.New("token exchange failed")
)

// GraphQLError 上游返回了 errors 数组（HTTP 200）
type GraphQLError struct {
	Details json.RawMessage
}

func (e *GraphQLError) Error() string {
	return "Shopify API error: " + string(e.Details)
}

// UpstreamError 上游返回非 2xx
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Shopify upstream returned %d: %s", e.Status, string(e.Body))
}

// Payload 上游响应体，能解析为 JSON 时原样返回
func (e *UpstreamError) Payload() interface{} {
	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return string(e.Body)
}

// ErrorBody 代理对外的错误响应体
type ErrorBody struct {
	Error   string              `json:"error"`
	Details interface{}         `json:"details,omitempty"`
	Message string              `json:"message,omitempty"`
	Missing *MissingCredentials `json:"missing,omitempty"`
}

// ConfigErrorBody 凭证缺失时的固定响应
func ConfigErrorBody(m MissingCredentials) ErrorBody {
	return ErrorBody{Error: "Shopify credentials not configured", Missing: &m}
}

// ErrorResponse 将转发错误映射为 HTTP 状态码与响应体，两种部署共用
func ErrorResponse(err error) (int, ErrorBody) {
	var gqlErr *GraphQLError
	var upErr *UpstreamError

	switch {
	case errors.Is(err, ErrMissingQuery):
		return http.StatusBadRequest, ErrorBody{Error: ErrMissingQuery.Error()}
	case errors.As(err, &gqlErr):
		return http.StatusBadRequest, ErrorBody{Error: "Shopify API error", Details: gqlErr.Details}
	case errors.As(err, &upErr):
		return http.StatusBadGateway, ErrorBody{Error: "Shopify upstream error", Details: upErr.Payload()}
	case errors.Is(err, ErrTokenExchange):
		return http.StatusInternalServerError, ErrorBody{Error: "Shopify authentication failed", Message: err.Error()}
	default:
		return http.StatusBadGateway, ErrorBody{Error: "Shopify upstream unreachable", Message: err.Error()}
	}
}
