package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"ojena-analytics/pkg/config"
	"ojena-analytics/shopify"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

var errUnauthorized = errors.New("invalid or missing bearer token")

// Forwarder 转发 GraphQL 请求
type Forwarder interface {
	Forward(ctx context.Context, req shopify.ProxyRequest) (json.RawMessage, error)
}

// Handler 函数部署的凭证代理，令牌缓存随实例存活
type Handler struct {
	creds     shopify.Credentials
	forwarder Forwarder
	origins   []string
	jwtSecret []byte
}

func NewHandler(creds shopify.Credentials, forwarder Forwarder, origins []string, jwtSecret string) *Handler {
	h := &Handler{
		creds:     creds,
		forwarder: forwarder,
		origins:   config.GetCorsConfig(origins).AllowedOrigins,
	}
	if jwtSecret != "" {
		h.jwtSecret = []byte(jwtSecret)
	}
	return h
}

type internalError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// header 网关 v2 会把请求头转成小写，这里按不区分大小写查找
func header(req events.APIGatewayV2HTTPRequest, name string) string {
	if v, ok := req.Headers[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func (h *Handler) corsHeaders(origin string) map[string]string {
	headers := map[string]string{
		"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Vary":                         "Origin",
	}
	if config.IsAllowedOrigin(origin, h.origins) {
		headers["Access-Control-Allow-Origin"] = origin
	}
	return headers
}

func (h *Handler) jsonResponse(cors map[string]string, status int, v interface{}) events.APIGatewayV2HTTPResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Internal server error"}`)
	}
	return rawResponse(cors, status, body)
}

func rawResponse(cors map[string]string, status int, body []byte) events.APIGatewayV2HTTPResponse {
	headers := make(map[string]string, len(cors)+1)
	for k, v := range cors {
		headers[k] = v
	}
	headers["Content-Type"] = "application/json"
	return events.APIGatewayV2HTTPResponse{StatusCode: status, Headers: headers, Body: string(body)}
}

// authorize PROXY_JWT_SECRET 配置后要求 HS256 签名的 Bearer 令牌
func (h *Handler) authorize(req events.APIGatewayV2HTTPRequest) error {
	if h.jwtSecret == nil {
		return nil
	}
	raw := strings.TrimSpace(header(req, "Authorization"))
	if !strings.HasPrefix(raw, "Bearer ") {
		return errUnauthorized
	}
	_, err := jwt.Parse(strings.TrimPrefix(raw, "Bearer "), func(*jwt.Token) (interface{}, error) {
		return h.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", errUnauthorized, err)
	}
	return nil
}

func decodeBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	return base64.StdEncoding.DecodeString(req.Body)
}

// Handle 网关入口
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (resp events.APIGatewayV2HTTPResponse, err error) {
	cors := h.corsHeaders(header(req, "Origin"))

	switch req.RequestContext.HTTP.Method {
	case http.MethodOptions:
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Headers: cors, Body: "ok"}, nil
	case http.MethodPost:
	default:
		return h.jsonResponse(cors, http.StatusMethodNotAllowed, shopify.ErrorBody{Error: "Method not allowed"}), nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ [shopify-proxy] panic: %v", r)
			resp = h.jsonResponse(cors, http.StatusInternalServerError, internalError{
				Error:   "Internal server error",
				Message: fmt.Sprint(r),
			})
			err = nil
		}
	}()

	if missing := h.creds.Missing(); missing.Any() {
		log.Printf("❌ [shopify-proxy] 凭证缺失: %s", missing)
		return h.jsonResponse(cors, http.StatusInternalServerError, shopify.ConfigErrorBody(missing)), nil
	}

	if err := h.authorize(req); err != nil {
		log.Printf("⚠️ [shopify-proxy] 鉴权失败: %v", err)
		return h.jsonResponse(cors, http.StatusUnauthorized, shopify.ErrorBody{Error: "Unauthorized"}), nil
	}

	body, err := decodeBody(req)
	if err != nil {
		return h.jsonResponse(cors, http.StatusInternalServerError, internalError{Error: "Internal server error", Message: err.Error()}), nil
	}

	var pr shopify.ProxyRequest
	if err := json.Unmarshal(body, &pr); err != nil {
		return h.jsonResponse(cors, http.StatusInternalServerError, internalError{Error: "Internal server error", Message: err.Error()}), nil
	}

	out, err := h.forwarder.Forward(ctx, pr)
	if err != nil {
		status, errBody := shopify.ErrorResponse(err)
		log.Printf("❌ [shopify-proxy] %s 转发失败 (%d): %v", shopify.OperationName(pr.Query), status, err)
		return h.jsonResponse(cors, status, errBody), nil
	}

	return rawResponse(cors, http.StatusOK, out), nil
}
