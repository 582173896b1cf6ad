package proxy

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ojena-analytics/middleware"
	"ojena-analytics/pkg/monitoring"
	"ojena-analytics/shopify"

	"github.com/gin-gonic/gin"
)

// Forwarder 转发 GraphQL 请求
type Forwarder interface {
	Forward(ctx context.Context, req shopify.ProxyRequest) (json.RawMessage, error)
}

// ProxyController 浏览器与商店 Admin API 之间的凭证代理
type ProxyController struct {
	forwarder Forwarder
	creds     shopify.Credentials
}

func NewProxyController(forwarder Forwarder, creds shopify.Credentials) *ProxyController {
	return &ProxyController{forwarder: forwarder, creds: creds}
}

// Forward POST /api/shopify 与 /api/shopify-proxy
func (p *ProxyController) Forward(c *gin.Context) {
	if missing := p.creds.Missing(); missing.Any() {
		c.JSON(http.StatusInternalServerError, shopify.ConfigErrorBody(missing))
		return
	}

	var req shopify.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, shopify.ErrorBody{
			Error:   shopify.ErrMissingQuery.Error(),
			Message: middleware.FormatBindError(err),
		})
		return
	}

	start := time.Now()
	operation := shopify.OperationName(req.Query)
	body, err := p.forwarder.Forward(c.Request.Context(), req)

	call := monitoring.ProxyCall{
		RequestID: c.GetString(middleware.RequestIDKey),
		Store:     p.creds.Domain,
		Operation: operation,
		Duration:  time.Since(start).Seconds(),
	}

	if err != nil {
		status, errBody := shopify.ErrorResponse(err)
		log.Printf("❌ [shopify-proxy] %s 转发失败 (%d): %v", operation, status, err)
		call.StatusCode = status
		call.Error = err.Error()
		monitoring.SaveProxyCall(call)
		c.JSON(status, errBody)
		return
	}

	call.StatusCode = http.StatusOK
	monitoring.SaveProxyCall(call)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
