package health

import (
	"context"
	"net/http"
	"time"

	"ojena-analytics/mongodb"
	"ojena-analytics/redis"
	"ojena-analytics/shopify"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// TokenStater 令牌缓存状态
type TokenStater interface {
	State(ctx context.Context) shopify.TokenState
}

// HealthController 健康检查控制器
type HealthController struct {
	service string
	mode    string
	store   string
	version string
	tokens  TokenStater
}

// NewHealthController 创建健康检查控制器
func NewHealthController(service, mode, store, version string, tokens TokenStater) *HealthController {
	return &HealthController{service: service, mode: mode, store: store, version: version, tokens: tokens}
}

// APIHealth GET /api/health，代理契约的一部分，字段保持固定
func (h *HealthController) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"store":   h.store,
		"version": h.version,
	})
}

// CheckHealth GET /health 存活性检查
func (h *HealthController) CheckHealth(c *gin.Context) {
	data := gin.H{
		"service":   h.service,
		"mode":      h.mode,
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"redis":     redis.IsConnected(),
		"mongodb":   mongodb.IsEnabled(),
	}
	if h.tokens != nil {
		data["token"] = h.tokens.State(c.Request.Context())
	}
	c.JSON(http.StatusOK, data)
}
