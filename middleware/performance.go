package middleware

import (
	"log"
	"sync"
	"time"

	"ojena-analytics/pkg/response"

	"github.com/gin-gonic/gin"
)

// PerformanceConfig 性能监控配置
type PerformanceConfig struct {
	SlowThreshold time.Duration // 慢请求阈值
	EnableLogging bool
	SkipPaths     []string // 跳过监控的路径
}

// DefaultPerformanceConfig 默认性能配置；聚合视图会串行翻页，阈值放宽
func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		SlowThreshold: 2 * time.Second,
		EnableLogging: true,
		SkipPaths:     []string{"/health", "/metrics", "/favicon.ico"},
	}
}

// Performance 性能监控中间件
func Performance(config ...PerformanceConfig) gin.HandlerFunc {
	cfg := DefaultPerformanceConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 记录慢请求日志
		if cfg.EnableLogging && latency > cfg.SlowThreshold {
			log.Printf("[SLOW REQUEST] %s %s - Status: %d, Latency: %v, request_id=%s",
				method, path, status, latency, c.GetString(RequestIDKey))
		}

		// 在响应头中添加性能信息（开发环境）
		if gin.Mode() == gin.DebugMode {
			c.Header("X-Response-Time", latency.String())
		}
	}
}

// RateLimit 线程安全的内存限流中间件，按IP每分钟 rpm 次；rpm<=0 时不限流
func RateLimit(rpm int) gin.HandlerFunc {
	var requests sync.Map
	var mu sync.Mutex

	return func(c *gin.Context) {
		if rpm <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-time.Minute)

		mu.Lock()
		var timestamps []time.Time
		if value, exists := requests.Load(ip); exists {
			timestamps = value.([]time.Time)
		}

		// 清理过期的请求记录
		valid := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				valid = append(valid, ts)
			}
		}

		if len(valid) >= rpm {
			requests.Store(ip, valid)
			mu.Unlock()
			c.Header("Retry-After", "60")
			response.Abort(c, response.TOO_MANY_REQUESTS, "Rate limit exceeded")
			return
		}

		requests.Store(ip, append(valid, now))
		mu.Unlock()

		c.Next()
	}
}
