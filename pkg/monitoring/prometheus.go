package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标定义
var (
	// HTTP 请求相关指标
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// 上游 GraphQL 相关指标
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopify_upstream_requests_total",
			Help: "转发到Shopify的GraphQL请求总数",
		},
		[]string{"outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopify_upstream_request_duration_seconds",
			Help:    "Shopify GraphQL请求耗时分布",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	tokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopify_token_exchanges_total",
			Help: "client_credentials 令牌换取次数",
		},
		[]string{"outcome"},
	)

	// 业务相关指标
	aggregationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_fallbacks_total",
			Help: "聚合函数回退到模拟数据的次数",
		},
		[]string{"function"},
	)
)

// PrometheusMiddleware Gin中间件，用于收集HTTP指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 处理请求
		c.Next()

		// 记录指标
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)

		// MongoDB 存储（异步）
		SaveHTTPMetric(c, duration)
	}
}

// RecordUpstreamRequest 记录一次上游调用
func RecordUpstreamRequest(outcome string, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(outcome).Inc()
	upstreamRequestDuration.Observe(duration.Seconds())
}

func RecordTokenExchange(outcome string) {
	tokenExchangesTotal.WithLabelValues(outcome).Inc()
}

func RecordFallback(function string) {
	aggregationFallbacks.WithLabelValues(function).Inc()
}
