package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ojena-analytics/controllers/dashboard"
	"ojena-analytics/controllers/health"
	"ojena-analytics/controllers/proxy"
	"ojena-analytics/pkg/graphql"
	as "ojena-analytics/services/analytics_service"
	"ojena-analytics/shopify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := as.NewAnalyticsService(graphql.NewClient("", "", time.Second))
	creds := shopify.Credentials{}
	r := gin.New()
	Init(r, Controllers{
		Proxy:     proxy.NewProxyController(nil, creds),
		Health:    health.NewHealthController("ojena-analytics", "test", "", "2026-01", nil),
		Dashboard: dashboard.NewDashboardController(svc),
	})
	return r
}

func TestRoutesRegistered(t *testing.T) {
	r := newEngine()
	paths := []string{
		"/health",
		"/metrics",
		"/api/health",
		"/api/views/executive",
		"/api/dashboard/executive-kpis",
		"/api/dashboard/brands-revenue",
		"/api/dashboard/monthly-comparison",
		"/api/dashboard/alerts",
		"/api/dashboard/influencer-metrics",
		"/api/dashboard/performance-chart",
		"/api/dashboard/top-products",
		"/api/dashboard/payout-schedule",
		"/api/dashboard/engagement-metrics",
		"/api/dashboard/monthly-goals",
		"/api/dashboard/revenue-metrics",
		"/api/dashboard/commission-timeline",
		"/api/dashboard/commission-transactions",
		"/api/dashboard/payment-queue",
		"/api/dashboard/products",
		"/api/dashboard/product-kpis",
		"/api/dashboard/category-data",
		"/api/dashboard/orders",
		"/api/dashboard/order-metrics",
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusOK, w.Code, p)
	}
}

func TestProxyAliasesShareHandler(t *testing.T) {
	r := newEngine()
	for _, p := range []string{"/api/shopify", "/api/shopify-proxy"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, p, strings.NewReader(`{"query":"{ shop { name } }"}`)))
		// 未配置凭证
		assert.Equal(t, http.StatusInternalServerError, w.Code, p)
		assert.Contains(t, w.Body.String(), "Shopify credentials not configured")
	}
}
