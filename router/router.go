package router

import (
	"ojena-analytics/controllers/dashboard"
	"ojena-analytics/controllers/health"
	"ojena-analytics/controllers/proxy"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	Proxy     *proxy.ProxyController
	Health    *health.HealthController
	Dashboard *dashboard.DashboardController
	Live      *dashboard.LiveController
}

func Init(r *gin.Engine, ctl Controllers) {
	// 监控指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", ctl.Health.CheckHealth)

	apiGroup := r.Group("/api")
	{
		// 凭证代理，两个路径行为一致
		apiGroup.POST("/shopify", ctl.Proxy.Forward)
		apiGroup.POST("/shopify-proxy", ctl.Proxy.Forward)
		apiGroup.GET("/health", ctl.Health.APIHealth)

		apiGroup.GET("/views/:view", ctl.Dashboard.View)
	}

	d := ctl.Dashboard
	dashboardGroup := r.Group("/api/dashboard")
	{
		dashboardGroup.GET("/executive-kpis", d.ExecutiveKPIs)
		dashboardGroup.GET("/brands-revenue", d.BrandsRevenue)
		dashboardGroup.GET("/monthly-comparison", d.MonthlyComparison)
		dashboardGroup.GET("/alerts", d.Alerts)

		dashboardGroup.GET("/influencer-metrics", d.InfluencerMetrics)
		dashboardGroup.GET("/performance-chart", d.PerformanceChart)
		dashboardGroup.GET("/top-products", d.TopProducts)
		dashboardGroup.GET("/payout-schedule", d.PayoutSchedule)
		dashboardGroup.GET("/engagement-metrics", d.EngagementMetrics)
		dashboardGroup.GET("/monthly-goals", d.MonthlyGoals)

		dashboardGroup.GET("/revenue-metrics", d.RevenueMetrics)
		dashboardGroup.GET("/commission-timeline", d.CommissionTimeline)
		dashboardGroup.GET("/commission-transactions", d.CommissionTransactions)
		dashboardGroup.GET("/payment-queue", d.PaymentQueue)

		dashboardGroup.GET("/products", d.Products)
		dashboardGroup.GET("/product-kpis", d.ProductKPIs)
		dashboardGroup.GET("/category-data", d.CategoryData)

		dashboardGroup.GET("/orders", d.Orders)
		dashboardGroup.GET("/order-metrics", d.OrderMetrics)
	}

	if ctl.Live != nil {
		r.GET("/ws/views/:view", ctl.Live.Stream)
	}
}
