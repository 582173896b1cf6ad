package dashboard

import (
	"log"

	"ojena-analytics/inout"
	"ojena-analytics/middleware"
	"ojena-analytics/pkg/response"
	as "ojena-analytics/services/analytics_service"

	"github.com/gin-gonic/gin"
)

// DashboardController 每个聚合函数一个 GET 接口，data 中保留来源标记
type DashboardController struct {
	svc *as.AnalyticsService
}

func NewDashboardController(svc *as.AnalyticsService) *DashboardController {
	return &DashboardController{svc: svc}
}

// respond 回退数据使用 DEGRADED 码，HTTP 仍为 200
func respond[T any](c *gin.Context, r as.Result[T]) {
	if r.Live() {
		response.Success(c, r)
		return
	}
	response.Degraded(c, r, r.Error)
}

func bindRate(c *gin.Context) (float64, bool) {
	var req inout.RateReq
	if !middleware.BindQuery(c, &req) {
		return 0, false
	}
	return req.Rate, true
}

// 执行概览

func (d *DashboardController) ExecutiveKPIs(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.ExecutiveKPIs(c.Request.Context(), rate))
}

func (d *DashboardController) BrandsRevenue(c *gin.Context) {
	respond(c, d.svc.BrandsRevenue(c.Request.Context()))
}

func (d *DashboardController) MonthlyComparison(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.MonthlyComparison(c.Request.Context(), rate))
}

func (d *DashboardController) Alerts(c *gin.Context) {
	respond(c, d.svc.Alerts(c.Request.Context()))
}

// 达人业绩

func (d *DashboardController) InfluencerMetrics(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.InfluencerMetrics(c.Request.Context(), rate))
}

func (d *DashboardController) PerformanceChart(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.PerformanceChart(c.Request.Context(), rate))
}

func (d *DashboardController) TopProducts(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.TopProducts(c.Request.Context(), rate))
}

func (d *DashboardController) PayoutSchedule(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.PayoutSchedule(c.Request.Context(), rate))
}

func (d *DashboardController) EngagementMetrics(c *gin.Context) {
	respond(c, d.svc.EngagementMetrics(c.Request.Context()))
}

// MonthlyGoals 目标可通过 revenue/sales/customers 覆盖
func (d *DashboardController) MonthlyGoals(c *gin.Context) {
	var goals inout.GoalTargets
	if !middleware.BindQuery(c, &goals) {
		return
	}
	respond(c, d.svc.MonthlyGoals(c.Request.Context(), goals))
}

// 佣金中心

func (d *DashboardController) RevenueMetrics(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.RevenueMetrics(c.Request.Context(), rate))
}

func (d *DashboardController) CommissionTimeline(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.CommissionTimeline(c.Request.Context(), rate))
}

func (d *DashboardController) CommissionTransactions(c *gin.Context) {
	var filter inout.TransactionFilter
	if !middleware.BindQuery(c, &filter) {
		return
	}
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.CommissionTransactions(c.Request.Context(), filter, rate))
}

func (d *DashboardController) PaymentQueue(c *gin.Context) {
	rate, ok := bindRate(c)
	if !ok {
		return
	}
	respond(c, d.svc.PaymentQueue(c.Request.Context(), rate))
}

// 商品分析

func (d *DashboardController) Products(c *gin.Context) {
	respond(c, d.svc.Products(c.Request.Context()))
}

func (d *DashboardController) ProductKPIs(c *gin.Context) {
	respond(c, d.svc.ProductKPIs(c.Request.Context()))
}

func (d *DashboardController) CategoryData(c *gin.Context) {
	respond(c, d.svc.CategoryData(c.Request.Context()))
}

// 订单

func (d *DashboardController) Orders(c *gin.Context) {
	var req inout.OrdersReq
	if !middleware.BindQuery(c, &req) {
		return
	}
	respond(c, d.svc.Orders(c.Request.Context(), req.Limit))
}

func (d *DashboardController) OrderMetrics(c *gin.Context) {
	respond(c, d.svc.OrderMetrics(c.Request.Context()))
}

// View GET /api/views/:view 整页快照
func (d *DashboardController) View(c *gin.Context) {
	name := c.Param("view")
	view, err := d.svc.View(c.Request.Context(), name)
	if err != nil {
		log.Printf("⚠️ [analytics] 未知视图: %s", name)
		response.Error(c, response.NOT_FOUND, err.Error()+": "+name)
		return
	}
	response.Success(c, view)
}
