package analytics_service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"ojena-analytics/inout"
)

// ErrUnknownView 视图名不存在
var ErrUnknownView = errors.New("unknown view")

// 视图名
const (
	ViewExecutive  = "executive"
	ViewInfluencer = "influencer"
	ViewRevenue    = "revenue"
	ViewProducts   = "products"
)

// ViewNames 支持的视图
var ViewNames = []string{ViewExecutive, ViewInfluencer, ViewRevenue, ViewProducts}

type ExecutiveView struct {
	KPIs              Result[[]inout.MetricCard]      `json:"kpis"`
	Brands            Result[inout.BrandsRevenue]     `json:"brands"`
	MonthlyComparison Result[[]inout.BrandMonthPoint] `json:"monthlyComparison"`
	Alerts            Result[[]inout.Alert]           `json:"alerts"`
}

type InfluencerView struct {
	Metrics     Result[[]inout.InfluencerMetric] `json:"metrics"`
	Chart       Result[[]inout.ChartPoint]       `json:"chart"`
	TopProducts Result[[]inout.TopProduct]       `json:"topProducts"`
	Payouts     Result[[]inout.Payout]           `json:"payouts"`
	Engagement  Result[[]inout.EngagementMetric] `json:"engagement"`
	Goals       Result[inout.MonthlyGoals]       `json:"goals"`
}

type RevenueView struct {
	Metrics      Result[[]inout.FinancialMetric]   `json:"metrics"`
	Timeline     Result[[]inout.TimelinePoint]     `json:"timeline"`
	Transactions Result[[]inout.Transaction]       `json:"transactions"`
	PaymentQueue Result[[]inout.PaymentQueueEntry] `json:"paymentQueue"`
}

type ProductsView struct {
	Products   Result[[]inout.Product]       `json:"products"`
	KPIs       Result[inout.ProductKPIs]     `json:"kpis"`
	Categories Result[[]inout.CategorySlice] `json:"categories"`
}

// fanOut 同时发起全部调用并等待，单个调用失败已在内部回退
func fanOut(ctx context.Context, calls ...func(context.Context)) {
	g, gctx := errgroup.WithContext(ctx)
	for _, call := range calls {
		call := call
		g.Go(func() error {
			call(gctx)
			return nil
		})
	}
	_ = g.Wait()
}

// Executive 执行概览页
func (s *AnalyticsService) Executive(ctx context.Context) ExecutiveView {
	var v ExecutiveView
	fanOut(ctx,
		func(ctx context.Context) { v.KPIs = s.ExecutiveKPIs(ctx, 0) },
		func(ctx context.Context) { v.Brands = s.BrandsRevenue(ctx) },
		func(ctx context.Context) { v.MonthlyComparison = s.MonthlyComparison(ctx, 0) },
		func(ctx context.Context) { v.Alerts = s.Alerts(ctx) },
	)
	return v
}

// Influencer 达人业绩页
func (s *AnalyticsService) Influencer(ctx context.Context) InfluencerView {
	var v InfluencerView
	fanOut(ctx,
		func(ctx context.Context) { v.Metrics = s.InfluencerMetrics(ctx, 0) },
		func(ctx context.Context) { v.Chart = s.PerformanceChart(ctx, 0) },
		func(ctx context.Context) { v.TopProducts = s.TopProducts(ctx, 0) },
		func(ctx context.Context) { v.Payouts = s.PayoutSchedule(ctx, 0) },
		func(ctx context.Context) { v.Engagement = s.EngagementMetrics(ctx) },
		func(ctx context.Context) { v.Goals = s.MonthlyGoals(ctx, inout.GoalTargets{}) },
	)
	return v
}

// Revenue 佣金中心页
func (s *AnalyticsService) Revenue(ctx context.Context) RevenueView {
	var v RevenueView
	fanOut(ctx,
		func(ctx context.Context) { v.Metrics = s.RevenueMetrics(ctx, 0) },
		func(ctx context.Context) { v.Timeline = s.CommissionTimeline(ctx, 0) },
		func(ctx context.Context) {
			v.Transactions = s.CommissionTransactions(ctx, inout.TransactionFilter{}, 0)
		},
		func(ctx context.Context) { v.PaymentQueue = s.PaymentQueue(ctx, 0) },
	)
	return v
}

// ProductsHub 商品分析页
func (s *AnalyticsService) ProductsHub(ctx context.Context) ProductsView {
	var v ProductsView
	fanOut(ctx,
		func(ctx context.Context) { v.Products = s.Products(ctx) },
		func(ctx context.Context) { v.KPIs = s.ProductKPIs(ctx) },
		func(ctx context.Context) { v.Categories = s.CategoryData(ctx) },
	)
	return v
}

// View 按名称取页面快照
func (s *AnalyticsService) View(ctx context.Context, name string) (interface{}, error) {
	switch name {
	case ViewExecutive:
		return s.Executive(ctx), nil
	case ViewInfluencer:
		return s.Influencer(ctx), nil
	case ViewRevenue:
		return s.Revenue(ctx), nil
	case ViewProducts:
		return s.ProductsHub(ctx), nil
	default:
		return nil, ErrUnknownView
	}
}
