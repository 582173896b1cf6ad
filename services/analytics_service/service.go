package analytics_service

import (
	"context"
	"errors"
	"log"
	"time"

	"ojena-analytics/pkg/graphql"
	"ojena-analytics/pkg/monitoring"
)

// 各视图的默认佣金比例，两个视图独立调整，不合并
const (
	InfluencerCommissionRate = 0.15
	RevenueCommissionRate    = 0.185
)

// 分页策略
const (
	pageSize   = 50
	maxRecords = 250
	maxPages   = (maxRecords + pageSize - 1) / pageSize
)

var errNoData = errors.New("no live data for the requested window")

// Status 数据来源
type Status string

const (
	StatusLive     Status = "live"
	StatusFallback Status = "fallback"
)

// Result 聚合结果，带来源标记；Error 只在回退时出现
type Result[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
}

// Live 是否为实时数据
func (r Result[T]) Live() bool { return r.Status == StatusLive }

func live[T any](data T) Result[T] {
	return Result[T]{Status: StatusLive, Data: data}
}

// fallback 记录失败并返回模拟数据
func fallback[T any](name string, err error, mock T) Result[T] {
	log.Printf("❌ [analytics] %s 失败，使用模拟数据: %v", name, err)
	monitoring.RecordFallback(name)
	return Result[T]{Status: StatusFallback, Data: mock, Error: err.Error()}
}

// AnalyticsService 把商店原始数据聚合为看板所需结构，所有方法都不返回错误
type AnalyticsService struct {
	client graphql.Querier
	now    func() time.Time
	loc    *time.Location
}

// Option AnalyticsService 可选项
type Option func(*AnalyticsService)

// WithClock 注入时钟
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) { s.now = now }
}

// WithLocation 按月分组使用的时区
func WithLocation(loc *time.Location) Option {
	return func(s *AnalyticsService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewAnalyticsService(client graphql.Querier, opts ...Option) *AnalyticsService {
	s := &AnalyticsService{
		client: client,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AnalyticsService) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *AnalyticsService) query(ctx context.Context, q string, vars map[string]interface{}, out interface{}) error {
	return graphql.DecodeData(ctx, s.client, q, vars, out)
}

// periodOrder 时间窗口内的订单摘要
type periodOrder struct {
	ID       string
	Date     time.Time
	Total    float64
	Status   string
	Customer string
}

// ordersForPeriod 取 [now-(days+offset), now-offset] 内最多 250 笔订单
func (s *AnalyticsService) ordersForPeriod(ctx context.Context, days, offsetDays int) ([]periodOrder, error) {
	now := s.now()
	from := now.Add(-time.Duration(days+offsetDays) * 24 * time.Hour)
	to := now.Add(-time.Duration(offsetDays) * 24 * time.Hour)

	var resp ordersData[periodNode]
	err := s.query(ctx, ordersPeriodQuery, map[string]interface{}{
		"first":    maxRecords,
		"queryStr": "created_at:>='" + isoString(from) + "' created_at:<='" + isoString(to) + "'",
	}, &resp)
	if err != nil {
		return nil, err
	}

	out := make([]periodOrder, 0, len(resp.Orders.Edges))
	for _, e := range resp.Orders.Edges {
		n := e.Node
		customer := n.ID
		if n.Customer != nil && n.Customer.Email != "" {
			customer = n.Customer.Email
		}
		out = append(out, periodOrder{
			ID:       n.ID,
			Date:     n.CreatedAt,
			Total:    n.TotalPriceSet.ShopMoney.float(),
			Status:   n.DisplayFinancialStatus,
			Customer: customer,
		})
	}
	return out, nil
}

// currentAndPrevious 并发取当前30天与之前30天
func (s *AnalyticsService) currentAndPrevious(ctx context.Context) (current, previous []periodOrder, err error) {
	type res struct {
		orders []periodOrder
		err    error
	}
	prevCh := make(chan res, 1)
	go func() {
		o, err := s.ordersForPeriod(ctx, 30, 30)
		prevCh <- res{o, err}
	}()

	current, err = s.ordersForPeriod(ctx, 30, 0)
	prev := <-prevCh
	if err != nil {
		return nil, nil, err
	}
	if prev.err != nil {
		return nil, nil, prev.err
	}
	return current, prev.orders, nil
}

// paginateOrders 每页50条，直到没有下一页或累计250条，最多5页
func paginateOrders[N any](ctx context.Context, s *AnalyticsService, q string) ([]N, error) {
	var all []N
	cursor := ""
	for page := 0; page < maxPages; page++ {
		vars := map[string]interface{}{"first": pageSize}
		if cursor != "" {
			vars["after"] = cursor
		}

		var resp ordersData[N]
		if err := s.query(ctx, q, vars, &resp); err != nil {
			return nil, err
		}
		for _, e := range resp.Orders.Edges {
			all = append(all, e.Node)
		}

		if !resp.Orders.PageInfo.HasNextPage || len(all) >= maxRecords {
			break
		}
		cursor = resp.Orders.PageInfo.EndCursor
	}
	return all, nil
}

func sumTotals(orders []periodOrder) float64 {
	var total float64
	for _, o := range orders {
		total += o.Total
	}
	return total
}
