package analytics_service

import (
	"context"
	"time"

	"ojena-analytics/inout"
)

const defaultOrdersLimit = 50

// Orders 最近的订单，limit 为 0 时取50笔
func (s *AnalyticsService) Orders(ctx context.Context, limit int) Result[[]inout.Order] {
	if limit <= 0 {
		limit = defaultOrdersLimit
	}
	orders, err := s.fetchOrders(ctx, limit)
	if err != nil {
		return fallback("Orders", err, MockOrders(s.clock()))
	}
	return live(orders)
}

func (s *AnalyticsService) fetchOrders(ctx context.Context, limit int) ([]inout.Order, error) {
	var resp ordersData[orderNode]
	if err := s.query(ctx, ordersQuery, map[string]interface{}{"first": limit}, &resp); err != nil {
		return nil, err
	}
	return transformOrders(resp.Orders.Edges), nil
}

func transformOrders(edges []edge[orderNode]) []inout.Order {
	out := make([]inout.Order, 0, len(edges))
	for _, e := range edges {
		o := e.Node
		currency := o.TotalPriceSet.ShopMoney.CurrencyCode
		if currency == "" {
			currency = "EUR"
		}
		out = append(out, inout.Order{
			ID:          o.ID,
			OrderNumber: o.Name,
			Date:        o.CreatedAt,
			Total:       o.total(),
			Currency:    currency,
			Status:      o.DisplayFinancialStatus,
			Fulfillment: o.DisplayFulfillmentStatus,
		})
	}
	return out
}

// OrderMetrics 基于最近50笔订单的30天指标
func (s *AnalyticsService) OrderMetrics(ctx context.Context) Result[inout.OrderMetrics] {
	now := s.clock()
	orders, err := s.fetchOrders(ctx, defaultOrdersLimit)
	if err != nil {
		return fallback("OrderMetrics", err, CalculateOrderMetrics(MockOrders(now), now))
	}
	return live(CalculateOrderMetrics(orders, now))
}

// CalculateOrderMetrics 当前30天对比前30天，佣金按 15% 计
func CalculateOrderMetrics(orders []inout.Order, now time.Time) inout.OrderMetrics {
	currentFrom := now.Add(-30 * day)
	previousFrom := now.Add(-60 * day)

	var m inout.OrderMetrics
	var previous float64
	for _, o := range orders {
		switch {
		case !o.Date.Before(currentFrom):
			m.TotalRevenue += o.Total
			m.TotalOrders++
			if o.Status != "PAID" {
				m.ActiveOrders++
			}
		case !o.Date.Before(previousFrom):
			previous += o.Total
		}
	}

	if m.TotalOrders > 0 {
		m.AverageOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	}
	m.RevenueGrowth = growth(m.TotalRevenue, previous)
	m.CommissionsPaid = m.TotalRevenue * InfluencerCommissionRate
	return m
}
