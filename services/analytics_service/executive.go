package analytics_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ojena-analytics/inout"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// ExecutiveKPIs 执行概览的4张卡片及7周走势
func (s *AnalyticsService) ExecutiveKPIs(ctx context.Context, rate float64) Result[[]inout.MetricCard] {
	rate = rateOr(rate, RevenueCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, executiveKPIsQuery, map[string]interface{}{"first": maxRecords}, &resp); err != nil {
		return fallback("ExecutiveKPIs", err, MockExecutiveKPIs())
	}
	orders := make([]orderNode, 0, len(resp.Orders.Edges))
	for _, e := range resp.Orders.Edges {
		orders = append(orders, e.Node)
	}
	return live(buildExecutiveKPIs(orders, s.now(), rate))
}

func buildExecutiveKPIs(orders []orderNode, now time.Time, rate float64) []inout.MetricCard {
	cutCurrent := now.Add(-30 * day)
	cutPrevious := now.Add(-60 * day)

	var revCurrent, revPrevious float64
	var ordCurrent, ordPrevious int
	for _, o := range orders {
		switch {
		case !o.CreatedAt.Before(cutCurrent):
			revCurrent += o.total()
			ordCurrent++
		case !o.CreatedAt.Before(cutPrevious):
			revPrevious += o.total()
			ordPrevious++
		}
	}

	revenueGrowth := growth(revCurrent, revPrevious)
	ordersGrowth := growth(float64(ordCurrent), float64(ordPrevious))

	// 7周走势，最后一周截止于 now
	weekRev := make([]float64, 7)
	sparkOrd := make([]int, 7)
	for _, o := range orders {
		for i := 0; i < 7; i++ {
			start := now.Add(-time.Duration(7-i) * week)
			end := now.Add(-time.Duration(6-i) * week)
			if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
				weekRev[i] += o.total()
				sparkOrd[i]++
				break
			}
		}
	}

	sparkRev := make([]int, 7)
	sparkComm := make([]int, 7)
	for i, v := range weekRev {
		sparkRev[i] = round(v)
		sparkComm[i] = round(v * rate)
	}

	sparkBrands := make([]int, 7)
	for i := 1; i < 7; i++ {
		prev := sparkRev[i-1]
		if prev == 0 {
			prev = 1
		}
		sparkBrands[i] = round(float64(sparkRev[i]-sparkRev[i-1]) / float64(prev) * 100)
	}

	return []inout.MetricCard{
		{
			Title:         "Revenus totaux",
			Value:         strPtr(groupInt(round(revCurrent)) + " €"),
			Change:        signedPct(revenueGrowth),
			ChangeType:    changeType(revenueGrowth),
			SparklineData: sparkRev,
			Icon:          "TrendingUp",
			IconColor:     "var(--color-success)",
		},
		{
			Title:         "Commissions versées",
			Value:         strPtr(groupInt(round(revCurrent*rate)) + " €"),
			Change:        signedPct(revenueGrowth),
			ChangeType:    changeType(revenueGrowth),
			SparklineData: sparkComm,
			Icon:          "DollarSign",
			IconColor:     "var(--color-accent)",
		},
		{
			Title:         "Commandes actives",
			Value:         strPtr(groupInt(ordCurrent)),
			Change:        signedPct(ordersGrowth),
			ChangeType:    changeType(ordersGrowth),
			SparklineData: sparkOrd,
			Icon:          "ShoppingCart",
			IconColor:     "var(--color-primary)",
		},
		{
			Title:         "Croissance marques",
			Value:         nil,
			Change:        signedPct(revenueGrowth),
			ChangeType:    changeType(revenueGrowth),
			SparklineData: sparkBrands,
			Icon:          "Sparkles",
			IconColor:     "var(--color-warning)",
		},
	}
}

// 告警阈值
const (
	stockWarningBelow  = 15
	stockCriticalBelow = 5
	overdueAfter       = 48 * time.Hour
	overdueCriticalMin = 10 // 超过该数量为 critical
	maxAlerts          = 5
)

var severityRank = map[string]int{"critical": 0, "warning": 1, "info": 2}

type lowStockNode struct {
	Title    string `json:"title"`
	Variants connection[struct {
		InventoryQuantity *int `json:"inventoryQuantity"`
	}] `json:"variants"`
}

// Alerts 库存、发货延迟、收入增长告警，按严重程度排序后最多5条；没有告警时回退到模拟数据
func (s *AnalyticsService) Alerts(ctx context.Context) Result[[]inout.Alert] {
	var (
		inventory productsData[lowStockNode]
		pending   ordersData[orderNode]
		invErr    error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		invErr = s.query(ctx, lowStockQuery, map[string]interface{}{"first": pageSize}, &inventory)
	}()
	pendErr := s.query(ctx, pendingOrdersQuery, map[string]interface{}{
		"first": pageSize,
		"query": "fulfillment_status:unfulfilled",
	}, &pending)
	<-done
	if invErr != nil {
		return fallback("Alerts", invErr, MockAlerts())
	}
	if pendErr != nil {
		return fallback("Alerts", pendErr, MockAlerts())
	}

	current, previous, err := s.currentAndPrevious(ctx)
	if err != nil {
		return fallback("Alerts", err, MockAlerts())
	}

	alerts := buildAlerts(inventory, pending, sumTotals(current), sumTotals(previous), s.now())
	if len(alerts) == 0 {
		return fallback("Alerts", errNoData, MockAlerts())
	}
	return live(alerts)
}

func buildAlerts(inventory productsData[lowStockNode], pending ordersData[orderNode], revCurrent, revPrevious float64, now time.Time) []inout.Alert {
	var alerts []inout.Alert

	for _, e := range inventory.Products.Edges {
		qty := 999
		if len(e.Node.Variants.Edges) > 0 && e.Node.Variants.Edges[0].Node.InventoryQuantity != nil {
			qty = *e.Node.Variants.Edges[0].Node.InventoryQuantity
		}
		if qty < 0 || qty >= stockWarningBelow {
			continue
		}
		severity, title := "warning", "Stock faible"
		if qty < stockCriticalBelow {
			severity, title = "critical", "Rupture de stock imminente"
		}
		alerts = append(alerts, inout.Alert{
			Severity: severity,
			Title:    title,
			Message:  fmt.Sprintf("%s — %d unité%s restante%s", e.Node.Title, qty, plural(qty, "s"), plural(qty, "s")),
			Time:     "Maintenant",
		})
	}

	overdue := 0
	for _, e := range pending.Orders.Edges {
		if now.Sub(e.Node.CreatedAt) > overdueAfter {
			overdue++
		}
	}
	if overdue > 0 {
		severity := "warning"
		if overdue > overdueCriticalMin {
			severity = "critical"
		}
		alerts = append(alerts, inout.Alert{
			Severity: severity,
			Title:    "Retard de livraison",
			Message: fmt.Sprintf("%d commande%s dépasse%s le délai standard de 48h",
				overdue, plural(overdue, "s"), plural(overdue, "nt")),
			Time: "Il y a 1 heure",
		})
	}

	if revCurrent > revPrevious && revPrevious > 0 {
		alerts = append(alerts, inout.Alert{
			Severity: "info",
			Title:    "Progression des revenus",
			Message: fmt.Sprintf("Revenus en hausse de %s%% par rapport au mois précédent",
				formatFixed1(growth(revCurrent, revPrevious))),
			Time: "Aujourd'hui",
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	for i := range alerts {
		alerts[i].ID = i + 1
	}
	return alerts
}
