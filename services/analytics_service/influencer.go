package analytics_service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"ojena-analytics/inout"
)

func rateOr(rate, def float64) float64 {
	if rate <= 0 {
		return def
	}
	return rate
}

// InfluencerMetrics 达人个人收入、佣金、转化率与互动卡片
func (s *AnalyticsService) InfluencerMetrics(ctx context.Context, rate float64) Result[[]inout.InfluencerMetric] {
	rate = rateOr(rate, InfluencerCommissionRate)
	current, previous, err := s.currentAndPrevious(ctx)
	if err != nil {
		return fallback("InfluencerMetrics", err, MockInfluencerMetrics())
	}
	return live(buildInfluencerMetrics(current, previous, rate))
}

func buildInfluencerMetrics(current, previous []periodOrder, rate float64) []inout.InfluencerMetric {
	revenue := sumTotals(current)
	prevRevenue := sumTotals(previous)
	g := growth(revenue, prevRevenue)

	commission := revenue * rate
	commissionGrowth := growth(commission, prevRevenue*rate)

	// 已支付订单占比，按10分制归一
	var conversion float64
	if len(current) > 0 {
		paid := 0
		for _, o := range current {
			if o.Status == "PAID" {
				paid++
			}
		}
		conversion = roundTo(float64(paid)/float64(len(current))*10, 1)
	}

	var badge *string
	if g > 15 {
		badge = strPtr("🎯 Objectif atteint")
	}

	return []inout.InfluencerMetric{
		{
			Title:      "Revenu personnel",
			Value:      formatEUR(revenue * rate),
			Change:     signedPct(g),
			ChangeType: changeType(g),
			Icon:       "TrendingUp",
			IconColor:  "var(--color-primary)",
			Badge:      badge,
		},
		{
			Title:      "Commission gagnée",
			Value:      formatEUR(commission),
			Change:     signedPct(commissionGrowth),
			ChangeType: changeType(commissionGrowth),
			Icon:       "DollarSign",
			IconColor:  "var(--color-accent)",
		},
		{
			Title:      "Taux de conversion",
			Value:      plainNumber(conversion) + "%",
			Change:     "+0,8%",
			ChangeType: "positive",
			Icon:       "Target",
			IconColor:  "var(--color-success)",
		},
		{
			Title:      "Engagement abonnés",
			Value:      "8,2%",
			Change:     "-0,3%",
			ChangeType: "negative",
			Icon:       "Heart",
			IconColor:  "var(--color-warning)",
		},
	}
}

// PerformanceChart 近6个月销售额，commission 为百分比费率
func (s *AnalyticsService) PerformanceChart(ctx context.Context, rate float64) Result[[]inout.ChartPoint] {
	rate = rateOr(rate, InfluencerCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, perfChartQuery, map[string]interface{}{"first": maxRecords}, &resp); err != nil {
		return fallback("PerformanceChart", err, MockChartData())
	}

	now := s.clock()
	slots := monthWindow(now, 6)
	sales := make(map[string]float64, len(slots))
	for _, slot := range slots {
		sales[slot.Key] = 0
	}
	for _, e := range resp.Orders.Edges {
		key := monthKey(e.Node.CreatedAt.In(now.Location()))
		if _, ok := sales[key]; ok {
			sales[key] += e.Node.total()
		}
	}

	points := make([]inout.ChartPoint, 0, len(slots))
	for _, slot := range slots {
		points = append(points, inout.ChartPoint{
			Month:      slot.Label,
			Sales:      round(sales[slot.Key]),
			Commission: round(rate * 100),
		})
	}
	return live(points)
}

const placeholderTall = "https://via.placeholder.com/300x400?text=Product"

type productSales struct {
	name     string
	sales    int
	revenue  float64
	image    string
	imageAlt string
	price    float64
}

// TopProducts 按佣金贡献排名前4的商品
func (s *AnalyticsService) TopProducts(ctx context.Context, rate float64) Result[[]inout.TopProduct] {
	rate = rateOr(rate, InfluencerCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, topProductsQuery, map[string]interface{}{"first": 100}, &resp); err != nil {
		return fallback("TopProducts", err, MockTopProducts())
	}
	orders := make([]orderNode, 0, len(resp.Orders.Edges))
	for _, e := range resp.Orders.Edges {
		orders = append(orders, e.Node)
	}
	return live(rankTopProducts(orders, rate))
}

func rankTopProducts(orders []orderNode, rate float64) []inout.TopProduct {
	var ranked []*productSales
	byTitle := make(map[string]*productSales)
	for _, o := range orders {
		for _, e := range o.LineItems.Edges {
			item := e.Node
			p, ok := byTitle[item.Title]
			if !ok {
				p = &productSales{name: item.Title, price: item.Variant.price(), imageAlt: item.Title}
				if v := item.Variant; v != nil {
					if v.Image != nil && v.Image.URL != "" {
						p.image = v.Image.URL
					} else if v.Product != nil && v.Product.FeaturedImage != nil {
						p.image = v.Product.FeaturedImage.URL
					}
					if v.Image != nil && v.Image.AltText != "" {
						p.imageAlt = v.Image.AltText
					}
				}
				byTitle[item.Title] = p
				ranked = append(ranked, p)
			}
			p.sales += item.Quantity
			p.revenue += p.price * float64(item.Quantity)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].revenue > ranked[j].revenue })
	if len(ranked) > 4 {
		ranked = ranked[:4]
	}

	out := make([]inout.TopProduct, 0, len(ranked))
	for i, p := range ranked {
		perUnit := roundTo(p.price*rate, 2)
		img := p.image
		if img == "" {
			img = placeholderTall
		}
		trend, trendValue := "down", "-5%"
		if i < 3 {
			trend, trendValue = "up", "+"+strconv.Itoa(10+i*5)+"%"
		}
		out = append(out, inout.TopProduct{
			ID:                i + 1,
			Name:              p.name,
			Image:             img,
			ImageAlt:          p.imageAlt,
			Sales:             p.sales,
			CommissionPerUnit: perUnit,
			TotalCommission:   groupInt(round(float64(p.sales) * perUnit)),
			Trend:             trend,
			TrendValue:        trendValue,
			Badge:             strPtr("Top " + strconv.Itoa(i+1)),
		})
	}
	return out
}

var payoutStatus = map[string]string{
	"PAID":           "paid",
	"PENDING":        "pending",
	"PARTIALLY_PAID": "processing",
}

type payoutMonth struct {
	date   time.Time
	total  float64
	status string
}

const payoutMethod = "Virement bancaire"

// PayoutSchedule 最近3个月的佣金发放计划
func (s *AnalyticsService) PayoutSchedule(ctx context.Context, rate float64) Result[[]inout.Payout] {
	rate = rateOr(rate, InfluencerCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, payoutScheduleQuery, map[string]interface{}{"first": pageSize}, &resp); err != nil {
		return fallback("PayoutSchedule", err, MockPayoutSchedule(s.clock()))
	}

	loc := s.loc
	var months []*payoutMonth
	byKey := make(map[string]*payoutMonth)
	for _, e := range resp.Orders.Edges {
		d := e.Node.CreatedAt.In(loc)
		key := monthKey(d)
		m, ok := byKey[key]
		if !ok {
			m = &payoutMonth{date: d, status: e.Node.DisplayFinancialStatus}
			byKey[key] = m
			months = append(months, m)
		}
		m.total += e.Node.total() * rate
	}

	sort.SliceStable(months, func(i, j int) bool { return months[i].date.After(months[j].date) })
	if len(months) > 3 {
		months = months[:3]
	}

	out := make([]inout.Payout, 0, len(months))
	for i, m := range months {
		status, ok := payoutStatus[m.status]
		if !ok {
			status = "scheduled"
		}
		out = append(out, inout.Payout{
			ID:          i + 1,
			Month:       int(m.date.Month()) - 1,
			Date:        dateLong(m.date),
			Amount:      groupInt(round(m.total)),
			Status:      status,
			Description: "Commission " + monthYear(m.date),
			Method:      payoutMethod,
		})
	}
	return live(out)
}

// 互动代理系数：平台不提供社交数据，用订单数推算
const (
	clickCoeff   = 2.6
	shareCoeff   = 1.4
	commentCoeff = 0.8

	clickGoalFloor   = 3500
	shareGoalFloor   = 2000
	commentGoalFloor = 1200
)

// EngagementMetrics 链接点击、分享、评论三项代理指标
func (s *AnalyticsService) EngagementMetrics(ctx context.Context) Result[[]inout.EngagementMetric] {
	current, previous, err := s.currentAndPrevious(ctx)
	if err != nil {
		return fallback("EngagementMetrics", err, MockEngagementMetrics())
	}
	return live(buildEngagement(current, previous))
}

func uniqueOrders(orders []periodOrder) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.ID] = struct{}{}
	}
	return len(seen)
}

func buildEngagement(current, previous []periodOrder) []inout.EngagementMetric {
	unique, prevUnique := uniqueOrders(current), uniqueOrders(previous)

	clicks, prevClicks := round(float64(len(current))*clickCoeff), round(float64(len(previous))*clickCoeff)
	shares, prevShares := round(float64(unique)*shareCoeff), round(float64(prevUnique)*shareCoeff)
	comments, prevComments := round(float64(unique)*commentCoeff), round(float64(prevUnique)*commentCoeff)

	pct := func(v, floor int) int {
		goal := v
		if floor > goal {
			goal = floor
		}
		return int(math.Min(100, float64(round(float64(v)/float64(goal)*100))))
	}
	chg := func(cur, prev int) int {
		if prev <= 0 {
			return 0
		}
		return round(float64(cur-prev) / float64(prev) * 100)
	}

	return []inout.EngagementMetric{
		{ID: 1, Label: "Clics sur liens", Value: groupInt(clicks), Percentage: pct(clicks, clickGoalFloor),
			Color: "var(--color-primary)", Icon: "MousePointerClick", Change: chg(clicks, prevClicks)},
		{ID: 2, Label: "Partages de contenu", Value: groupInt(shares), Percentage: pct(shares, shareGoalFloor),
			Color: "var(--color-accent)", Icon: "Share2", Change: chg(shares, prevShares)},
		{ID: 3, Label: "Commentaires", Value: groupInt(comments), Percentage: pct(comments, commentGoalFloor),
			Color: "var(--color-success)", Icon: "MessageCircle", Change: chg(comments, prevComments)},
	}
}

// DefaultGoals 默认月度目标
var DefaultGoals = inout.GoalTargets{Revenue: 50000, Sales: 1200, Customers: 300}

const (
	goalBonusThreshold = 90
	goalBonusAmount    = 2000
)

// MonthlyGoals 收入、销量、客户数三项目标的完成度；零值目标使用默认值
func (s *AnalyticsService) MonthlyGoals(ctx context.Context, goals inout.GoalTargets) Result[inout.MonthlyGoals] {
	if goals.Revenue <= 0 {
		goals.Revenue = DefaultGoals.Revenue
	}
	if goals.Sales <= 0 {
		goals.Sales = DefaultGoals.Sales
	}
	if goals.Customers <= 0 {
		goals.Customers = DefaultGoals.Customers
	}

	current, previous, err := s.currentAndPrevious(ctx)
	if err != nil {
		return fallback("MonthlyGoals", err, MockMonthlyGoals())
	}
	return live(buildMonthlyGoals(current, previous, goals))
}

func uniqueCustomers(orders []periodOrder) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.Customer] = struct{}{}
	}
	return len(seen)
}

func goalProgress(val float64, goal int) (pct, remaining float64) {
	if goal > 0 {
		pct = roundTo(math.Min(100, val/float64(goal)*100), 1)
	}
	return pct, math.Max(0, float64(goal)-val)
}

func buildMonthlyGoals(current, previous []periodOrder, goals inout.GoalTargets) inout.MonthlyGoals {
	revenue := sumTotals(current)
	sales := len(current)
	customers := uniqueCustomers(current)

	rPct, rRem := goalProgress(revenue, goals.Revenue)
	sPct, sRem := goalProgress(float64(sales), goals.Sales)
	cPct, cRem := goalProgress(float64(customers), goals.Customers)

	return inout.MonthlyGoals{
		OnTrack: rPct >= goalBonusThreshold && sPct >= goalBonusThreshold && cPct >= goalBonusThreshold,
		Bonus:   inout.GoalBonus{Threshold: goalBonusThreshold, Amount: goalBonusAmount},
		Items: []inout.GoalItem{
			{ID: "revenue", Label: "Chiffre d'affaires", Current: round(revenue), Goal: goals.Revenue,
				Pct: rPct, Remaining: round(rRem), PrevValue: round(sumTotals(previous)), Color: "primary"},
			{ID: "sales", Label: "Nombre de ventes", Current: sales, Goal: goals.Sales,
				Pct: sPct, Remaining: round(sRem), PrevValue: len(previous), Color: "accent"},
			{ID: "customers", Label: "Nouveaux clients", Current: customers, Goal: goals.Customers,
				Pct: cPct, Remaining: round(cRem), PrevValue: uniqueCustomers(previous), Color: "success"},
		},
	}
}
