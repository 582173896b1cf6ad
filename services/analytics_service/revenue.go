package analytics_service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"ojena-analytics/inout"
)

const overdueDays = 30

// RevenueMetrics 佣金中心的6张财务卡片
func (s *AnalyticsService) RevenueMetrics(ctx context.Context, rate float64) Result[[]inout.FinancialMetric] {
	rate = rateOr(rate, RevenueCommissionRate)
	current, previous, err := s.currentAndPrevious(ctx)
	if err != nil {
		return fallback("RevenueMetrics", err, MockFinancialMetrics())
	}
	return live(buildRevenueMetrics(current, previous, rate, s.clock()))
}

func buildRevenueMetrics(current, previous []periodOrder, rate float64, now time.Time) []inout.FinancialMetric {
	totalDue := sumTotals(current)
	g := growth(totalDue, sumTotals(previous))

	var paid, pending []periodOrder
	for _, o := range current {
		if o.Status == "PAID" {
			paid = append(paid, o)
		} else {
			pending = append(pending, o)
		}
	}

	var overdueCount int
	var overdueAmount float64
	for _, o := range pending {
		if now.Sub(o.Date) > overdueDays*day {
			overdueCount++
			overdueAmount += o.Total * rate
		}
	}

	trend := "down"
	if g >= 0 {
		trend = "up"
	}
	next := now.AddDate(0, 0, 7)

	return []inout.FinancialMetric{
		{
			Title:      "Commissions Totales Dues",
			Value:      formatEUR(totalDue * rate),
			Subtitle:   signedPct(g) + " vs mois dernier",
			Icon:       "DollarSign",
			Trend:      trend,
			TrendValue: signedPct(g),
			Status:     "primary",
		},
		{
			Title:      "Paiements Traités",
			Value:      formatEUR(sumTotals(paid) * rate),
			Subtitle:   strconv.Itoa(len(paid)) + " transactions",
			Icon:       "CheckCircle",
			Trend:      "up",
			TrendValue: strconv.Itoa(len(paid)),
			Status:     "success",
		},
		{
			Title:      "Paiements en Attente",
			Value:      formatEUR(sumTotals(pending) * rate),
			Subtitle:   strconv.Itoa(len(pending)) + " transactions",
			Icon:       "Clock",
			Trend:      "neutral",
			TrendValue: strconv.Itoa(len(pending)),
			Status:     "warning",
		},
		{
			Title:      "Taux de Commission Moyen",
			Value:      formatFixed1(rate*100) + "%",
			Subtitle:   "Tous types confondus",
			Icon:       "Percent",
			Trend:      "up",
			TrendValue: "+0,8%",
			Status:     "default",
		},
		{
			Title:      "Retards de Paiement",
			Value:      strconv.Itoa(overdueCount),
			Subtitle:   formatEUR(overdueAmount) + " en retard",
			Icon:       "AlertTriangle",
			Trend:      "down",
			TrendValue: "-2",
			Status:     "error",
		},
		{
			Title:      "Prochain Paiement",
			Value:      dayMonth(next),
			Subtitle:   strconv.Itoa(len(pending)) + " paiements planifiés",
			Icon:       "Calendar",
			Trend:      "neutral",
			TrendValue: "7 jours",
			Status:     "default",
		},
	}
}

// 佣金类型
const (
	TypeInfluencer = "Influenceur"
	TypeAffiliate  = "Affilié"
	TypeBonus      = "Bonus"
)

// commissionType 按标签推断佣金类型，bonus 优先
func commissionType(tags []string) string {
	var affiliate bool
	for _, t := range tags {
		switch strings.ToLower(t) {
		case "bonus":
			return TypeBonus
		case "affiliate", "affilié":
			affiliate = true
		}
	}
	if affiliate {
		return TypeAffiliate
	}
	return TypeInfluencer
}

// CommissionTimeline 近12个月按类型拆分的佣金，分页读取订单
func (s *AnalyticsService) CommissionTimeline(ctx context.Context, rate float64) Result[[]inout.TimelinePoint] {
	rate = rateOr(rate, RevenueCommissionRate)
	orders, err := paginateOrders[orderNode](ctx, s, commissionTimelineQuery)
	if err != nil {
		return fallback("CommissionTimeline", err, MockTimelineData())
	}
	return live(aggregateTimeline(orders, s.clock(), rate))
}

func aggregateTimeline(orders []orderNode, now time.Time, rate float64) []inout.TimelinePoint {
	slots := monthWindow(now, 12)
	buckets := make(map[string]*[3]float64, len(slots))
	for _, slot := range slots {
		buckets[slot.Key] = &[3]float64{}
	}

	for _, o := range orders {
		b, ok := buckets[monthKey(o.CreatedAt.In(now.Location()))]
		if !ok {
			continue
		}
		amount := o.total() * rate
		switch commissionType(o.Tags) {
		case TypeBonus:
			b[2] += amount
		case TypeAffiliate:
			b[1] += amount
		default:
			b[0] += amount
		}
	}

	points := make([]inout.TimelinePoint, 0, len(slots))
	for _, slot := range slots {
		b := buckets[slot.Key]
		points = append(points, inout.TimelinePoint{
			Month:      slot.Label,
			Influencer: round(b[0]),
			Affiliate:  round(b[1]),
			Bonus:      round(b[2]),
		})
	}
	return points
}

var transactionStatus = map[string]string{
	"PAID":           "paid",
	"PENDING":        "pending",
	"PARTIALLY_PAID": "processing",
	"REFUNDED":       "disputed",
}

var filterTypes = map[string]string{
	"influencer": TypeInfluencer,
	"affiliate":  TypeAffiliate,
	"bonus":      TypeBonus,
}

const studioBrand = "OJENA Studios"

// CommissionTransactions 最近50笔订单对应的佣金流水，可按类型与支付状态过滤
func (s *AnalyticsService) CommissionTransactions(ctx context.Context, filter inout.TransactionFilter, rate float64) Result[[]inout.Transaction] {
	rate = rateOr(rate, RevenueCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, commissionTransactionsQuery, map[string]interface{}{"first": pageSize}, &resp); err != nil {
		return fallback("CommissionTransactions", err, FilterTransactions(MockTransactions(), filter))
	}
	return live(FilterTransactions(buildTransactions(resp.Orders.Edges, rate, s.loc), filter))
}

func customerName(c *customer) string {
	if c == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{c.FirstName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func buildTransactions(edges []edge[orderNode], rate float64, loc *time.Location) []inout.Transaction {
	out := make([]inout.Transaction, 0, len(edges))
	for i, e := range edges {
		o := e.Node
		name := customerName(o.Customer)
		if name == "" {
			name = "Client #" + strconv.Itoa(i+1)
		}
		status, ok := transactionStatus[o.DisplayFinancialStatus]
		if !ok {
			status = "pending"
		}
		out = append(out, inout.Transaction{
			ID:        o.ID,
			Date:      dateShort(o.CreatedAt.In(loc)),
			Name:      name,
			Brand:     studioBrand,
			Type:      commissionType(o.Tags),
			Amount:    round(o.total() * rate),
			Status:    status,
			AvatarAlt: name,
		})
	}
	return out
}

// FilterTransactions 空值与 all 表示不过滤
func FilterTransactions(txs []inout.Transaction, filter inout.TransactionFilter) []inout.Transaction {
	out := make([]inout.Transaction, 0, len(txs))
	for _, t := range txs {
		if filter.CommissionType != "" && filter.CommissionType != "all" && t.Type != filterTypes[filter.CommissionType] {
			continue
		}
		if filter.PaymentStatus != "" && filter.PaymentStatus != "all" && t.Status != filter.PaymentStatus {
			continue
		}
		out = append(out, t)
	}
	return out
}

var queuePriorities = []string{"high", "high", "medium", "medium", "low"}

type queueGroup struct {
	name         string
	amount       float64
	dueDate      time.Time
	transactions int
}

// PaymentQueue 未结清订单按客户汇总，金额最高的5位
func (s *AnalyticsService) PaymentQueue(ctx context.Context, rate float64) Result[[]inout.PaymentQueueEntry] {
	rate = rateOr(rate, RevenueCommissionRate)
	var resp ordersData[orderNode]
	if err := s.query(ctx, paymentQueueQuery, map[string]interface{}{"first": pageSize}, &resp); err != nil {
		return fallback("PaymentQueue", err, MockPaymentQueue())
	}
	return live(buildPaymentQueue(resp.Orders.Edges, rate, s.loc))
}

func buildPaymentQueue(edges []edge[orderNode], rate float64, loc *time.Location) []inout.PaymentQueueEntry {
	var groups []*queueGroup
	byKey := make(map[string]*queueGroup)
	for _, e := range edges {
		o := e.Node
		key := o.ID
		if o.Customer != nil && o.Customer.Email != "" {
			key = o.Customer.Email
		}
		g, ok := byKey[key]
		if !ok {
			name := customerName(o.Customer)
			if name == "" {
				name = "Client inconnu"
			}
			g = &queueGroup{name: name, dueDate: o.CreatedAt}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.amount += o.total() * rate
		g.transactions++
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].amount > groups[j].amount })
	if len(groups) > len(queuePriorities) {
		groups = groups[:len(queuePriorities)]
	}

	out := make([]inout.PaymentQueueEntry, 0, len(groups))
	for i, g := range groups {
		status := "pending"
		if i < 2 {
			status = "scheduled"
		}
		out = append(out, inout.PaymentQueueEntry{
			ID:           i + 1,
			Name:         g.name,
			Brand:        studioBrand,
			Amount:       round(g.amount),
			DueDate:      dayMonthYear(g.dueDate.In(loc)),
			Transactions: g.transactions,
			Status:       status,
			Priority:     queuePriorities[i],
		})
	}
	return out
}
