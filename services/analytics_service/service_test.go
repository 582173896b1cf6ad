package analytics_service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

type responder func(vars map[string]interface{}) (string, error)

// fakeQuerier 按 GraphQL 操作名返回预置的 data
type fakeQuerier struct {
	mu        sync.Mutex
	responses map[string]responder
	calls     map[string]int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{responses: map[string]responder{}, calls: map[string]int{}}
}

func (f *fakeQuerier) on(op string, r responder) *fakeQuerier {
	f.responses[op] = r
	return f
}

func (f *fakeQuerier) static(op, data string) *fakeQuerier {
	return f.on(op, func(map[string]interface{}) (string, error) { return data, nil })
}

func operationName(q string) string {
	q = strings.TrimPrefix(strings.TrimSpace(q), "query ")
	if i := strings.IndexAny(q, "( {"); i >= 0 {
		return q[:i]
	}
	return q
}

func (f *fakeQuerier) Send(_ context.Context, q string, vars map[string]interface{}) (json.RawMessage, error) {
	op := operationName(q)
	f.mu.Lock()
	f.calls[op]++
	r, ok := f.responses[op]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("proxy unreachable")
	}
	data, err := r(vars)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (f *fakeQuerier) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func newTestService(q *fakeQuerier) *AnalyticsService {
	return NewAnalyticsService(q, WithClock(func() time.Time { return testNow }), WithLocation(time.UTC))
}

func TestPaginateOrders_CapsAtFivePages(t *testing.T) {
	q := newFakeQuerier().on("CommissionTimeline", func(vars map[string]interface{}) (string, error) {
		edges := make([]string, 10)
		for i := range edges {
			edges[i] = `{"node":{"createdAt":"2026-10-01T10:00:00Z","totalPriceSet":{"shopMoney":{"amount":"10.00"}}}}`
		}
		return `{"orders":{"pageInfo":{"hasNextPage":true,"endCursor":"next"},"edges":[` + strings.Join(edges, ",") + `]}}`, nil
	})

	orders, err := paginateOrders[orderNode](context.Background(), newTestService(q), commissionTimelineQuery)
	require.NoError(t, err)
	assert.Equal(t, maxPages, q.count("CommissionTimeline"))
	assert.Len(t, orders, 50)
}

func TestPaginateOrders_StopsWithoutNextPage(t *testing.T) {
	var cursors []interface{}
	q := newFakeQuerier().on("CommissionTimeline", func(vars map[string]interface{}) (string, error) {
		cursors = append(cursors, vars["after"])
		if vars["after"] == nil {
			return `{"orders":{"pageInfo":{"hasNextPage":true,"endCursor":"c1"},"edges":[{"node":{"createdAt":"2026-10-01T10:00:00Z"}}]}}`, nil
		}
		return `{"orders":{"pageInfo":{"hasNextPage":false,"endCursor":"c2"},"edges":[{"node":{"createdAt":"2026-10-02T10:00:00Z"}}]}}`, nil
	})

	orders, err := paginateOrders[orderNode](context.Background(), newTestService(q), commissionTimelineQuery)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, []interface{}{nil, "c1"}, cursors)
}

func TestPaginateOrders_StopsAtRecordCap(t *testing.T) {
	page := func() string {
		edges := make([]string, pageSize)
		for i := range edges {
			edges[i] = `{"node":{"createdAt":"2026-10-01T10:00:00Z"}}`
		}
		return `{"orders":{"pageInfo":{"hasNextPage":true,"endCursor":"x"},"edges":[` + strings.Join(edges, ",") + `]}}`
	}()
	q := newFakeQuerier().static("CommissionTimeline", page)

	orders, err := paginateOrders[orderNode](context.Background(), newTestService(q), commissionTimelineQuery)
	require.NoError(t, err)
	assert.Len(t, orders, maxRecords)
	assert.Equal(t, 5, q.count("CommissionTimeline"))
}

func TestFallback_ReturnsMockWithStatus(t *testing.T) {
	s := newTestService(newFakeQuerier())

	kpis := s.ExecutiveKPIs(context.Background(), 0)
	assert.Equal(t, StatusFallback, kpis.Status)
	assert.False(t, kpis.Live())
	assert.Equal(t, MockExecutiveKPIs(), kpis.Data)
	assert.Contains(t, kpis.Error, "proxy unreachable")

	payouts := s.PayoutSchedule(context.Background(), 0)
	assert.Equal(t, StatusFallback, payouts.Status)
	assert.Equal(t, MockPayoutSchedule(testNow), payouts.Data)
}

func TestCurrentAndPrevious_Windows(t *testing.T) {
	var mu sync.Mutex
	var filters []string
	q := newFakeQuerier().on("OrdersPeriod", func(vars map[string]interface{}) (string, error) {
		mu.Lock()
		filters = append(filters, vars["queryStr"].(string))
		mu.Unlock()
		assert.Equal(t, maxRecords, vars["first"])
		return `{"orders":{"edges":[]}}`, nil
	})

	_, _, err := newTestService(q).currentAndPrevious(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"created_at:>='2026-09-14T12:00:00.000Z' created_at:<='2026-10-14T12:00:00.000Z'",
		"created_at:>='2026-08-15T12:00:00.000Z' created_at:<='2026-09-14T12:00:00.000Z'",
	}, filters)
}

func TestMonthlyGoals_LiveUsesDefaults(t *testing.T) {
	q := newFakeQuerier().static("OrdersPeriod", `{"orders":{"edges":[
		{"node":{"id":"gid://shopify/Order/1","createdAt":"2026-10-10T10:00:00Z","displayFinancialStatus":"PAID","totalPriceSet":{"shopMoney":{"amount":"45000.00"}},"customer":{"email":"a@example.com"}}},
		{"node":{"id":"gid://shopify/Order/2","createdAt":"2026-10-11T10:00:00Z","displayFinancialStatus":"PAID","totalPriceSet":{"shopMoney":{"amount":"1000.50"}},"customer":{"email":"a@example.com"}}},
		{"node":{"id":"gid://shopify/Order/3","createdAt":"2026-10-12T10:00:00Z","displayFinancialStatus":"PENDING","totalPriceSet":{"shopMoney":{"amount":"0"}},"customer":null}}
	]}}`)

	res := newTestService(q).MonthlyGoals(context.Background(), DefaultGoals)
	require.True(t, res.Live())
	assert.False(t, res.Data.OnTrack)
	assert.Equal(t, 90, res.Data.Bonus.Threshold)

	revenue := res.Data.Items[0]
	assert.Equal(t, 46001, revenue.Current)
	assert.Equal(t, 50000, revenue.Goal)
	assert.Equal(t, 92.0, revenue.Pct)
	assert.Equal(t, 4000, revenue.Remaining)

	customers := res.Data.Items[2]
	assert.Equal(t, 2, customers.Current)
	assert.Equal(t, 300, customers.Goal)
}

func TestResolveBrand(t *testing.T) {
	assert.Equal(t, "luxe-cosmetics", ResolveBrand("Luxe", ""))
	assert.Equal(t, "radiance-pro", ResolveBrand("Unknown", "Radiance Pro"))
	assert.Equal(t, "glow-essentials", ResolveBrand("GLOW", "radiance"))
	assert.Equal(t, DefaultBrand, ResolveBrand("Acme", "Wigs"))
	assert.Equal(t, DefaultBrand, ResolveBrand("", ""))
}

func TestBrandsRevenue_UnknownVendorGoesToDefaultBrand(t *testing.T) {
	q := newFakeQuerier().static("BrandsRevenue", `{"orders":{"edges":[
		{"node":{"id":"o1","createdAt":"2026-10-02T10:00:00Z","lineItems":{"edges":[
			{"node":{"title":"Wig","quantity":2,"variant":{"price":"150.00","product":{"productType":"Wigs","vendor":"Acme"}}}}
		]}}}
	]}}`)

	res := newTestService(q).BrandsRevenue(context.Background())
	require.True(t, res.Live())
	require.Len(t, res.Data.Brands, 4)
	assert.Equal(t, DefaultBrand, res.Data.Brands[0].ID)
	assert.Equal(t, 300, res.Data.Brands[0].Revenue)
	assert.Equal(t, 100, res.Data.Brands[0].Contribution)

	last := res.Data.RevenueChartData[len(res.Data.RevenueChartData)-1]
	assert.Equal(t, "Oct", last.Month)
	assert.Equal(t, 300, last.Get(DefaultBrand))
}

func TestBrandsRevenue_NoRevenueFallsBack(t *testing.T) {
	q := newFakeQuerier().static("BrandsRevenue", `{"orders":{"edges":[]}}`)

	res := newTestService(q).BrandsRevenue(context.Background())
	assert.Equal(t, StatusFallback, res.Status)
	assert.Equal(t, MockBrandsRevenue(), res.Data)
}

func TestMonthlyComparison_DedupesOrders(t *testing.T) {
	q := newFakeQuerier().static("BrandsRevenue", `{"orders":{"edges":[
		{"node":{"id":"o1","createdAt":"2026-10-02T10:00:00Z","lineItems":{"edges":[
			{"node":{"title":"A","quantity":1,"variant":{"price":"100.00","product":{"vendor":"Luxe Cosmetics"}}}},
			{"node":{"title":"B","quantity":1,"variant":{"price":"100.00","product":{"vendor":"Luxe Cosmetics"}}}}
		]}}}
	]}}`)

	res := newTestService(q).MonthlyComparison(context.Background(), 0)
	require.True(t, res.Live())
	require.Len(t, res.Data, 6)
	oct := res.Data[5]
	assert.Equal(t, 200, oct.Get("luxe-cosmetics_revenue"))
	assert.Equal(t, 1, oct.Get("luxe-cosmetics_orders"))
	assert.Equal(t, 37, oct.Get("luxe-cosmetics_commission"))
}

func TestAlerts_EmptyFallsBackToMock(t *testing.T) {
	q := newFakeQuerier().
		static("LowStock", `{"products":{"edges":[]}}`).
		static("PendingOrders", `{"orders":{"edges":[]}}`).
		static("OrdersPeriod", `{"orders":{"edges":[]}}`)

	res := newTestService(q).Alerts(context.Background())
	assert.Equal(t, StatusFallback, res.Status)
	assert.Equal(t, MockAlerts(), res.Data)
}

func TestMockTables_JSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(MockMonthlyComparison())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"month":"Jan","ojena-beauty_revenue":142000,"luxe-cosmetics_revenue":118000`)

	var decoded []struct {
		Month string `json:"month"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 6)

	raw, err = json.Marshal(MockBrandsRevenue())
	require.NoError(t, err)
	var brands struct {
		Brands []struct {
			ID      string  `json:"id"`
			Revenue int     `json:"revenue"`
			Growth  float64 `json:"growth"`
		} `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(raw, &brands))
	assert.Equal(t, "radiance-pro", brands.Brands[3].ID)
	assert.Equal(t, -3.2, brands.Brands[3].Growth)

	raw, err = json.Marshal(MockExecutiveKPIs())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":null`)
}
