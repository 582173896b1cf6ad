package analytics_service

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func periodOrders(n int, total float64, status string) []periodOrder {
	out := make([]periodOrder, n)
	for i := range out {
		out[i] = periodOrder{
			ID:       "gid://shopify/Order/" + status + strconv.Itoa(i),
			Date:     testNow,
			Total:    total,
			Status:   status,
			Customer: "client" + strconv.Itoa(i) + "@ojena.fr",
		}
	}
	return out
}

func TestBuildInfluencerMetrics(t *testing.T) {
	current := append(periodOrders(3, 250, "PAID"), periodOrders(1, 250, "PENDING")...)
	previous := periodOrders(2, 250, "PAID")

	cards := buildInfluencerMetrics(current, previous, InfluencerCommissionRate)
	require.Len(t, cards, 4)

	assert.Equal(t, "150\u00a0€", cards[0].Value)
	assert.Equal(t, "+100.0%", cards[0].Change)
	require.NotNil(t, cards[0].Badge)

	assert.Equal(t, "150\u00a0€", cards[1].Value)
	assert.Equal(t, "+100.0%", cards[1].Change)

	assert.Equal(t, "7.5%", cards[2].Value)
	assert.Equal(t, "8,2%", cards[3].Value)
}

func TestBuildInfluencerMetrics_NoBadgeBelowThreshold(t *testing.T) {
	cards := buildInfluencerMetrics(periodOrders(1, 110, "PAID"), periodOrders(1, 100, "PAID"), InfluencerCommissionRate)
	assert.Nil(t, cards[0].Badge)
	assert.Equal(t, "+10.0%", cards[0].Change)
}

func TestRankTopProducts(t *testing.T) {
	var orders []orderNode
	require.NoError(t, json.Unmarshal([]byte(`[
		{"lineItems":{"edges":[
			{"node":{"title":"Perruque A","quantity":2,"variant":{"price":"100.00","image":{"url":"a.jpg","altText":"Perruque A lisse"}}}},
			{"node":{"title":"Perruque B","quantity":1,"variant":{"price":"150.00","product":{"featuredImage":{"url":"b.jpg"}}}}}
		]}},
		{"lineItems":{"edges":[
			{"node":{"title":"Perruque A","quantity":1,"variant":{"price":"100.00"}}},
			{"node":{"title":"Bonnet C","quantity":5,"variant":null}}
		]}}
	]`), &orders))

	top := rankTopProducts(orders, InfluencerCommissionRate)
	require.Len(t, top, 3)

	assert.Equal(t, "Perruque A", top[0].Name)
	assert.Equal(t, 3, top[0].Sales)
	assert.Equal(t, 15.0, top[0].CommissionPerUnit)
	assert.Equal(t, "45", top[0].TotalCommission)
	assert.Equal(t, "a.jpg", top[0].Image)
	assert.Equal(t, "Perruque A lisse", top[0].ImageAlt)
	assert.Equal(t, "+10%", top[0].TrendValue)

	assert.Equal(t, "Perruque B", top[1].Name)
	assert.Equal(t, "b.jpg", top[1].Image)
	assert.Equal(t, 22.5, top[1].CommissionPerUnit)

	assert.Equal(t, "Bonnet C", top[2].Name)
	assert.Equal(t, placeholderTall, top[2].Image)
	assert.Equal(t, 0.0, top[2].CommissionPerUnit)
	assert.Equal(t, "+20%", top[2].TrendValue)
	require.NotNil(t, top[2].Badge)
	assert.Equal(t, "Top 3", *top[2].Badge)
}

func TestBuildEngagement(t *testing.T) {
	metrics := buildEngagement(periodOrders(10, 50, "PAID"), periodOrders(5, 50, "PAID"))
	require.Len(t, metrics, 3)

	assert.Equal(t, "26", metrics[0].Value)
	assert.Equal(t, "14", metrics[1].Value)
	assert.Equal(t, "8", metrics[2].Value)
	for _, m := range metrics {
		assert.Equal(t, 100, m.Change, m.Label)
		assert.Equal(t, 1, m.Percentage, m.Label)
	}
}

func TestBuildEngagement_GoalIsAtLeastValue(t *testing.T) {
	metrics := buildEngagement(periodOrders(2000, 10, "PAID"), nil)
	assert.Equal(t, "5\u202f200", metrics[0].Value)
	assert.Equal(t, 100, metrics[0].Percentage)
	assert.Equal(t, 0, metrics[0].Change)
}
