package analytics_service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(at time.Time, amount int64) orderNode {
	o := orderNode{CreatedAt: at}
	o.TotalPriceSet.ShopMoney.Amount = decimalFromInt(amount)
	return o
}

func TestBuildExecutiveKPIs(t *testing.T) {
	orders := []orderNode{
		orderAt(testNow.Add(-1*day), 1000),
		orderAt(testNow.Add(-10*day), 500),
		orderAt(testNow.Add(-20*day), 250),
		orderAt(testNow.Add(-40*day), 1000),
	}

	cards := buildExecutiveKPIs(orders, testNow, RevenueCommissionRate)
	require.Len(t, cards, 4)

	revenue := cards[0]
	require.NotNil(t, revenue.Value)
	assert.Equal(t, "1\u202f750 €", *revenue.Value)
	assert.Equal(t, "+75.0%", revenue.Change)
	assert.Equal(t, "positive", revenue.ChangeType)
	assert.Equal(t, []int{0, 1000, 0, 0, 250, 500, 1000}, revenue.SparklineData)

	commission := cards[1]
	assert.Equal(t, "324 €", *commission.Value)

	active := cards[2]
	assert.Equal(t, "3", *active.Value)
	assert.Equal(t, "+200.0%", active.Change)
	assert.Equal(t, []int{0, 1, 0, 0, 1, 1, 1}, active.SparklineData)

	brands := cards[3]
	assert.Nil(t, brands.Value)
	assert.Len(t, brands.SparklineData, 7)
	assert.Equal(t, 0, brands.SparklineData[0])
}

func TestBuildExecutiveKPIs_NoPreviousMeansZeroGrowth(t *testing.T) {
	cards := buildExecutiveKPIs([]orderNode{orderAt(testNow.Add(-time.Hour), 80)}, testNow, RevenueCommissionRate)
	assert.Equal(t, "+0.0%", cards[0].Change)
	assert.Equal(t, "positive", cards[0].ChangeType)
}

func TestBuildAlerts(t *testing.T) {
	var inventory productsData[lowStockNode]
	require.NoError(t, json.Unmarshal([]byte(`{"products":{"edges":[
		{"node":{"title":"Perruque Lisse","variants":{"edges":[{"node":{"inventoryQuantity":10}}]}}},
		{"node":{"title":"Perruque Bouclée","variants":{"edges":[{"node":{"inventoryQuantity":3}}]}}},
		{"node":{"title":"Bonnet Satin","variants":{"edges":[{"node":{"inventoryQuantity":20}}]}}},
		{"node":{"title":"Carte cadeau","variants":{"edges":[]}}}
	]}}`), &inventory))

	pending := ordersData[orderNode]{}
	pending.Orders.Edges = []edge[orderNode]{
		{Node: orderAt(testNow.Add(-72*time.Hour), 100)},
		{Node: orderAt(testNow.Add(-50*time.Hour), 100)},
		{Node: orderAt(testNow.Add(-time.Hour), 100)},
	}

	alerts := buildAlerts(inventory, pending, 1500, 1000, testNow)
	require.Len(t, alerts, 4)

	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, "Perruque Bouclée — 3 unités restantes", alerts[0].Message)
	assert.Equal(t, "warning", alerts[1].Severity)
	assert.Equal(t, "Stock faible", alerts[1].Title)
	assert.Equal(t, "Retard de livraison", alerts[2].Title)
	assert.Equal(t, "2 commandes dépassent le délai standard de 48h", alerts[2].Message)
	assert.Equal(t, "info", alerts[3].Severity)
	assert.Equal(t, "Revenus en hausse de 50.0% par rapport au mois précédent", alerts[3].Message)

	for i, a := range alerts {
		assert.Equal(t, i+1, a.ID)
	}
}

func TestBuildAlerts_ManyOverdueIsCriticalAndCapped(t *testing.T) {
	var inventory productsData[lowStockNode]
	require.NoError(t, json.Unmarshal([]byte(`{"products":{"edges":[
		{"node":{"title":"A","variants":{"edges":[{"node":{"inventoryQuantity":1}}]}}},
		{"node":{"title":"B","variants":{"edges":[{"node":{"inventoryQuantity":2}}]}}},
		{"node":{"title":"C","variants":{"edges":[{"node":{"inventoryQuantity":6}}]}}},
		{"node":{"title":"D","variants":{"edges":[{"node":{"inventoryQuantity":7}}]}}},
		{"node":{"title":"E","variants":{"edges":[{"node":{"inventoryQuantity":8}}]}}}
	]}}`), &inventory))

	pending := ordersData[orderNode]{}
	for i := 0; i < 11; i++ {
		pending.Orders.Edges = append(pending.Orders.Edges, edge[orderNode]{Node: orderAt(testNow.Add(-60*time.Hour), 10)})
	}

	alerts := buildAlerts(inventory, pending, 2000, 1000, testNow)
	require.Len(t, alerts, maxAlerts)
	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, "critical", alerts[1].Severity)
	assert.Equal(t, "Retard de livraison", alerts[2].Title)
	assert.Equal(t, "critical", alerts[2].Severity)
	for _, a := range alerts {
		assert.NotEqual(t, "info", a.Severity)
	}
}

func TestRateOr(t *testing.T) {
	assert.Equal(t, RevenueCommissionRate, rateOr(0, RevenueCommissionRate))
	assert.Equal(t, RevenueCommissionRate, rateOr(-0.2, RevenueCommissionRate))
	assert.Equal(t, 0.3, rateOr(0.3, RevenueCommissionRate))
}

func TestExecutiveKPIs_NonPositiveRateUsesDefault(t *testing.T) {
	q := newFakeQuerier().static("ExecutiveKPIs", `{"orders":{"edges":[
		{"node":{"createdAt":"2026-10-10T10:00:00Z","displayFinancialStatus":"PAID","totalPriceSet":{"shopMoney":{"amount":"1000.00"}}}}
	]}}`)
	s := newTestService(q)

	want := s.ExecutiveKPIs(context.Background(), RevenueCommissionRate)
	require.True(t, want.Live())
	for _, rate := range []float64{0, -1} {
		got := s.ExecutiveKPIs(context.Background(), rate)
		require.True(t, got.Live())
		assert.Equal(t, want.Data, got.Data, "rate %v", rate)
	}
}
