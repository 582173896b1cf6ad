package analytics_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ojena-analytics/inout"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		platform string
		qty      int
		want     string
	}{
		{"ACTIVE", 0, ProductOutOfStock},
		{"ACTIVE", -2, ProductOutOfStock},
		{"ACTIVE", 3, ProductLowStock},
		{"ACTIVE", 5, ProductLowStock},
		{"ACTIVE", 6, ProductActive},
		{"DRAFT", 6, ProductInactive},
		{"ARCHIVED", 0, ProductOutOfStock},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeStatus(c.platform, c.qty), "%s/%d", c.platform, c.qty)
	}
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, "Wigs", InferCategory("Wigs", []string{"skincare"}))
	assert.Equal(t, "skincare", InferCategory("", []string{"Sérum"}))
	assert.Equal(t, "fragrance", InferCategory("Uncategorized", []string{"lotion", "parfum"}))
	assert.Equal(t, "makeup", InferCategory("", []string{"fond de teint"}))
	assert.Equal(t, "Uncategorized", InferCategory("", []string{"promo"}))
	assert.Equal(t, "Uncategorized", InferCategory("", nil))
}

const productsFixture = `{"products":{"edges":[
	{"node":{"id":"p1","title":"Sérum","status":"ACTIVE","productType":"skincare","tags":[],
		"variants":{"edges":[{"node":{"price":"100.00","sku":"SER-1","inventoryQuantity":10,"inventoryItem":{"unitCost":{"amount":"80.00"}}}}]},
		"images":{"edges":[{"node":{"url":"https://cdn.example/serum.png","altText":"Flacon"}}]}}},
	{"node":{"id":"p2","title":"Rouge","status":"ACTIVE","productType":"","tags":["maquillage"],
		"variants":{"edges":[{"node":{"price":"20.00","sku":"","inventoryQuantity":2,"inventoryItem":null}}]},
		"images":{"edges":[]}}},
	{"node":{"id":"p3","title":"Brume","status":"DRAFT","productType":"fragrance","tags":[],
		"variants":{"edges":[{"node":{"price":"50.00","sku":"BRU","inventoryQuantity":20,"inventoryItem":{"unitCost":{"amount":"10.00"}}}}]},
		"images":{"edges":[]}}}
]}}`

func TestProducts_Transform(t *testing.T) {
	q := newFakeQuerier().static("FetchProducts", productsFixture)

	res := newTestService(q).Products(context.Background())
	require.True(t, res.Live())
	require.Len(t, res.Data, 3)

	serum := res.Data[0]
	assert.Equal(t, "SER-1", serum.SKU)
	assert.Equal(t, 20.0, *serum.ProfitMargin)
	assert.Equal(t, 1000.0, serum.Revenue)
	assert.Equal(t, ProductActive, serum.Status)
	assert.Equal(t, "https://cdn.example/serum.png", serum.Image)
	assert.Equal(t, "Flacon", serum.ImageAlt)

	rouge := res.Data[1]
	assert.Equal(t, "SKU2", rouge.SKU)
	assert.Equal(t, "makeup", rouge.Category)
	assert.Equal(t, 45.0, *rouge.ProfitMargin)
	assert.Equal(t, ProductLowStock, rouge.Status)
	assert.Equal(t, productPlaceholder, rouge.Image)
	assert.Equal(t, "Rouge", rouge.ImageAlt)

	assert.Equal(t, ProductInactive, res.Data[2].Status)
}

func TestProductKPIs_Live(t *testing.T) {
	q := newFakeQuerier().static("FetchProducts", productsFixture)

	res := newTestService(q).ProductKPIs(context.Background())
	require.True(t, res.Live())
	assert.Equal(t, 1, res.Data.TotalProducts)
	assert.Equal(t, "Sérum", res.Data.TopPerformer.Name)
	assert.Equal(t, 1000.0, res.Data.TopPerformer.Revenue)
	assert.Equal(t, 1, res.Data.LowMarginCount)
	assert.Equal(t, 1.0, res.Data.InventoryTurnover)
}

func TestBuildProductKPIs_Empty(t *testing.T) {
	kpis := buildProductKPIs(nil)
	assert.Equal(t, "N/A", kpis.TopPerformer.Name)
	assert.Equal(t, 0.0, kpis.InventoryTurnover)

	// 毛利未知按 100 计
	kpis = buildProductKPIs(MockProducts())
	assert.Equal(t, 0, kpis.LowMarginCount)
	assert.Equal(t, 8, kpis.TotalProducts)
	assert.Equal(t, "PSB Star Premium Wig", kpis.TopPerformer.Name)
}

func TestCategoryData_LabelsAndShares(t *testing.T) {
	products := []inout.Product{
		{Category: "skincare", Revenue: 600},
		{Category: "Maquillage", Revenue: 300},
		{Category: "", Revenue: 100},
		{Category: "Wigs", Revenue: 0},
	}
	slices := aggregateCategories(products)
	require.Len(t, slices, 4)
	assert.Equal(t, inout.CategorySlice{Name: "Soins de la peau", Value: 600, Percentage: 60}, slices[0])
	assert.Equal(t, inout.CategorySlice{Name: "Maquillage", Value: 300, Percentage: 30}, slices[1])
	assert.Equal(t, inout.CategorySlice{Name: "Autres", Value: 100, Percentage: 10}, slices[2])
	assert.Equal(t, "Wigs", slices[3].Name)
}

func TestCategoryData_FallsBack(t *testing.T) {
	res := newTestService(newFakeQuerier()).CategoryData(context.Background())
	assert.Equal(t, StatusFallback, res.Status)
	assert.Equal(t, MockCategoryData(), res.Data)
}
