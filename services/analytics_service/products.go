package analytics_service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"ojena-analytics/inout"
)

const (
	productsFirst       = 100
	defaultProfitMargin = 45.0
	lowMarginThreshold  = 30.0
	lowStockLimit       = 5
	uncategorized       = "Uncategorized"
	otherCategory       = "Autres"
	productPlaceholder  = "https://via.placeholder.com/300x300?text=Product"
)

// 商品状态
const (
	ProductActive     = "active"
	ProductLowStock   = "low-stock"
	ProductOutOfStock = "out-of-stock"
	ProductInactive   = "inactive"
)

// NormalizeStatus 库存优先于上架状态
func NormalizeStatus(platformStatus string, qty int) string {
	switch {
	case qty <= 0:
		return ProductOutOfStock
	case qty <= lowStockLimit:
		return ProductLowStock
	case strings.EqualFold(platformStatus, "active"):
		return ProductActive
	default:
		return ProductInactive
	}
}

var categoryKeywords = []struct {
	category string
	tags     []string
}{
	{"skincare", []string{"skincare", "soins", "sérum", "crème"}},
	{"makeup", []string{"makeup", "maquillage", "fond de teint"}},
	{"fragrance", []string{"parfum", "fragrance"}},
	{"haircare", []string{"cheveux", "haircare", "shampoing"}},
	{"bodycare", []string{"corps", "bodycare", "lotion"}},
}

// InferCategory 商品类型原样返回，缺失时按标签匹配，先命中者优先
func InferCategory(productType string, tags []string) string {
	if productType != "" && productType != uncategorized {
		return productType
	}
	lowered := make(map[string]bool, len(tags))
	for _, t := range tags {
		lowered[strings.ToLower(t)] = true
	}
	for _, set := range categoryKeywords {
		for _, kw := range set.tags {
			if lowered[kw] {
				return set.category
			}
		}
	}
	return uncategorized
}

// Products 前100个商品的分析行
func (s *AnalyticsService) Products(ctx context.Context) Result[[]inout.Product] {
	products, err := s.fetchProducts(ctx)
	if err != nil {
		return fallback("Products", err, MockProducts())
	}
	return live(products)
}

func (s *AnalyticsService) fetchProducts(ctx context.Context) ([]inout.Product, error) {
	var resp productsData[productNode]
	if err := s.query(ctx, productsQuery, map[string]interface{}{"first": productsFirst}, &resp); err != nil {
		return nil, err
	}
	return transformProducts(resp.Products.Edges), nil
}

func transformProducts(edges []edge[productNode]) []inout.Product {
	out := make([]inout.Product, 0, len(edges))
	for i, e := range edges {
		p := e.Node
		v := p.firstVariant()

		var price, cost float64
		var qty int
		sku := ""
		if v != nil {
			price = v.price()
			if v.InventoryItem != nil && v.InventoryItem.UnitCost != nil {
				cost = v.InventoryItem.UnitCost.Amount.InexactFloat64()
			}
			if v.InventoryQuantity != nil {
				qty = *v.InventoryQuantity
			}
			sku = v.SKU
		}
		if sku == "" {
			sku = "SKU" + strconv.Itoa(i+1)
		}

		margin := defaultProfitMargin
		if price > 0 && cost > 0 {
			margin = roundTo((price-cost)/price*100, 1)
		}

		img, alt := productPlaceholder, p.Title
		if len(p.Images.Edges) > 0 {
			first := p.Images.Edges[0].Node
			if first.URL != "" {
				img = first.URL
			}
			if first.AltText != "" {
				alt = first.AltText
			}
		}

		out = append(out, inout.Product{
			ID:                p.ID,
			Name:              p.Title,
			SKU:               sku,
			Category:          InferCategory(p.ProductType, p.Tags),
			Image:             img,
			ImageAlt:          alt,
			Price:             price,
			Cost:              cost,
			ProfitMargin:      &margin,
			Revenue:           price * float64(qty),
			UnitsSold:         qty,
			InventoryQuantity: qty,
			Status:            NormalizeStatus(p.Status, qty),
		})
	}
	return out
}

// ProductKPIs 商品页四个汇总指标
func (s *AnalyticsService) ProductKPIs(ctx context.Context) Result[inout.ProductKPIs] {
	products, err := s.fetchProducts(ctx)
	if err != nil {
		return fallback("ProductKPIs", err, MockProductKPIs())
	}
	return live(buildProductKPIs(products))
}

func buildProductKPIs(products []inout.Product) inout.ProductKPIs {
	kpis := inout.ProductKPIs{TopPerformer: inout.TopPerformer{Name: "N/A"}}

	var top *inout.Product
	var units, stock int
	for i := range products {
		p := &products[i]
		if p.Status == ProductActive {
			kpis.TotalProducts++
		}
		if top == nil || p.Revenue > top.Revenue {
			top = p
		}
		margin := 100.0
		if p.ProfitMargin != nil {
			margin = *p.ProfitMargin
		}
		if margin < lowMarginThreshold {
			kpis.LowMarginCount++
		}
		units += p.UnitsSold
		stock += p.InventoryQuantity
	}

	if top != nil {
		if top.Name != "" {
			kpis.TopPerformer.Name = top.Name
		}
		kpis.TopPerformer.Revenue = top.Revenue
	}
	if stock > 0 {
		kpis.InventoryTurnover = roundTo(float64(units)/float64(stock), 1)
	}
	return kpis
}

var categoryLabels = map[string]string{
	"skincare":          "Soins de la peau",
	"soins de la peau":  "Soins de la peau",
	"makeup":            "Maquillage",
	"maquillage":        "Maquillage",
	"fragrance":         "Parfums",
	"parfums":           "Parfums",
	"haircare":          "Soins capillaires",
	"soins capillaires": "Soins capillaires",
	"bodycare":          "Soins du corps",
	"soins du corps":    "Soins du corps",
}

// CategoryLabel 分类的法语显示名，未知分类原样返回
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[strings.ToLower(category)]; ok {
		return label
	}
	return category
}

// CategoryData 按分类汇总营收，降序
func (s *AnalyticsService) CategoryData(ctx context.Context) Result[[]inout.CategorySlice] {
	products, err := s.fetchProducts(ctx)
	if err != nil {
		return fallback("CategoryData", err, MockCategoryData())
	}
	return live(aggregateCategories(products))
}

func aggregateCategories(products []inout.Product) []inout.CategorySlice {
	type bucket struct {
		key   string
		value float64
	}
	var buckets []*bucket
	byKey := make(map[string]*bucket)
	var grand float64
	for _, p := range products {
		cat := p.Category
		if cat == "" {
			cat = otherCategory
		}
		b, ok := byKey[cat]
		if !ok {
			b = &bucket{key: cat}
			byKey[cat] = b
			buckets = append(buckets, b)
		}
		b.value += p.Revenue
		grand += p.Revenue
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].value > buckets[j].value })

	out := make([]inout.CategorySlice, 0, len(buckets))
	for _, b := range buckets {
		pct := 0
		if grand > 0 {
			pct = round(b.value / grand * 100)
		}
		out = append(out, inout.CategorySlice{
			Name:       CategoryLabel(b.key),
			Value:      round(b.value),
			Percentage: pct,
		})
	}
	return out
}
