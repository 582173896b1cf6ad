package analytics_service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"ojena-analytics/inout"
)

// DefaultBrand 无法识别品牌时的归属
const DefaultBrand = "ojena-beauty"

// BrandIDs 固定顺序
var BrandIDs = []string{"ojena-beauty", "luxe-cosmetics", "glow-essentials", "radiance-pro"}

var brandKeywords = map[string]string{
	"ojena beauty":    "ojena-beauty",
	"ojena":           "ojena-beauty",
	"luxe cosmetics":  "luxe-cosmetics",
	"luxe":            "luxe-cosmetics",
	"glow essentials": "glow-essentials",
	"glow":            "glow-essentials",
	"radiance pro":    "radiance-pro",
	"radiance":        "radiance-pro",
}

type brandMeta struct {
	Name    string
	Color   string
	Logo    string
	LogoAlt string
}

var brandCatalog = map[string]brandMeta{
	"ojena-beauty": {
		Name:    "OJENA Beauty",
		Color:   "#D4B5A0",
		Logo:    "https://img.rocket.new/generatedImages/rocket_gen_img_194dea694-1766536842466.png",
		LogoAlt: "OJENA Beauty logo featuring elegant gold lettering",
	},
	"luxe-cosmetics": {
		Name:    "Luxe Cosmetics",
		Color:   "#C9A876",
		Logo:    "https://img.rocket.new/generatedImages/rocket_gen_img_1acdf67b9-1766536843945.png",
		LogoAlt: "Luxe Cosmetics logo with sophisticated serif typography",
	},
	"glow-essentials": {
		Name:    "Glow Essentials",
		Color:   "#7A9471",
		Logo:    "https://img.rocket.new/generatedImages/rocket_gen_img_1bd45d002-1766536842789.png",
		LogoAlt: "Glow Essentials logo with modern sans-serif font in sage green",
	},
	"radiance-pro": {
		Name:    "Radiance Pro",
		Color:   "#B8956A",
		Logo:    "https://img.rocket.new/generatedImages/rocket_gen_img_12baaf56c-1766536843330.png",
		LogoAlt: "Radiance Pro logo with bold contemporary lettering in warm amber",
	},
}

// ResolveBrand 依次用 vendor、productType（小写）匹配品牌表，都不匹配时归入默认品牌
func ResolveBrand(vendor, productType string) string {
	if id, ok := brandKeywords[strings.ToLower(vendor)]; ok {
		return id
	}
	if id, ok := brandKeywords[strings.ToLower(productType)]; ok {
		return id
	}
	return DefaultBrand
}

func lineBrand(li lineItemNode) string {
	if li.Variant == nil || li.Variant.Product == nil {
		return DefaultBrand
	}
	return ResolveBrand(li.Variant.Product.Vendor, li.Variant.Product.ProductType)
}

func lineAmount(li lineItemNode) float64 {
	return li.Variant.price() * float64(li.Quantity)
}

func (s *AnalyticsService) brandOrders(ctx context.Context) ([]orderNode, error) {
	var resp ordersData[orderNode]
	if err := s.query(ctx, brandsRevenueQuery, map[string]interface{}{"first": maxRecords}, &resp); err != nil {
		return nil, err
	}
	orders := make([]orderNode, 0, len(resp.Orders.Edges))
	for _, e := range resp.Orders.Edges {
		orders = append(orders, e.Node)
	}
	return orders, nil
}

// BrandsRevenue 各品牌累计收入、占比与近6个月走势
func (s *AnalyticsService) BrandsRevenue(ctx context.Context) Result[inout.BrandsRevenue] {
	orders, err := s.brandOrders(ctx)
	if err != nil {
		return fallback("BrandsRevenue", err, MockBrandsRevenue())
	}
	data, ok := aggregateBrandsRevenue(orders, s.clock())
	if !ok {
		return fallback("BrandsRevenue", errNoData, MockBrandsRevenue())
	}
	return live(data)
}

func aggregateBrandsRevenue(orders []orderNode, now time.Time) (inout.BrandsRevenue, bool) {
	slots := monthWindow(now, 6)
	chart := make(map[string]map[string]float64, len(slots))
	for _, slot := range slots {
		chart[slot.Key] = make(map[string]float64, len(BrandIDs))
	}

	totals := make(map[string]float64, len(BrandIDs))
	for _, o := range orders {
		key := monthKey(o.CreatedAt.In(now.Location()))
		for _, e := range o.LineItems.Edges {
			brand := lineBrand(e.Node)
			amount := lineAmount(e.Node)
			totals[brand] += amount
			if m, ok := chart[key]; ok {
				m[brand] += amount
			}
		}
	}

	var grand float64
	for _, v := range totals {
		grand += v
	}
	if grand == 0 {
		return inout.BrandsRevenue{}, false
	}

	brands := make([]inout.Brand, 0, len(BrandIDs))
	for _, id := range BrandIDs {
		meta := brandCatalog[id]
		revenue := round(totals[id])
		contribution := round(float64(revenue) / grand * 100)
		brands = append(brands, inout.Brand{
			ID:           id,
			Name:         meta.Name,
			Color:        meta.Color,
			Logo:         meta.Logo,
			LogoAlt:      meta.LogoAlt,
			Revenue:      revenue,
			Contribution: contribution,
		})
	}
	sort.SliceStable(brands, func(i, j int) bool { return brands[i].Revenue > brands[j].Revenue })

	points := make([]inout.BrandMonthPoint, 0, len(slots))
	for _, slot := range slots {
		p := inout.BrandMonthPoint{Month: slot.Label}
		for _, id := range BrandIDs {
			p.Values = append(p.Values, inout.BrandValue{Key: id, Value: round(chart[slot.Key][id])})
		}
		points = append(points, p)
	}

	return inout.BrandsRevenue{Brands: brands, RevenueChartData: points}, true
}

// MonthlyComparison 近6个月 × 4个品牌 的收入、订单数、佣金
func (s *AnalyticsService) MonthlyComparison(ctx context.Context, rate float64) Result[[]inout.BrandMonthPoint] {
	rate = rateOr(rate, RevenueCommissionRate)
	orders, err := s.brandOrders(ctx)
	if err != nil {
		return fallback("MonthlyComparison", err, MockMonthlyComparison())
	}
	data, ok := aggregateMonthlyComparison(orders, s.clock(), rate)
	if !ok {
		return fallback("MonthlyComparison", errNoData, MockMonthlyComparison())
	}
	return live(data)
}

type brandMonth struct {
	revenue    float64
	commission float64
	orders     int
}

func aggregateMonthlyComparison(orders []orderNode, now time.Time, rate float64) ([]inout.BrandMonthPoint, bool) {
	slots := monthWindow(now, 6)
	chart := make(map[string]map[string]*brandMonth, len(slots))
	for _, slot := range slots {
		m := make(map[string]*brandMonth, len(BrandIDs))
		for _, id := range BrandIDs {
			m[id] = &brandMonth{}
		}
		chart[slot.Key] = m
	}

	// 同一订单在同一品牌同一月只计一次
	counted := make(map[string]struct{})
	for i, o := range orders {
		key := monthKey(o.CreatedAt.In(now.Location()))
		month, ok := chart[key]
		if !ok {
			continue
		}
		orderID := o.ID
		if orderID == "" {
			orderID = "#" + strconv.Itoa(i)
		}
		for _, e := range o.LineItems.Edges {
			brand := lineBrand(e.Node)
			amount := lineAmount(e.Node)
			bm := month[brand]
			bm.revenue += amount
			bm.commission += amount * rate

			dedupe := key + "-" + brand + "-" + orderID
			if _, seen := counted[dedupe]; !seen {
				bm.orders++
				counted[dedupe] = struct{}{}
			}
		}
	}

	hasData := false
	points := make([]inout.BrandMonthPoint, 0, len(slots))
	for _, slot := range slots {
		p := inout.BrandMonthPoint{Month: slot.Label}
		month := chart[slot.Key]
		for _, id := range BrandIDs {
			p.Values = append(p.Values, inout.BrandValue{Key: id + "_revenue", Value: round(month[id].revenue)})
		}
		for _, id := range BrandIDs {
			p.Values = append(p.Values, inout.BrandValue{Key: id + "_orders", Value: month[id].orders})
		}
		for _, id := range BrandIDs {
			p.Values = append(p.Values, inout.BrandValue{Key: id + "_commission", Value: round(month[id].commission)})
		}
		for _, id := range BrandIDs {
			if p.Get(id+"_revenue") > 0 {
				hasData = true
			}
		}
		points = append(points, p)
	}
	return points, hasData
}
