package analytics_service

import (
	"sort"
	"strconv"
	"time"

	"ojena-analytics/inout"
)

// 模拟数据：每个聚合函数一份，已是最终展示形态，实时查询失败时返回

func MockExecutiveKPIs() []inout.MetricCard {
	return []inout.MetricCard{
		{
			Title:         "Revenus totaux",
			Value:         strPtr("487 250 €"),
			Change:        "+18,5%",
			ChangeType:    "positive",
			SparklineData: []int{45000, 52000, 48000, 61000, 58000, 67000, 72000},
			Icon:          "TrendingUp",
			IconColor:     "var(--color-success)",
		},
		{
			Title:         "Commissions versées",
			Value:         strPtr("90 141 €"),
			Change:        "+18,5%",
			ChangeType:    "positive",
			SparklineData: []int{8325, 9620, 8880, 11285, 10730, 12395, 13320},
			Icon:          "DollarSign",
			IconColor:     "var(--color-accent)",
		},
		{
			Title:         "Commandes actives",
			Value:         strPtr("1 247"),
			Change:        "+5,8%",
			ChangeType:    "positive",
			SparklineData: []int{180, 195, 210, 225, 240, 255, 268},
			Icon:          "ShoppingCart",
			IconColor:     "var(--color-primary)",
		},
		{
			Title:         "Croissance marques",
			Change:        "+3,2%",
			ChangeType:    "positive",
			SparklineData: []int{8, 12, 15, 18, 21, 23, 25},
			Icon:          "Sparkles",
			IconColor:     "var(--color-warning)",
		},
	}
}

func brandPoint(month string, values ...int) inout.BrandMonthPoint {
	p := inout.BrandMonthPoint{Month: month}
	for i, id := range BrandIDs {
		p.Values = append(p.Values, inout.BrandValue{Key: id, Value: values[i]})
	}
	return p
}

func MockBrandsRevenue() inout.BrandsRevenue {
	return inout.BrandsRevenue{
		Brands: []inout.Brand{
			{
				ID:           "ojena-beauty",
				Name:         "OJENA Beauty",
				Color:        "#D4B5A0",
				Logo:         "https://img.rocket.new/generatedImages/rocket_gen_img_194dea694-1766536842466.png",
				LogoAlt:      "OJENA Beauty logo",
				Revenue:      185420,
				Contribution: 38,
				Growth:       22.5,
			},
			{
				ID:           "luxe-cosmetics",
				Name:         "Luxe Cosmetics",
				Color:        "#C9A876",
				Logo:         "https://img.rocket.new/generatedImages/rocket_gen_img_1acdf67b9-1766536843945.png",
				LogoAlt:      "Luxe Cosmetics logo",
				Revenue:      142850,
				Contribution: 29,
				Growth:       18.3,
			},
			{
				ID:           "glow-essentials",
				Name:         "Glow Essentials",
				Color:        "#7A9471",
				Logo:         "https://img.rocket.new/generatedImages/rocket_gen_img_1bd45d002-1766536842789.png",
				LogoAlt:      "Glow Essentials logo",
				Revenue:      98760,
				Contribution: 20,
				Growth:       15.7,
			},
			{
				ID:           "radiance-pro",
				Name:         "Radiance Pro",
				Color:        "#B8956A",
				Logo:         "https://img.rocket.new/generatedImages/rocket_gen_img_12baaf56c-1766536843330.png",
				LogoAlt:      "Radiance Pro logo",
				Revenue:      60220,
				Contribution: 13,
				Growth:       -3.2,
			},
		},
		RevenueChartData: []inout.BrandMonthPoint{
			brandPoint("Jan", 142000, 118000, 82000, 58000),
			brandPoint("Fév", 148000, 122000, 85000, 59000),
			brandPoint("Mar", 156000, 128000, 88000, 61000),
			brandPoint("Avr", 165000, 132000, 91000, 60000),
			brandPoint("Mai", 172000, 136000, 94000, 59500),
			brandPoint("Juin", 185420, 142850, 98760, 60220),
		},
	}
}

// comparisonPoint 每个品牌依次为 revenue、orders、commission 四列
func comparisonPoint(month string, revenue, orders, commission [4]int) inout.BrandMonthPoint {
	p := inout.BrandMonthPoint{Month: month}
	for _, col := range []struct {
		suffix string
		values [4]int
	}{{"_revenue", revenue}, {"_orders", orders}, {"_commission", commission}} {
		for i, id := range BrandIDs {
			p.Values = append(p.Values, inout.BrandValue{Key: id + col.suffix, Value: col.values[i]})
		}
	}
	return p
}

func MockMonthlyComparison() []inout.BrandMonthPoint {
	return []inout.BrandMonthPoint{
		comparisonPoint("Jan", [4]int{142000, 118000, 82000, 58000}, [4]int{890, 745, 520, 365}, [4]int{21300, 17700, 12300, 8700}),
		comparisonPoint("Fév", [4]int{148000, 122000, 85000, 59000}, [4]int{925, 768, 538, 372}, [4]int{22200, 18300, 12750, 8850}),
		comparisonPoint("Mar", [4]int{156000, 128000, 88000, 61000}, [4]int{975, 805, 555, 385}, [4]int{23400, 19200, 13200, 9150}),
		comparisonPoint("Avr", [4]int{165000, 132000, 91000, 60000}, [4]int{1032, 830, 573, 378}, [4]int{24750, 19800, 13650, 9000}),
		comparisonPoint("Mai", [4]int{172000, 136000, 94000, 59500}, [4]int{1075, 855, 592, 375}, [4]int{25800, 20400, 14100, 8925}),
		comparisonPoint("Juin", [4]int{185420, 142850, 98760, 60220}, [4]int{1160, 898, 622, 380}, [4]int{27813, 21428, 14814, 9033}),
	}
}

func MockAlerts() []inout.Alert {
	return []inout.Alert{
		{
			ID:       1,
			Severity: "critical",
			Title:    "Stock critique",
			Message:  "OJENA Beauty - Sérum Éclat en rupture imminente (12 unités restantes)",
			Time:     "Il y a 15 min",
		},
		{
			ID:       2,
			Severity: "warning",
			Title:    "Retard de livraison",
			Message:  "23 commandes Luxe Cosmetics dépassent le délai standard de 48h",
			Time:     "Il y a 1 heure",
		},
		{
			ID:       3,
			Severity: "info",
			Title:    "Nouveau record",
			Message:  "Glow Essentials atteint 100K€ de revenus mensuels pour la première fois",
			Time:     "Il y a 3 heures",
		},
	}
}

func MockInfluencerMetrics() []inout.InfluencerMetric {
	return []inout.InfluencerMetric{
		{
			Title:      "Revenu personnel",
			Value:      "45 280 €",
			Change:     "+18,5%",
			ChangeType: "positive",
			Icon:       "TrendingUp",
			IconColor:  "var(--color-primary)",
			Badge:      strPtr("🎯 Objectif atteint"),
		},
		{
			Title:      "Commission gagnée",
			Value:      "12 450 €",
			Change:     "+22,3%",
			ChangeType: "positive",
			Icon:       "DollarSign",
			IconColor:  "var(--color-accent)",
		},
		{
			Title:      "Taux de conversion",
			Value:      "4,8%",
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

func MockChartData() []inout.ChartPoint {
	return []inout.ChartPoint{
		{Month: "Juil", Sales: 8500, Commission: 15},
		{Month: "Août", Sales: 12300, Commission: 18},
		{Month: "Sep", Sales: 15800, Commission: 20},
		{Month: "Oct", Sales: 18200, Commission: 22},
		{Month: "Nov", Sales: 22400, Commission: 25},
		{Month: "Déc", Sales: 28600, Commission: 28},
	}
}

func MockTopProducts() []inout.TopProduct {
	return []inout.TopProduct{
		{
			ID:                1,
			Name:              "Sérum Éclat Vitamine C",
			Image:             "https://images.unsplash.com/photo-1655534077835-8a8b30222acd",
			ImageAlt:          "Serum bottle",
			Sales:             342,
			CommissionPerUnit: 8.5,
			TotalCommission:   "2 907",
			Trend:             "up",
			TrendValue:        "+28%",
			Badge:             strPtr("Top 1"),
		},
		{
			ID:                2,
			Name:              "Crème Hydratante Luxe",
			Image:             "https://images.unsplash.com/photo-1681810890895-fc6c372685a5",
			ImageAlt:          "Cream jar",
			Sales:             298,
			CommissionPerUnit: 12.0,
			TotalCommission:   "3 576",
			Trend:             "up",
			TrendValue:        "+15%",
			Badge:             strPtr("Top 2"),
		},
		{
			ID:                3,
			Name:              "Masque Purifiant Argile",
			Image:             "https://images.unsplash.com/photo-1622910076328-4bb120645672",
			ImageAlt:          "Clay mask",
			Sales:             256,
			CommissionPerUnit: 6.5,
			TotalCommission:   "1 664",
			Trend:             "up",
			TrendValue:        "+12%",
			Badge:             strPtr("Top 3"),
		},
		{
			ID:                4,
			Name:              "Huile Réparatrice Nuit",
			Image:             "https://images.unsplash.com/photo-1714023504828-307b6c854575",
			ImageAlt:          "Night oil",
			Sales:             187,
			CommissionPerUnit: 10.0,
			TotalCommission:   "1 870",
			Trend:             "down",
			TrendValue:        "-5%",
		},
	}
}

// MockPayoutSchedule 日期随当前月份变化
func MockPayoutSchedule(now time.Time) []inout.Payout {
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return []inout.Payout{
		{
			ID:          1,
			Month:       int(now.Month()) - 1,
			Date:        "15 " + monthYear(now),
			Amount:      "12 450",
			Status:      "processing",
			Description: "Commission " + monthYear(now),
			Method:      payoutMethod,
		},
		{
			ID:          2,
			Month:       int(now.Month()) - 1,
			Date:        "31 " + monthYear(now),
			Amount:      "8 200",
			Status:      "pending",
			Description: "Bonus de fin de mois",
			Method:      payoutMethod,
		},
		{
			ID:          3,
			Month:       int(next.Month()) - 1,
			Date:        "15 " + monthYear(next),
			Amount:      "0",
			Status:      "scheduled",
			Description: "Commission " + monthYear(next),
			Method:      payoutMethod,
		},
	}
}

func MockEngagementMetrics() []inout.EngagementMetric {
	return []inout.EngagementMetric{
		{ID: 1, Label: "Clics sur liens", Value: "2 847", Percentage: 85, Color: "var(--color-primary)", Icon: "MousePointerClick", Change: 12},
		{ID: 2, Label: "Partages de contenu", Value: "1 523", Percentage: 68, Color: "var(--color-accent)", Icon: "Share2", Change: 8},
		{ID: 3, Label: "Commentaires", Value: "892", Percentage: 45, Color: "var(--color-success)", Icon: "MessageCircle", Change: -3},
	}
}

func MockMonthlyGoals() inout.MonthlyGoals {
	return inout.MonthlyGoals{
		OnTrack: true,
		Bonus:   inout.GoalBonus{Threshold: 90, Amount: 2000},
		Items: []inout.GoalItem{
			{ID: "revenue", Label: "Chiffre d'affaires", Current: 45280, Goal: 50000, Pct: 90.5, Remaining: 4720, PrevValue: 38000, Color: "primary"},
			{ID: "sales", Label: "Nombre de ventes", Current: 1083, Goal: 1200, Pct: 90.25, Remaining: 117, PrevValue: 950, Color: "accent"},
			{ID: "customers", Label: "Nouveaux clients", Current: 287, Goal: 300, Pct: 95.6, Remaining: 13, PrevValue: 245, Color: "success"},
		},
	}
}

func MockFinancialMetrics() []inout.FinancialMetric {
	return []inout.FinancialMetric{
		{Title: "Commissions Totales Dues", Value: "127 450€", Subtitle: "+12,5% vs mois dernier", Icon: "DollarSign", Trend: "up", TrendValue: "+12,5%", Status: "primary"},
		{Title: "Paiements Traités", Value: "98 320€", Subtitle: "156 transactions", Icon: "CheckCircle", Trend: "up", TrendValue: "+8,3%", Status: "success"},
		{Title: "Paiements en Attente", Value: "29 130€", Subtitle: "42 transactions", Icon: "Clock", Trend: "neutral", TrendValue: "0%", Status: "warning"},
		{Title: "Taux de Commission Moyen", Value: "18,5%", Subtitle: "Tous types confondus", Icon: "Percent", Trend: "up", TrendValue: "+0,8%", Status: "default"},
		{Title: "Retards de Paiement", Value: "3", Subtitle: "2 450€ en retard", Icon: "AlertTriangle", Trend: "down", TrendValue: "-2", Status: "error"},
		{Title: "Prochain Paiement", Value: "28 Fév", Subtitle: "15 paiements planifiés", Icon: "Calendar", Trend: "neutral", TrendValue: "7 jours", Status: "default"},
	}
}

func MockTimelineData() []inout.TimelinePoint {
	return []inout.TimelinePoint{
		{Month: "Jan", Influencer: 45000, Affiliate: 28000, Bonus: 12000},
		{Month: "Fév", Influencer: 52000, Affiliate: 31000, Bonus: 15000},
		{Month: "Mar", Influencer: 48000, Affiliate: 29000, Bonus: 13000},
		{Month: "Avr", Influencer: 61000, Affiliate: 35000, Bonus: 18000},
		{Month: "Mai", Influencer: 58000, Affiliate: 33000, Bonus: 16000},
		{Month: "Jun", Influencer: 67000, Affiliate: 38000, Bonus: 21000},
		{Month: "Jul", Influencer: 72000, Affiliate: 42000, Bonus: 24000},
		{Month: "Aoû", Influencer: 69000, Affiliate: 40000, Bonus: 22000},
		{Month: "Sep", Influencer: 75000, Affiliate: 44000, Bonus: 26000},
		{Month: "Oct", Influencer: 81000, Affiliate: 47000, Bonus: 28000},
		{Month: "Nov", Influencer: 78000, Affiliate: 45000, Bonus: 27000},
		{Month: "Déc", Influencer: 85000, Affiliate: 49000, Bonus: 31000},
	}
}

func MockTransactions() []inout.Transaction {
	return []inout.Transaction{
		{ID: 1, Date: "22/12/2025", Name: "Sophie Martin", Brand: "OJENA Beauty", Type: TypeInfluencer, Amount: 2450, Status: "paid", AvatarAlt: "Sophie Martin"},
		{ID: 2, Date: "21/12/2025", Name: "Lucas Dubois", Brand: "Luxe Cosmetics", Type: TypeAffiliate, Amount: 1820, Status: "processing", AvatarAlt: "Lucas Dubois"},
		{ID: 3, Date: "20/12/2025", Name: "Emma Rousseau", Brand: "Glow Essentials", Type: TypeBonus, Amount: 3200, Status: "paid", AvatarAlt: "Emma Rousseau"},
		{ID: 4, Date: "19/12/2025", Name: "Thomas Bernard", Brand: "Radiance Pro", Type: TypeInfluencer, Amount: 1950, Status: "pending", AvatarAlt: "Thomas Bernard"},
		{ID: 5, Date: "18/12/2025", Name: "Chloé Laurent", Brand: "OJENA Beauty", Type: TypeAffiliate, Amount: 1450, Status: "disputed", AvatarAlt: "Chloé Laurent"},
	}
}

func MockPaymentQueue() []inout.PaymentQueueEntry {
	return []inout.PaymentQueueEntry{
		{ID: 1, Name: "Sophie Martin", Brand: "OJENA Beauty", Amount: 8450, DueDate: "28 fév. 2026", Status: "scheduled", Priority: "high", Transactions: 24, AvatarAlt: "Sophie Martin"},
		{ID: 2, Name: "Lucas Dubois", Brand: "Luxe Cosmetics", Amount: 6720, DueDate: "28 fév. 2026", Status: "scheduled", Priority: "high", Transactions: 18, AvatarAlt: "Lucas Dubois"},
		{ID: 3, Name: "Emma Rousseau", Brand: "Glow Essentials", Amount: 5890, DueDate: "2 mars 2026", Status: "pending", Priority: "medium", Transactions: 15, AvatarAlt: "Emma Rousseau"},
		{ID: 4, Name: "Thomas Bernard", Brand: "Radiance Pro", Amount: 4320, DueDate: "5 mars 2026", Status: "pending", Priority: "medium", Transactions: 12, AvatarAlt: "Thomas Bernard"},
		{ID: 5, Name: "Chloé Laurent", Brand: "OJENA Beauty", Amount: 3650, DueDate: "10 mars 2026", Status: "pending", Priority: "low", Transactions: 9, AvatarAlt: "Chloé Laurent"},
	}
}

func MockCategoryData() []inout.CategorySlice {
	return []inout.CategorySlice{
		{Name: "Soins de la peau", Value: 512200, Percentage: 42},
		{Name: "Maquillage", Value: 435000, Percentage: 36},
		{Name: "Parfums", Value: 156300, Percentage: 13},
		{Name: "Soins capillaires", Value: 64200, Percentage: 5},
		{Name: "Soins du corps", Value: 52300, Percentage: 4},
	}
}

func MockProductKPIs() inout.ProductKPIs {
	return inout.ProductKPIs{
		TotalProducts:     247,
		TopPerformer:      inout.TopPerformer{Name: "Sérum Éclat Vitamine C", Revenue: 145800},
		LowMarginCount:    18,
		InventoryTurnover: 4.8,
	}
}

// MockProducts 库存数与销量相同，毛利未知
func MockProducts() []inout.Product {
	rows := []struct {
		id, name, sku, placeholder, alt string
		revenue                         float64
		units                           int
	}{
		{"mock-1", "PSB Star Premium Wig", "PSB-001", "PSB+Star", "PSB Star Premium Wig", 45600, 152},
		{"mock-2", "Diamond 75016 Collection", "DIA-75016", "Diamond+75016", "Diamond 75016 Collection", 38400, 128},
		{"mock-3", "Luxury Lace Front", "LUX-001", "Luxury+Lace", "Luxury Lace Front Wig", 28500, 95},
		{"mock-4", "Natural Curls Pro", "NAT-002", "Natural+Curls", "Natural Curls Pro Wig", 22800, 76},
		{"mock-5", "Silk Touch Deluxe", "SLK-003", "Silk+Touch", "Silk Touch Deluxe Wig", 19200, 64},
		{"mock-6", "Glamour Wave", "GLM-004", "Glamour+Wave", "Glamour Wave Wig", 16500, 55},
		{"mock-7", "Elegant Bob Style", "ELG-005", "Elegant+Bob", "Elegant Bob Style Wig", 13800, 46},
		{"mock-8", "Vintage Classic", "VIN-006", "Vintage+Classic", "Vintage Classic Wig", 11400, 38},
	}
	out := make([]inout.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, inout.Product{
			ID:                r.id,
			Name:              r.name,
			SKU:               r.sku,
			Category:          "Wigs",
			Image:             "https://via.placeholder.com/300x300?text=" + r.placeholder,
			ImageAlt:          r.alt,
			Price:             300,
			Revenue:           r.revenue,
			UnitsSold:         r.units,
			InventoryQuantity: r.units,
			Status:            ProductActive,
		})
	}
	return out
}

// MockOrders 近60天内的50笔订单，按日期倒序，结果确定
func MockOrders(now time.Time) []inout.Order {
	orders := make([]inout.Order, 0, 50)
	for i := 0; i < 50; i++ {
		status := "PAID"
		if i%5 == 0 {
			status = "PENDING"
		}
		fulfillment := "FULFILLED"
		if i%3 == 0 {
			fulfillment = "UNFULFILLED"
		}
		orders = append(orders, inout.Order{
			ID:          "mock-order-" + strconv.Itoa(i+1),
			OrderNumber: "#" + strconv.Itoa(1000+i),
			Date:        now.Add(-time.Duration((i*7)%60) * day),
			Total:       float64(150 + (i*173)%850),
			Currency:    "EUR",
			Status:      status,
			Fulfillment: fulfillment,
		})
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date.After(orders[j].Date) })
	return orders
}
