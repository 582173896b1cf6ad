package inout

import "time"

type Order struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Date        time.Time `json:"date"`
	Total       float64   `json:"total"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Fulfillment string    `json:"fulfillment"`
}

type OrderMetrics struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	CommissionsPaid   float64 `json:"commissionsPaid"`
	ActiveOrders      int     `json:"activeOrders"`
}

type OrdersReq struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=250"`
}

// RateReq 可选的佣金比例覆盖
type RateReq struct {
	Rate float64 `form:"rate" binding:"omitempty,gt=0,lte=1"`
}
