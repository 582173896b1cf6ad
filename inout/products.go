package inout

// Product 商品分析行
type Product struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	SKU               string   `json:"sku"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
	ImageAlt          string   `json:"imageAlt"`
	Price             float64  `json:"price"`
	Cost              float64  `json:"cost,omitempty"`
	ProfitMargin      *float64 `json:"profitMargin,omitempty"` // 百分比，缺省视为未知
	Revenue           float64  `json:"revenue"`
	UnitsSold         int      `json:"unitsSold"`
	InventoryQuantity int      `json:"inventoryQuantity"`
	Status            string   `json:"status"` // active | low-stock | out-of-stock | inactive
}

type TopPerformer struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type ProductKPIs struct {
	TotalProducts     int          `json:"totalProducts"`
	TopPerformer      TopPerformer `json:"topPerformer"`
	LowMarginCount    int          `json:"lowMarginCount"`
	InventoryTurnover float64      `json:"inventoryTurnover"`
}

type CategorySlice struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}
