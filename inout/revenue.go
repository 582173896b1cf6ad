package inout

// FinancialMetric 佣金中心财务卡片
type FinancialMetric struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Subtitle   string `json:"subtitle"`
	Icon       string `json:"icon"`
	Trend      string `json:"trend"` // up | down | neutral
	TrendValue string `json:"trendValue"`
	Status     string `json:"status"`
}

type TimelinePoint struct {
	Month      string `json:"month"`
	Influencer int    `json:"influencer"`
	Affiliate  int    `json:"affiliate"`
	Bonus      int    `json:"bonus"`
}

// Transaction 佣金流水；实时数据的 ID 为订单 gid 字符串，模拟数据为数字
type Transaction struct {
	ID        interface{} `json:"id"`
	Date      string      `json:"date"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand"`
	Type      string      `json:"type"`
	Amount    int         `json:"amount"`
	Status    string      `json:"status"`
	Avatar    *string     `json:"avatar"`
	AvatarAlt string      `json:"avatarAlt"`
}

// TransactionFilter 佣金流水过滤条件，空值与 all 不过滤
type TransactionFilter struct {
	CommissionType string `json:"commissionType" form:"commissionType" binding:"omitempty,oneof=all influencer affiliate bonus"`
	PaymentStatus  string `json:"paymentStatus" form:"paymentStatus" binding:"omitempty,oneof=all paid pending processing disputed"`
}

type PaymentQueueEntry struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Amount       int     `json:"amount"`
	DueDate      string  `json:"dueDate"`
	Transactions int     `json:"transactions"`
	Avatar       *string `json:"avatar"`
	AvatarAlt    string  `json:"avatarAlt"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
}
