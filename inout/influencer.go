package inout

// InfluencerMetric 达人业绩卡片
type InfluencerMetric struct {
	Title      string  `json:"title"`
	Value      string  `json:"value"`
	Change     string  `json:"change"`
	ChangeType string  `json:"changeType"`
	Icon       string  `json:"icon"`
	IconColor  string  `json:"iconColor"`
	Badge      *string `json:"badge"`
}

type ChartPoint struct {
	Month      string `json:"month"`
	Sales      int    `json:"sales"`
	Commission int    `json:"commission"`
}

type TopProduct struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	ImageAlt          string  `json:"imageAlt"`
	Sales             int     `json:"sales"`
	CommissionPerUnit float64 `json:"commissionPerUnit"`
	TotalCommission   string  `json:"totalCommission"` // 已按 fr-FR 格式化
	Trend             string  `json:"trend"`
	TrendValue        string  `json:"trendValue"`
	Badge             *string `json:"badge"`
}

// Payout 佣金发放日历条目，Month 从 0 开始
type Payout struct {
	ID          int    `json:"id"`
	Month       int    `json:"month"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Method      string `json:"method"`
}

type EngagementMetric struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	Change     int    `json:"change"`
}

// GoalTargets 月度目标
type GoalTargets struct {
	Revenue   int `json:"revenue" form:"revenue" binding:"omitempty,gt=0"`
	Sales     int `json:"sales" form:"sales" binding:"omitempty,gt=0"`
	Customers int `json:"customers" form:"customers" binding:"omitempty,gt=0"`
}

type GoalBonus struct {
	Threshold int `json:"threshold"`
	Amount    int `json:"amount"`
}

type GoalItem struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Current   int     `json:"current"`
	Goal      int     `json:"goal"`
	Pct       float64 `json:"pct"`
	Remaining int     `json:"remaining"`
	PrevValue int     `json:"prevValue"`
	Color     string  `json:"color"`
}

type MonthlyGoals struct {
	OnTrack bool       `json:"onTrack"`
	Bonus   GoalBonus  `json:"bonus"`
	Items   []GoalItem `json:"items"`
}
