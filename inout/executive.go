package inout

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MetricCard 执行概览 KPI 卡片
type MetricCard struct {
	Title         string  `json:"title"`
	Value         *string `json:"value"` // 品牌增长卡片由页面补全，保持 null
	Change        string  `json:"change"`
	ChangeType    string  `json:"changeType"`
	SparklineData []int   `json:"sparklineData"`
	Icon          string  `json:"icon"`
	IconColor     string  `json:"iconColor"`
}

type Brand struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	Logo         string  `json:"logo"`
	LogoAlt      string  `json:"logoAlt"`
	Revenue      int     `json:"revenue"`
	Contribution int     `json:"contribution"`
	Growth       float64 `json:"growth"`
}

// BrandValue 一个月份点上的一列
type BrandValue struct {
	Key   string
	Value int
}

// BrandMonthPoint 序列化为 {"month": "Jan", "<key>": n, ...}，列顺序保持插入顺序
type BrandMonthPoint struct {
	Month  string
	Values []BrandValue
}

// Get 按列名取值
func (p BrandMonthPoint) Get(key string) int {
	for _, v := range p.Values {
		if v.Key == key {
			return v.Value
		}
	}
	return 0
}

func (p BrandMonthPoint) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	month, err := json.Marshal(p.Month)
	if err != nil {
		return nil, err
	}
	b.WriteString(`{"month":`)
	b.Write(month)
	for _, v := range p.Values {
		key, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		b.WriteByte(',')
		b.Write(key)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v.Value))
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func (p *BrandMonthPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Month = ""
	p.Values = nil
	if m, ok := raw["month"]; ok {
		if err := json.Unmarshal(m, &p.Month); err != nil {
			return fmt.Errorf("month: %w", err)
		}
		delete(raw, "month")
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var n int
		if err := json.Unmarshal(raw[k], &n); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		p.Values = append(p.Values, BrandValue{Key: k, Value: n})
	}
	return nil
}

// BrandsRevenue 品牌排行与近6个月收入走势
type BrandsRevenue struct {
	Brands           []Brand           `json:"brands"`
	RevenueChartData []BrandMonthPoint `json:"revenueChartData"`
}

type Alert struct {
	ID       int    `json:"id"`
	Severity string `json:"severity"` // critical | warning | info
	Title    string `json:"title"`
	Message  string `json:"message"`
	Time     string `json:"time"`
}
