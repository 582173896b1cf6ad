package analytics_service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	groupSep    = "\u202f" // fr-FR 千位分隔符（窄不换行空格）
	currencySep = "\u00a0"
)

var monthLabels = [12]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Jun", "Jul", "Aoû", "Sep", "Oct", "Nov", "Déc"}

var frMonthsLong = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frMonthsShort = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// round 半数向正无穷取整
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// roundTo 按小数位取整，对应 parseFloat(x.toFixed(n))
func roundTo(x float64, places int) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	return v
}

// growth 前一期为 0 时返回 0
func growth(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// signedPct 形如 +25.0%
func signedPct(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64) + "%"
	if v >= 0 {
		return "+" + s
	}
	return s
}

func changeType(v float64) string {
	if v >= 0 {
		return "positive"
	}
	return "negative"
}

// groupInt 整数按 fr-FR 分组，如 12 450
func groupInt(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.Itoa(n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(groupSep)
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatEUR 欧元金额，无小数
func formatEUR(amount float64) string {
	return groupInt(int(math.Round(amount))) + currencySep + "€"
}

// plainNumber 对应 JS 数字转字符串
func plainNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isoString(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// 以下日期格式对应 fr-FR 本地化输出

func dateShort(t time.Time) string { // 22/12/2025
	return t.Format("02/01/2006")
}

func dateLong(t time.Time) string { // 5 octobre 2026
	return strconv.Itoa(t.Day()) + " " + frMonthsLong[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

func monthYear(t time.Time) string { // octobre 2026
	return frMonthsLong[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

func dayMonth(t time.Time) string { // 21 oct.
	return strconv.Itoa(t.Day()) + " " + frMonthsShort[t.Month()-1]
}

func dayMonthYear(t time.Time) string { // 28 févr. 2026
	return dayMonth(t) + " " + strconv.Itoa(t.Year())
}

// monthWindow 截至当前月的最近 n 个月，返回 "年-月" 键和标签
type monthSlot struct {
	Key   string
	Label string
	Start time.Time
}

func monthWindow(now time.Time, n int) []monthSlot {
	slots := make([]monthSlot, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		slots = append(slots, monthSlot{Key: monthKey(d), Label: monthLabels[d.Month()-1], Start: d})
	}
	return slots
}

func monthKey(t time.Time) string {
	return strconv.Itoa(t.Year()) + "-" + strconv.Itoa(int(t.Month())-1)
}

func strPtr(s string) *string { return &s }

func plural(n int, suffix string) string {
	if n > 1 {
		return suffix
	}
	return ""
}

func formatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
