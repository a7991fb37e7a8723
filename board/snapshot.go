// Package board 管理涨跌排行快照：数据契约、加载与内存状态。
package board

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPeriod 默认选中的周期Tab
const DefaultPeriod = "5d"

// periodOrder Tab显示顺序
var periodOrder = []string{"5d", "10d", "20d"}

var periodLabels = map[string]string{
	"5d":  "5日",
	"10d": "10日",
	"20d": "20日",
}

// Periods 返回已知周期key，按Tab顺序
func Periods() []string {
	out := make([]string, len(periodOrder))
	copy(out, periodOrder)
	return out
}

// PeriodLabel 返回周期的显示标签，未知key原样返回
func PeriodLabel(key string) string {
	if label, ok := periodLabels[key]; ok {
		return label
	}
	return key
}

// SanitizePeriod 把请求参数收敛到已知周期，未知值回退默认周期
func SanitizePeriod(key string) string {
	if _, ok := periodLabels[key]; ok {
		return key
	}
	return DefaultPeriod
}

// Snapshot 上游批处理任务产出的完整快照。
// 加载成功后整体替换，不做增量合并。
type Snapshot struct {
	UpdateTime     string                `json:"update_time"`
	AnalysisDate   string                `json:"analysis_date,omitempty"`
	MarketOverview *MarketOverview       `json:"market_overview,omitempty"`
	Periods        map[string]PeriodData `json:"periods"`
}

// MarketOverview 市场概况，任一字段都可能缺失
type MarketOverview struct {
	TotalStocks *float64 `json:"total_stocks,omitempty"`
	UpStocks    *float64 `json:"up_stocks,omitempty"`
	DownStocks  *float64 `json:"down_stocks,omitempty"`
	LimitUp     *float64 `json:"limit_up,omitempty"`
	LimitDown   *float64 `json:"limit_down,omitempty"`
	AvgChange   *float64 `json:"avg_change,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
}

// PeriodData 单个周期的涨跌排行与统计
type PeriodData struct {
	Gainers    []Stock     `json:"gainers"`
	Losers     []Stock     `json:"losers"`
	Statistics *Statistics `json:"statistics,omitempty"`
}

// Statistics 周期统计，sample_size 与 total_stocks 二者取其一
type Statistics struct {
	SampleSize  *float64 `json:"sample_size,omitempty"`
	TotalStocks *float64 `json:"total_stocks,omitempty"`
	AvgChange   *float64 `json:"avg_change,omitempty"`
	UpRatio     *float64 `json:"up_ratio,omitempty"`
}

// Stock 排行榜单条
type Stock struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Price        float64 `json:"price"`
	PeriodChange float64 `json:"period_change"`
}

var updateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var chinaLoc = loadChinaLoc()

func loadChinaLoc() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}

// ParseUpdateTime 解析 update_time。日期分隔符统一为 '-'，按上海时间解析。
func ParseUpdateTime(s string) (time.Time, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
	for _, layout := range updateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, chinaLoc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析更新时间 %q", s)
}
