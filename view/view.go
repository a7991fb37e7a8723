package view

import (
	"trendboard/board"
)

// LoadErrorMessage 加载失败时四个区域统一显示的提示
const LoadErrorMessage = "数据加载失败，请稍后刷新"

// topRankCount 前几名带高亮标记
const topRankCount = 3

// PageView 整页视图模型。Error 非空时四个区域只显示错误信息，
// 不展示任何旧数据；NoData 表示从未成功加载过快照。
type PageView struct {
	UpdateTime string
	Error      string
	NoData     bool
	Tabs       []TabView
	Period     string
	Badge      string
	Overview   *OverviewView
	Gainers    RankingView
	Losers     RankingView
	Stats      *StatsView
}

// TabView 周期Tab
type TabView struct {
	Key    string
	Label  string
	Active bool
}

// OverviewView 市场概况区域，七个固定字段，缺失值已替换为占位符
type OverviewView struct {
	TotalStocks string
	UpStocks    string
	DownStocks  string
	LimitUp     string
	LimitDown   string
	AvgChange   string
	AvgClass    string
	TotalAmount string
}

// RankingView 涨幅榜或跌幅榜。Empty 表示当前周期整体缺失。
type RankingView struct {
	Empty bool
	Rows  []RankRow
}

// RankRow 排行单行
type RankRow struct {
	Rank   int
	Top    bool
	Name   string
	Symbol string
	Price  string
	Change string
	Class  string
}

// StatsView 周期统计区域
type StatsView struct {
	PeriodLabel string
	SampleSize  string
	AvgChange   string
	AvgClass    string
	UpRatio     string
}

// BuildPage 组装整页视图。period 必须是已知周期key。
func BuildPage(snap *board.Snapshot, loadErr error, period string) *PageView {
	pv := &PageView{
		UpdateTime: placeholder,
		Period:     period,
		Badge:      board.PeriodLabel(period),
		Tabs:       buildTabs(period),
	}

	if loadErr != nil {
		pv.Error = LoadErrorMessage
		return pv
	}
	if snap == nil {
		pv.NoData = true
		return pv
	}

	if snap.UpdateTime != "" {
		pv.UpdateTime = snap.UpdateTime
	}
	pv.Overview = buildOverview(snap.MarketOverview)

	pd, ok := snap.Periods[period]
	if !ok {
		pv.Gainers = RankingView{Empty: true}
		pv.Losers = RankingView{Empty: true}
		return pv
	}
	pv.Gainers = RankingView{Rows: BuildRankingRows(pd.Gainers, true)}
	pv.Losers = RankingView{Rows: BuildRankingRows(pd.Losers, false)}
	pv.Stats = buildStats(pd.Statistics, board.PeriodLabel(period))
	return pv
}

func buildTabs(active string) []TabView {
	keys := board.Periods()
	tabs := make([]TabView, 0, len(keys))
	for _, key := range keys {
		tabs = append(tabs, TabView{
			Key:    key,
			Label:  board.PeriodLabel(key),
			Active: key == active,
		})
	}
	return tabs
}

func buildOverview(mo *board.MarketOverview) *OverviewView {
	if mo == nil {
		return nil
	}
	ov := &OverviewView{
		TotalStocks: orDash(mo.TotalStocks),
		UpStocks:    orDash(mo.UpStocks),
		DownStocks:  orDash(mo.DownStocks),
		LimitUp:     orDash(mo.LimitUp),
		LimitDown:   orDash(mo.LimitDown),
		AvgChange:   placeholder,
		TotalAmount: orDash(mo.TotalAmount),
	}
	if mo.AvgChange != nil {
		ov.AvgChange = signedPercent(*mo.AvgChange)
		ov.AvgClass = changeClass(*mo.AvgChange)
	}
	return ov
}

// BuildRankingRows 生成排行行。行数由上游数据决定，不设上限；
// 涨幅榜变化值补 '+'，跌幅榜按上游原样展示符号。
func BuildRankingRows(stocks []board.Stock, gainers bool) []RankRow {
	rows := make([]RankRow, 0, len(stocks))
	for i, s := range stocks {
		change := plainNumber(s.PeriodChange) + "%"
		if gainers && s.PeriodChange >= 0 {
			change = "+" + change
		}
		rows = append(rows, RankRow{
			Rank:   i + 1,
			Top:    i < topRankCount,
			Name:   s.Name,
			Symbol: s.Symbol,
			Price:  formatPrice(s.Price),
			Change: change,
			Class:  changeClass(s.PeriodChange),
		})
	}
	return rows
}

func buildStats(st *board.Statistics, label string) *StatsView {
	if st == nil {
		return nil
	}
	sv := &StatsView{
		PeriodLabel: label,
		SampleSize:  placeholder,
		AvgChange:   placeholder,
		UpRatio:     orDash(st.UpRatio) + "%",
	}
	switch {
	case st.SampleSize != nil:
		sv.SampleSize = orDash(st.SampleSize)
	case st.TotalStocks != nil:
		sv.SampleSize = orDash(st.TotalStocks)
	}
	if st.AvgChange != nil {
		sv.AvgChange = signedPercent(*st.AvgChange)
		sv.AvgClass = changeClass(*st.AvgChange)
	}
	return sv
}
