// Package view 把快照组装成页面视图并渲染为HTML。
package view

import (
	"math"
	"strconv"
	"strings"
)

// placeholder 缺省占位符，所有可缺失字段统一走 orDash
const placeholder = "-"

// orDash 统一的值或占位策略：缺失显示 "-"
func orDash(v *float64) string {
	if v == nil {
		return placeholder
	}
	return formatNumber(*v)
}

// formatNumber 数字展示：最多保留两位小数，整数部分千分位分组
func formatNumber(v float64) string {
	s := plainNumber(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// plainNumber 最短表示，最多两位小数，不分组
func plainNumber(v float64) string {
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPrice 价格固定两位小数
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// signedPercent 涨跌幅展示：非负补 '+'，负值保留自身符号
func signedPercent(v float64) string {
	if v >= 0 {
		return "+" + plainNumber(v) + "%"
	}
	return plainNumber(v) + "%"
}

// changeClass 涨跌样式：非负为 up，负为 down
func changeClass(v float64) string {
	if v >= 0 {
		return "up"
	}
	return "down"
}
