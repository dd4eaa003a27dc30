// Package timex 提供仪表盘聚合所需的日期与时长辅助函数。
// 所有函数都是纯函数，时间参数由调用方显式传入。
package timex

import (
	"fmt"
	"time"
)

// Day 将一个时间截断到当天的零点（保留原时区）。
// 所有按天聚合的比较都应先经过这个函数。
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay 判断两个时间是否落在同一个自然日。
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// SplitMinutes 将总分钟数拆分为小时和剩余分钟。
func SplitMinutes(total int) (hours, minutes int) {
	return total / 60, total % 60
}

// FormatMinutes 将分钟数格式化为人类可读的时长。
// 45 -> "45min"；120 -> "2h"；63 -> "1h03min"；负数按0处理。
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0min"
	}
	h, m := SplitMinutes(total)
	if h == 0 {
		return fmt.Sprintf("%dmin", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dmin", h, m)
}

// WeekKey 唯一标识一个ISO周。
// 必须同时携带ISO年份：跨年的第1周和第52/53周会出现在同一个5周窗口里，
// 只用周序号做key会把两个不同年份的同号周合并到一个桶中。
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf 返回时间所属的ISO周key。
func WeekKeyOf(t time.Time) WeekKey {
	year, week := t.ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// Label 返回形如 "2026-W05" 的周标签。
func (k WeekKey) Label() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// LastNWeeks 返回以anchor所在ISO周结尾的、按时间升序排列的n个周key。
func LastNWeeks(anchor time.Time, n int) []WeekKey {
	keys := make([]WeekKey, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, WeekKeyOf(anchor.AddDate(0, 0, -7*i)))
	}
	return keys
}
