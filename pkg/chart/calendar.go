package chart

import (
	"slices"
	"time"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

var weekdayOrder = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
	time.Sunday.String(),
}

// trendingDays lists the trending weekday names present in t, Monday first.
func trendingDays(t *dataset.Table) []string {
	seen := make(map[string]bool)
	for r := range t.All() {
		seen[r.TrendingDayName] = true
	}
	var out []string
	for _, d := range weekdayOrder {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

// trendingMonths lists the trending month names present in t in calendar order.
func trendingMonths(t *dataset.Table) []string {
	var months []int
	for r := range t.All() {
		if !slices.Contains(months, r.TrendingMonth) {
			months = append(months, r.TrendingMonth)
		}
	}
	slices.Sort(months)
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = time.Month(m).String()
	}
	return out
}
