package chart

import (
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

const (
	labelLike           = "Sum of Like"
	labelDislike        = "Sum of Dislike"
	labelViews          = "Sum of Views"
	labelTrendingMonth  = "Month of Trending"
	labelTrendingDate   = "Date of Trending"
	maxScatterSymbol    = 50
	minScatterSymbol    = 3
	lineTimestampLayout = "2006-01-02 15:04"
)

// buildScatter plots likes against dislikes, one series per trending weekday,
// with symbol area proportional to views.
func buildScatter(t *dataset.Table, title string) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(globalOpts(title,
		charts.WithXAxisOpts(opts.XAxis{
			Name:         labelLike,
			Type:         "log",
			NameLocation: "center",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         labelDislike,
			Type:         "value",
			NameLocation: "center",
			NameGap:      50,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)...)

	var maxView int64
	for r := range t.All() {
		maxView = max(maxView, r.View)
	}

	for _, day := range trendingDays(t) {
		var data []opts.ScatterData
		for r := range t.All() {
			if r.TrendingDayName != day {
				continue
			}
			data = append(data, opts.ScatterData{
				Name:       r.ChannelName,
				Value:      []interface{}{r.Like, r.Dislike, r.View},
				SymbolSize: symbolSize(r.View, maxView),
			})
		}
		sc.AddSeries(day, data)
	}
	return sc
}

// symbolSize scales the marker so its area is proportional to view.
func symbolSize(view, maxView int64) int {
	if maxView <= 0 {
		return minScatterSymbol
	}
	size := int(math.Round(math.Sqrt(float64(view)/float64(maxView)) * maxScatterSymbol))
	return max(size, minScatterSymbol)
}

// buildBar sums views per trending month, stacked by trending weekday.
func buildBar(t *dataset.Table, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title,
		charts.WithXAxisOpts(opts.XAxis{Name: labelTrendingMonth, NameLocation: "center", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: labelViews, NameLocation: "center", NameGap: 70}),
	)...)

	months := trendingMonths(t)
	bar.SetXAxis(months)

	for _, day := range trendingDays(t) {
		sums := make(map[string]int64)
		for r := range t.All() {
			if r.TrendingDayName == day {
				sums[r.TrendingMonthName] += r.View
			}
		}
		data := make([]opts.BarData, len(months))
		for i, m := range months {
			data[i] = opts.BarData{Value: sums[m]}
		}
		bar.AddSeries(day, data)
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "views"}))
	return bar
}

// buildBox draws one box of views per trending weekday. Each weekday is its
// own series so the legend carries the colors; the category axis is hidden.
func buildBox(t *dataset.Table, title string) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(globalOpts(title,
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Name: labelViews, NameLocation: "center", NameGap: 70}),
	)...)
	box.SetXAxis([]string{labelViews})

	for _, day := range trendingDays(t) {
		var views []float64
		for r := range t.All() {
			if r.TrendingDayName == day {
				views = append(views, float64(r.View))
			}
		}
		s, ok := summarize(views)
		if !ok {
			continue
		}
		box.AddSeries(day, []opts.BoxPlotData{{Name: day, Value: s.values()}})
	}
	return box
}

// buildCorr draws the Pearson correlation matrix of the four counters.
func buildCorr(t *dataset.Table, title string) *charts.HeatMap {
	m := correlate(t)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(globalOpts(title,
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: m.Labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#f7fbff", "#6baed6", "#08306b"},
			},
		}),
	)...)
	hm.SetXAxis(m.Labels)

	var data []opts.HeatMapData
	for i := range m.Labels {
		for j := range m.Labels {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, cellValue(m.Values[i][j])}})
		}
	}
	hm.AddSeries("correlation", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return hm
}

// cellValue rounds to two decimals; NaN becomes "-", which echarts draws as an empty cell.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return "-"
	}
	return math.Round(v*100) / 100
}

// buildLine plots views over trending time.
func buildLine(t *dataset.Table, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title,
		charts.WithXAxisOpts(opts.XAxis{Name: labelTrendingDate, NameLocation: "center", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: labelViews, NameLocation: "center", NameGap: 70}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)...)

	rows := byTrendingTime(t)
	xs := make([]string, len(rows))
	data := make([]opts.LineData, len(rows))
	for i, r := range rows {
		xs[i] = r.TrendingTime.Format(lineTimestampLayout)
		data[i] = opts.LineData{Value: r.View}
	}
	line.SetXAxis(xs)
	line.AddSeries(labelViews, data)
	return line
}

// byTrendingTime orders rows along the time axis rather than in table order,
// so the line never doubles back. Equal times keep table order.
func byTrendingTime(t *dataset.Table) []dataset.Record {
	rows := t.Records()
	slices.SortStableFunc(rows, func(a, b dataset.Record) int {
		return a.TrendingTime.Compare(b.TrendingTime)
	})
	return rows
}
