package chart

import (
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

const (
	pngWidth  = 1024
	pngHeight = 480
)

// SupportsPNG reports whether RenderPNG can draw kind k.
func SupportsPNG(k Kind) bool {
	return k == Scatter || k == Bar || k == Line
}

// RenderPNG writes a static PNG of the scatter, bar or line chart over t.
// Box and correlation charts return ErrUnsupportedFormat.
func RenderPNG(w io.Writer, k Kind, t *dataset.Table, title string) error {
	switch k {
	case Scatter:
		return scatterPNG(t, title).Render(gochart.PNG, w)
	case Bar:
		return barPNG(t, title).Render(gochart.PNG, w)
	case Line:
		return linePNG(t, title).Render(gochart.PNG, w)
	case Box, Corr:
		return fmt.Errorf("%w: %s as png", ErrUnsupportedFormat, k)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// paddedRange widens [lo, hi] so go-chart never sees an empty or zero-width range.
func paddedRange(lo, hi float64, ok bool) *gochart.ContinuousRange {
	if !ok {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	if lo == hi {
		return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

// placeholder is a single transparent point: go-chart refuses to render a
// chart without a visible, non-empty series.
func placeholder() gochart.Series {
	return gochart.ContinuousSeries{
		XValues: []float64{0},
		YValues: []float64{0},
		Style:   gochart.Style{StrokeColor: drawing.ColorTransparent},
	}
}

func extent(values []float64) (lo, hi float64, ok bool) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi, len(values) > 0
}

func scatterPNG(t *dataset.Table, title string) gochart.Chart {
	var xs, ys []float64
	for r := range t.All() {
		xs = append(xs, float64(r.Like))
		ys = append(ys, float64(r.Dislike))
	}
	xlo, xhi, xok := extent(xs)
	ylo, yhi, yok := extent(ys)

	series := []gochart.Series{placeholder()}
	if xok {
		series = []gochart.Series{
			gochart.ContinuousSeries{
				Name:    labelLike,
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(gochart.ColorBlue),
			},
		}
	}

	return gochart.Chart{
		Title:  title,
		Width:  pngWidth,
		Height: pngHeight,
		XAxis:  gochart.XAxis{Name: labelLike, Range: paddedRange(xlo, xhi, xok)},
		YAxis:  gochart.YAxis{Name: labelDislike, Range: paddedRange(ylo, yhi, yok)},
		Series: series,
	}
}

func barPNG(t *dataset.Table, title string) gochart.BarChart {
	sums := make(map[string]float64)
	for r := range t.All() {
		sums[r.TrendingMonthName] += float64(r.View)
	}

	var bars []gochart.Value
	top := 0.0
	for _, m := range trendingMonths(t) {
		bars = append(bars, gochart.Value{Label: m, Value: sums[m]})
		top = max(top, sums[m])
	}
	if len(bars) == 0 {
		bars = []gochart.Value{{Label: "no data", Value: 0}}
	}

	return gochart.BarChart{
		Title:    title,
		Width:    pngWidth,
		Height:   pngHeight,
		BarWidth: 60,
		YAxis:    gochart.YAxis{Name: labelViews, Range: paddedRange(0, top, top > 0)},
		Bars:     bars,
	}
}

func linePNG(t *dataset.Table, title string) gochart.Chart {
	rows := byTrendingTime(t)
	xs := make([]time.Time, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.TrendingTime
		ys[i] = float64(r.View)
	}

	xr := paddedRange(0, 0, false)
	series := []gochart.Series{placeholder()}
	if len(xs) > 0 {
		xr = paddedRange(gochart.TimeToFloat64(xs[0]), gochart.TimeToFloat64(xs[len(xs)-1]), true)
		series = []gochart.Series{gochart.TimeSeries{Name: labelViews, XValues: xs, YValues: ys}}
	}
	ylo, yhi, yok := extent(ys)

	return gochart.Chart{
		Title:  title,
		Width:  pngWidth,
		Height: pngHeight,
		XAxis: gochart.XAxis{
			Name:           labelTrendingDate,
			ValueFormatter: gochart.TimeDateValueFormatter,
			Range:          xr,
		},
		YAxis:  gochart.YAxis{Name: labelViews, Range: paddedRange(ylo, yhi, yok)},
		Series: series,
	}
}
