// Package chart turns prepared trending tables into dashboard figures.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

// Kind identifies one of the dashboard charts.
type Kind string

const (
	Scatter Kind = "scatter"
	Bar     Kind = "bar"
	Box     Kind = "box"
	Corr    Kind = "corr"
	Line    Kind = "line"
)

// PageTitle is the dashboard's browser and navbar title.
const PageTitle = "Top 50 Youtube Channel Trending"

var (
	ErrUnknownKind       = errors.New("unknown chart kind")
	ErrUnsupportedFormat = errors.New("chart kind does not support this format")
)

// Kinds returns every chart kind in dashboard order.
func Kinds() []Kind {
	return []Kind{Line, Bar, Box, Scatter, Corr}
}

// ParseKind maps a URL segment to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title returns the chart title for a view of one channel.
func Title(k Kind, channel string) string {
	switch k {
	case Scatter:
		return fmt.Sprintf("Comparison of Number Likes and Dislikes %s Youtube Channel", channel)
	case Bar:
		return fmt.Sprintf("Total of Viewers in %s Youtube Channel", channel)
	case Box:
		return fmt.Sprintf("Distribution of Views in %s Youtube Channel", channel)
	case Corr:
		return fmt.Sprintf("Correlation of Numeric Value %s Youtube Channel", channel)
	case Line:
		return fmt.Sprintf("Trend of Views in %s Youtube Channel", channel)
	}
	return ""
}

// OverviewTitle returns the title used when a chart covers every channel.
func OverviewTitle(k Kind) string {
	switch k {
	case Box:
		return "Distribution of Views in each Youtube Channel Trending"
	case Corr:
		return "Correlation of Numeric Value in each Youtube Channel"
	case Line:
		return "Trend of Views in Youtube Channel"
	}
	return ""
}

// Figure is a renderable chart.
type Figure interface {
	components.Charter
	Render(w io.Writer) error
}

type builder func(t *dataset.Table, title string) Figure

var builders = map[Kind]builder{
	Scatter: func(t *dataset.Table, title string) Figure { return buildScatter(t, title) },
	Bar:     func(t *dataset.Table, title string) Figure { return buildBar(t, title) },
	Box:     func(t *dataset.Table, title string) Figure { return buildBox(t, title) },
	Corr:    func(t *dataset.Table, title string) Figure { return buildCorr(t, title) },
	Line:    func(t *dataset.Table, title string) Figure { return buildLine(t, title) },
}

// Build constructs the figure of kind k over t. An empty table yields a
// figure with no data points.
func Build(k Kind, t *dataset.Table, title string) (Figure, error) {
	b, ok := builders[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return b(t, title), nil
}

// Overview renders all five charts over t as one HTML page.
func Overview(w io.Writer, t *dataset.Table) error {
	page := components.NewPage()
	page.PageTitle = PageTitle
	for _, k := range Kinds() {
		fig, err := Build(k, t, OverviewTitle(k))
		if err != nil {
			return err
		}
		page.AddCharts(fig)
	}
	return page.Render(w)
}

// pastel is the qualitative palette shared by every chart.
var pastel = opts.Colors{
	"rgb(102, 197, 204)", "rgb(246, 207, 113)", "rgb(248, 156, 116)",
	"rgb(220, 176, 242)", "rgb(135, 197, 95)", "rgb(158, 185, 243)",
	"rgb(254, 136, 177)", "rgb(201, 219, 116)", "rgb(139, 224, 164)",
	"rgb(180, 151, 231)", "rgb(179, 179, 179)",
}

const (
	chartWidth  = "100%"
	chartHeight = "450px"
)

func globalOpts(title string, extra ...charts.GlobalOpts) []charts.GlobalOpts {
	return append([]charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       PageTitle,
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: "#ffffff",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Type: "scroll",
			Top:  "30",
		}),
		charts.WithColorsOpts(pastel),
	}, extra...)
}
