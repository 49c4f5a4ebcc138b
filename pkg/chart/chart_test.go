package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	var rows []dataset.RawRecord
	for day := 1; day <= 20; day++ {
		rows = append(rows, dataset.RawRecord{
			ChannelName:  "Alpha",
			Like:         int64(100 * day),
			Dislike:      int64(day),
			View:         int64(1000 * day),
			Comment:      int64(10 * day),
			PublishTime:  fmt.Sprintf("2022-01-%02dT08:00:00Z", day),
			TrendingTime: fmt.Sprintf("2022-02-%02d 12:00:00", day),
		})
	}
	table := dataset.Prepare(rows, dataset.DefaultTopN)
	require.Equal(t, 20, table.Len())
	return table
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("pie")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Scatter, "Comparison of Number Likes and Dislikes Nihongo Mantappu Youtube Channel"},
		{Bar, "Total of Viewers in Nihongo Mantappu Youtube Channel"},
		{Box, "Distribution of Views in Nihongo Mantappu Youtube Channel"},
		{Corr, "Correlation of Numeric Value Nihongo Mantappu Youtube Channel"},
		{Line, "Trend of Views in Nihongo Mantappu Youtube Channel"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.kind, "Nihongo Mantappu"))
		})
	}

	assert.Empty(t, OverviewTitle(Scatter))
	assert.Equal(t, "Trend of Views in Youtube Channel", OverviewTitle(Line))
}

func TestBuild_RendersEveryKind(t *testing.T) {
	table := sampleTable(t)
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			fig, err := Build(k, table, Title(k, "Alpha"))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, fig.Render(&buf))
			assert.Contains(t, buf.String(), Title(k, "Alpha"))
			assert.Contains(t, buf.String(), "<title>"+PageTitle+"</title>")
		})
	}
}

func TestBuild_EmptyTable(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			fig, err := Build(k, &dataset.Table{}, Title(k, "nobody"))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, fig.Render(&buf))
			assert.Contains(t, buf.String(), Title(k, "nobody"))
		})
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build("pie", &dataset.Table{}, "")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestOverview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Overview(&buf, sampleTable(t)))
	assert.Contains(t, buf.String(), OverviewTitle(Box))
	assert.Contains(t, buf.String(), OverviewTitle(Corr))
}

func TestRenderPNG(t *testing.T) {
	table := sampleTable(t)
	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	for _, k := range []Kind{Scatter, Bar, Line} {
		t.Run(string(k), func(t *testing.T) {
			require.True(t, SupportsPNG(k))
			var buf bytes.Buffer
			require.NoError(t, RenderPNG(&buf, k, table, Title(k, "Alpha")))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}

	for _, k := range []Kind{Box, Corr} {
		assert.False(t, SupportsPNG(k))
		err := RenderPNG(&bytes.Buffer{}, k, table, "")
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	}
}

func TestTrendingCalendarOrder(t *testing.T) {
	table := sampleTable(t)
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, trendingDays(table))
	assert.Equal(t, []string{"February"}, trendingMonths(table))
}

func TestSymbolSize(t *testing.T) {
	assert.Equal(t, maxScatterSymbol, symbolSize(400, 400))
	assert.Equal(t, 25, symbolSize(100, 400))
	assert.Equal(t, minScatterSymbol, symbolSize(0, 400))
	assert.Equal(t, minScatterSymbol, symbolSize(0, 0))
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, "-", cellValue(math.NaN()))
	assert.Equal(t, 0.12, cellValue(0.1234))
	assert.Equal(t, -1.0, cellValue(-1))
}

func TestRenderPNG_EmptyTable(t *testing.T) {
	for _, k := range []Kind{Scatter, Bar, Line} {
		t.Run(string(k), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderPNG(&buf, k, &dataset.Table{}, Title(k, "nobody")))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
		})
	}
}

func TestByTrendingTime(t *testing.T) {
	table := dataset.Prepare([]dataset.RawRecord{
		{ChannelName: "A", Like: 1, View: 30, PublishTime: "2022-01-01T00:00:00Z", TrendingTime: "2022-01-05 10:00:00"},
		{ChannelName: "A", Like: 2, View: 10, PublishTime: "2022-01-01T00:00:00Z", TrendingTime: "2022-01-02 10:00:00"},
		{ChannelName: "A", Like: 3, View: 20, PublishTime: "2022-01-01T00:00:00Z", TrendingTime: "2022-01-05 10:00:00"},
	}, dataset.DefaultTopN)

	var likes []int64
	for _, r := range byTrendingTime(table) {
		likes = append(likes, r.Like)
	}
	assert.Equal(t, []int64{2, 1, 3}, likes)
}
