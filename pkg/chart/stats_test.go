package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

func TestCorrelate(t *testing.T) {
	m := correlate(sampleTable(t))
	require.Equal(t, []string{"like", "dislike", "view", "comment"}, m.Labels)

	// Every column of the sample grows linearly with the day.
	for i := range m.Labels {
		for j := range m.Labels {
			assert.InDelta(t, 1.0, m.Values[i][j], 1e-9, "%s/%s", m.Labels[i], m.Labels[j])
		}
	}
}

func TestCorrelate_Degenerate(t *testing.T) {
	m := correlate(&dataset.Table{})
	for i := range m.Values {
		for j := range m.Values[i] {
			assert.True(t, math.IsNaN(m.Values[i][j]))
		}
	}

	assert.True(t, math.IsNaN(pearson([]float64{1}, []float64{2})))
	assert.True(t, math.IsNaN(pearson([]float64{3, 3, 3}, []float64{1, 2, 3})))
	assert.InDelta(t, -1.0, pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-9)
}

func TestSummarize(t *testing.T) {
	_, ok := summarize(nil)
	assert.False(t, ok)

	s, ok := summarize([]float64{5, 5, 5})
	require.True(t, ok)
	assert.Equal(t, boxSummary{Low: 5, Q1: 5, Median: 5, Q3: 5, High: 5}, s)

	s, ok = summarize([]float64{10, 12, 11, 13, 12, 11, 10, 1000})
	require.True(t, ok)
	assert.LessOrEqual(t, s.Low, s.Q1)
	assert.LessOrEqual(t, s.Q1, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q3)
	assert.LessOrEqual(t, s.Q3, s.High)
	assert.Less(t, s.High, 1000.0, "outlier must sit beyond the upper whisker")
	assert.Equal(t, 10.0, s.Low)
}
