package chart

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/elonfeng/ytdash/pkg/dataset"
)

// Matrix is a labelled square matrix.
type Matrix struct {
	Labels []string
	Values [][]float64
}

// correlate returns the pairwise Pearson correlation of like, dislike, view
// and comment. Cells are NaN when fewer than two rows are present or a
// column has zero variance.
func correlate(t *dataset.Table) Matrix {
	labels := []string{dataset.ColLike, dataset.ColDislike, dataset.ColView, dataset.ColComment}
	cols := make([][]float64, len(labels))
	for r := range t.All() {
		cols[0] = append(cols[0], float64(r.Like))
		cols[1] = append(cols[1], float64(r.Dislike))
		cols[2] = append(cols[2], float64(r.View))
		cols[3] = append(cols[3], float64(r.Comment))
	}

	values := make([][]float64, len(labels))
	for i := range labels {
		values[i] = make([]float64, len(labels))
		for j := range labels {
			values[i][j] = pearson(cols[i], cols[j])
		}
	}
	return Matrix{Labels: labels, Values: values}
}

func pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	c := stat.Correlation(x, y, nil)
	if math.IsInf(c, 0) {
		return math.NaN()
	}
	return c
}

// boxSummary holds the five numbers of one box: whiskers sit at the most
// extreme observations within 1.5 IQR of the quartiles.
type boxSummary struct {
	Low, Q1, Median, Q3, High float64
}

func (b boxSummary) values() []float64 {
	return []float64{b.Low, b.Q1, b.Median, b.Q3, b.High}
}

func summarize(values []float64) (boxSummary, bool) {
	if len(values) == 0 {
		return boxSummary{}, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := boxSummary{
		Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
	}
	iqr := s.Q3 - s.Q1
	lo, hi := s.Q1-1.5*iqr, s.Q3+1.5*iqr

	s.Low, s.High = s.Q1, s.Q3
	for _, v := range sorted {
		if v >= lo {
			s.Low = min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			s.High = max(sorted[i], s.Q3)
			break
		}
	}
	return s, true
}
