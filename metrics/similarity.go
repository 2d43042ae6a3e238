// Package metrics computes similarity metrics between two measurement
// series, typically the same quantity recorded by two sensors.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Similarity bundles the agreement metrics of two series.
type Similarity struct {
	PearsonR float64
	PValue   float64
	RMSE     float64
	MAE      float64
}

// Map returns the metrics keyed by name, for table export.
func (s Similarity) Map() map[string]float64 {
	return map[string]float64{
		"pearson_r": s.PearsonR,
		"p_value":   s.PValue,
		"rmse":      s.RMSE,
		"mae":       s.MAE,
	}
}

// Compute calculates Pearson correlation (with a two-sided p-value from the
// Student's t distribution), root mean square error and mean absolute error.
// The series must be equally long, free of NaN values and at least three
// samples long.
func Compute(a, b []float64) (Similarity, error) {
	if len(a) != len(b) {
		return Similarity{}, fmt.Errorf("series lengths differ: %d vs %d", len(a), len(b))
	}
	if len(a) < 3 {
		return Similarity{}, fmt.Errorf("need at least 3 samples, have %d", len(a))
	}
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			return Similarity{}, fmt.Errorf("input series must not contain NaN values (row %d)", i)
		}
	}

	r := stat.Correlation(a, b, nil)

	var sumSq, sumAbs float64
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
		sumAbs += math.Abs(d)
	}
	n := float64(len(a))

	return Similarity{
		PearsonR: r,
		PValue:   pearsonPValue(r, len(a)),
		RMSE:     math.Sqrt(sumSq / n),
		MAE:      sumAbs / n,
	}, nil
}

// pearsonPValue is the two-sided p-value of a Pearson correlation under the
// null hypothesis of no correlation: t = r*sqrt((n-2)/(1-r^2)) with n-2
// degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
