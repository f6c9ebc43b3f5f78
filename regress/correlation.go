package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pearson computes the Pearson correlation coefficient of
// two equal-length lists.
//
// The result is NaN if there are fewer than two pairs or
// if either list is constant.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("mismatching lengths")
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
