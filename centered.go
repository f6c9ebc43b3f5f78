package autonorm

import "gonum.org/v1/gonum/stat"

// Centered is a list of values shifted by the mean of the
// list they were drawn from.
//
// A Centered can only be created by Center (and narrowed
// by Select), so a regression that accepts a Centered
// never needs an intercept term.
type Centered struct {
	values []float64
	mean   float64
}

// Center subtracts the mean from every value.
// The mean of an empty list is 0.
func Center(values []float64) Centered {
	res := Centered{values: make([]float64, len(values))}
	if len(values) > 0 {
		res.mean = stat.Mean(values, nil)
	}
	for i, x := range values {
		res.values[i] = x - res.mean
	}
	return res
}

// Len returns the number of values.
func (c Centered) Len() int {
	return len(c.values)
}

// At returns the centered value at the index.
func (c Centered) At(i int) float64 {
	return c.values[i]
}

// Mean returns the mean that was subtracted.
func (c Centered) Mean() float64 {
	return c.mean
}

// Values returns a copy of the centered values.
func (c Centered) Values() []float64 {
	return append([]float64{}, c.values...)
}

// Uncentered returns the values on their original scale.
func (c Centered) Uncentered() []float64 {
	res := make([]float64, len(c.values))
	for i, x := range c.values {
		res[i] = x + c.mean
	}
	return res
}

// Select creates a Centered with the values at the given
// indices, keeping the original mean.
func (c Centered) Select(indices []int) Centered {
	res := Centered{values: make([]float64, len(indices)), mean: c.mean}
	for i, idx := range indices {
		res.values[i] = c.values[idx]
	}
	return res
}
