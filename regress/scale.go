package regress

import "gonum.org/v1/gonum/floats"

// A MinMaxScaler linearly maps the range spanned by some
// data onto a target range.
type MinMaxScaler struct {
	DataMin float64
	DataMax float64
	Target  Range
}

// FitMinMax creates a MinMaxScaler for the values.
func FitMinMax(values []float64, target Range) *MinMaxScaler {
	res := &MinMaxScaler{Target: target}
	if len(values) > 0 {
		res.DataMin = floats.Min(values)
		res.DataMax = floats.Max(values)
	}
	return res
}

// Transform scales a single value.
//
// Values inside the fitted data range land inside the
// target range. Constant data maps to Target.Min.
func (m *MinMaxScaler) Transform(x float64) float64 {
	span := m.DataMax - m.DataMin
	if span == 0 {
		span = 1
	}
	res := m.Target.Min + (x-m.DataMin)*(m.Target.Max-m.Target.Min)/span
	if x >= m.DataMin && x <= m.DataMax {
		// Guard against rounding past the endpoints.
		if res < m.Target.Min {
			res = m.Target.Min
		} else if res > m.Target.Max {
			res = m.Target.Max
		}
	}
	return res
}

// TransformInPlace scales every value in the slice.
func (m *MinMaxScaler) TransformInPlace(values []float64) {
	for i, x := range values {
		values[i] = m.Transform(x)
	}
}
