package regress

import (
	"math"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/unixpickle/anyvec"
	"gonum.org/v1/gonum/mat"
)

// Fit finds the minimum-norm least squares solution w to
//
//	x * w = y
//
// where each row of x is a training vector.
//
// The targets must be centered, since the model has no
// intercept term.
// Rank-deficient and underdetermined systems are solved
// through the singular value decomposition, but a training
// set which is empty or has rank zero yields a FitError.
func Fit(x *anyvec.Matrix, y autonorm.Centered) (*Model, error) {
	if x.Rows == 0 || y.Len() == 0 {
		return nil, &autonorm.FitError{Reason: "empty training set"}
	} else if x.Rows != y.Len() {
		return nil, &autonorm.ShapeMismatchError{What: "training targets", Expected: x.Rows,
			Actual: y.Len()}
	} else if x.Cols == 0 {
		return nil, &autonorm.FitError{Reason: "zero-dimensional vectors"}
	}

	c := x.Data.Creator()
	data := c.Float64Slice(x.Data.Data())
	targets := y.Values()
	if !allFinite(data) || !allFinite(targets) {
		return nil, &autonorm.FitError{Reason: "training set contains non-finite values"}
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(x.Rows, x.Cols, data), mat.SVDThin) {
		return nil, &autonorm.FitError{Reason: "singular value decomposition failed"}
	}
	rank := svd.Rank(rankTolerance(x.Rows, x.Cols))
	if rank == 0 {
		return nil, &autonorm.FitError{Reason: "training vectors have rank zero"}
	}

	var w mat.VecDense
	svd.SolveVecTo(&w, mat.NewVecDense(len(targets), targets), rank)

	coefs := make([]float64, x.Cols)
	for i := range coefs {
		coefs[i] = w.AtVec(i)
	}
	return &Model{Coefficients: anyvec.Make(c, coefs)}, nil
}

// SelectRows copies the given rows of a matrix into a new
// matrix.
func SelectRows(m *anyvec.Matrix, rows []int) *anyvec.Matrix {
	c := m.Data.Creator()
	if len(rows) == 0 {
		return &anyvec.Matrix{Data: c.MakeVector(0), Rows: 0, Cols: m.Cols}
	}
	vecs := make([]anyvec.Vector, len(rows))
	for i, row := range rows {
		vecs[i] = m.Data.Slice(row*m.Cols, (row+1)*m.Cols)
	}
	return &anyvec.Matrix{
		Data: c.Concat(vecs...),
		Rows: len(rows),
		Cols: m.Cols,
	}
}

// rankTolerance is the relative cutoff below which
// singular values are treated as zero.
func rankTolerance(rows, cols int) float64 {
	eps := math.Nextafter(1, 2) - 1
	if rows > cols {
		return eps * float64(rows)
	}
	return eps * float64(cols)
}

func allFinite(data []float64) bool {
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
