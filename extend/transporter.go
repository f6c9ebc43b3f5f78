// Package extend carries a norm regression over to a new
// language by aligning its word vectors with the space the
// regression was fit in.
package extend

import (
	"io"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/billdthompson/cogsci-auto-norm/regress"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// DefaultBlockRows is the default number of vocabulary
// rows aligned at a time.
const DefaultBlockRows = 8192

// A Transporter estimates norms for a foreign vocabulary
// using an alignment matrix and a previously fit Model.
type Transporter struct {
	// Log receives progress messages.
	// If nil, nothing is logged.
	Log logrus.FieldLogger

	// Dim, if non-zero, is the dimension the Model's
	// coefficients must have.
	Dim int

	// Options controls the offset and rescaling of the
	// estimates. Rescaling spans the whole vocabulary.
	//
	// The zero value leaves estimates on the centered scale
	// of the regression, without rescaling.
	Options regress.ApplyOptions

	// BlockRows bounds how many aligned rows are held in
	// memory at once.
	// If 0, DefaultBlockRows is used.
	BlockRows int
}

// Run aligns the foreign vectors and applies the model.
//
// The alignment maps foreign vectors into the source space
// by right-multiplication, so it must have one row per
// foreign vector component and one column per model
// coefficient.
func (t *Transporter) Run(foreign *autonorm.Vocabulary, alignment *anyvec.Matrix,
	model *regress.Model) (rows []autonorm.Estimate, err error) {
	defer essentials.AddCtxTo("extend", &err)
	log := t.logger()

	if alignment.Rows != foreign.Dim() {
		return nil, &autonorm.ShapeMismatchError{What: "alignment rows",
			Expected: foreign.Dim(), Actual: alignment.Rows}
	} else if model.Dim() != alignment.Cols {
		return nil, &autonorm.ShapeMismatchError{What: "coefficient count",
			Expected: alignment.Cols, Actual: model.Dim()}
	} else if t.Dim != 0 && model.Dim() != t.Dim {
		return nil, &autonorm.ShapeMismatchError{What: "coefficient count", Expected: t.Dim,
			Actual: model.Dim()}
	}

	log.Infof("Preprocessing > Transforming %d vectors into source space", foreign.Len())
	log.Info("Processing > Transforming vectors into predictions")
	blockOpts := regress.ApplyOptions{Offset: t.Options.Offset}
	estimates := make([]float64, 0, foreign.Len())
	blockSize := t.blockRows()
	for start := 0; start < foreign.Len(); start += blockSize {
		end := essentials.MinInt(start+blockSize, foreign.Len())
		aligned := Align(sliceRows(foreign.Vectors, start, end), alignment)
		block, err := model.Apply(aligned, blockOpts)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, block...)
		log.Debugf("Processing > Estimated rows %d through %d", start, end-1)
	}
	if t.Options.ApplyRangeRescaling {
		regress.FitMinMax(estimates, t.Options.Range).TransformInPlace(estimates)
	}

	rows = make([]autonorm.Estimate, len(estimates))
	for i, x := range estimates {
		rows[i] = autonorm.Estimate{Word: foreign.Words[i], Estimated: x}
	}
	return rows, nil
}

// Align computes vectors * alignment.
func Align(vectors, alignment *anyvec.Matrix) *anyvec.Matrix {
	if vectors.Cols != alignment.Rows {
		panic("alignment dimension mismatch")
	}
	c := vectors.Data.Creator()
	a := alignment
	if a.Data.Creator() != c {
		a = &anyvec.Matrix{
			Data: anyvec.Make(c, a.Data.Creator().Float64Slice(a.Data.Data())),
			Rows: a.Rows,
			Cols: a.Cols,
		}
	}
	res := &anyvec.Matrix{
		Data: c.MakeVector(vectors.Rows * a.Cols),
		Rows: vectors.Rows,
		Cols: a.Cols,
	}
	if vectors.Rows > 0 {
		res.Product(false, false, c.MakeNumeric(1), vectors, a, c.MakeNumeric(0))
	}
	return res
}

func (t *Transporter) blockRows() int {
	if t.BlockRows <= 0 {
		return DefaultBlockRows
	}
	return t.BlockRows
}

func (t *Transporter) logger() logrus.FieldLogger {
	if t.Log != nil {
		return t.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sliceRows(m *anyvec.Matrix, start, end int) *anyvec.Matrix {
	return &anyvec.Matrix{
		Data: m.Data.Slice(start*m.Cols, end*m.Cols),
		Rows: end - start,
		Cols: m.Cols,
	}
}
