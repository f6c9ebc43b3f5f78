// Package regress fits and applies linear maps from word
// vectors to scalar norm scores.
package regress

import (
	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Model{}).SerializerType(), DeserializeModel)
}

// A Model is a linear regression without an intercept
// term.
//
// Because there is no intercept, a Model only makes sense
// for targets which were centered before fitting (see
// autonorm.Centered).
type Model struct {
	// Coefficients has one weight per vector component.
	Coefficients anyvec.Vector
}

// DeserializeModel deserializes a Model.
func DeserializeModel(d []byte) (*Model, error) {
	var coefs *anyvecsave.S
	if err := serializer.DeserializeAny(d, &coefs); err != nil {
		return nil, essentials.AddCtx("deserialize Model", err)
	}
	return &Model{Coefficients: coefs.Vector}, nil
}

// LoadModel reads a Model's coefficients from a text file,
// as written by Model.Save.
func LoadModel(path string) (*Model, error) {
	coefs, err := autonorm.LoadCoefficients(path)
	if err != nil {
		return nil, err
	}
	return &Model{Coefficients: coefs}, nil
}

// Dim returns the vector size the model expects.
func (m *Model) Dim() int {
	return m.Coefficients.Len()
}

// Save writes the coefficients to a text file, one per
// line.
func (m *Model) Save(path string) error {
	return autonorm.SaveCoefficients(path, m.Coefficients)
}

// Range is a closed interval of scores.
type Range struct {
	Min float64
	Max float64
}

// ApplyOptions controls how predictions are produced by
// Model.Apply.
type ApplyOptions struct {
	// Offset is added to every raw prediction, e.g. to
	// undo the centering of the training targets.
	Offset float64

	// ApplyRangeRescaling, if set, min-max scales the
	// predictions so that they span Range exactly.
	ApplyRangeRescaling bool

	Range Range
}

// Apply computes a prediction for every row of vectors.
func (m *Model) Apply(vectors *anyvec.Matrix, opts ApplyOptions) ([]float64, error) {
	if vectors.Cols != m.Dim() {
		return nil, &autonorm.ShapeMismatchError{What: "vector dimension", Expected: m.Dim(),
			Actual: vectors.Cols}
	}
	if vectors.Rows == 0 {
		return []float64{}, nil
	}

	c := vectors.Data.Creator()
	coefs := m.Coefficients
	if coefs.Creator() != c {
		coefs = anyvec.Make(c, coefs.Creator().Float64Slice(coefs.Data()))
	}
	products := vectors.Apply(coefs)
	if opts.Offset != 0 {
		products.AddScalar(c.MakeNumeric(opts.Offset))
	}

	preds := c.Float64Slice(products.Data())
	if opts.ApplyRangeRescaling {
		FitMinMax(preds, opts.Range).TransformInPlace(preds)
	}
	return preds, nil
}

// SerializerType returns the unique ID used to serialize
// a Model with the serializer package.
func (m *Model) SerializerType() string {
	return "github.com/billdthompson/cogsci-auto-norm/regress.Model"
}

// Serialize serializes the Model.
func (m *Model) Serialize() ([]byte, error) {
	return serializer.SerializeAny(&anyvecsave.S{Vector: m.Coefficients})
}
