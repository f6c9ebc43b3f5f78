package autonorm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/essentials"
)

// Default limits used for fastText skip-gram exports.
const (
	DefaultMaxVocabularySize = 1000000
	DefaultVectorDimension   = 300
)

// LoaderConfig bounds the size and shape of a loaded
// Vocabulary.
type LoaderConfig struct {
	// MaxVocabularySize is the maximum number of data
	// lines to read. Later lines are ignored.
	//
	// If 0, DefaultMaxVocabularySize is used.
	MaxVocabularySize int

	// VectorDimension is the number of components in each
	// vector.
	//
	// If 0, DefaultVectorDimension is used.
	VectorDimension int
}

// MaxRows returns the effective vocabulary size cap.
func (l LoaderConfig) MaxRows() int {
	if l.MaxVocabularySize == 0 {
		return DefaultMaxVocabularySize
	}
	return l.MaxVocabularySize
}

// Dim returns the effective vector dimension.
func (l LoaderConfig) Dim() int {
	if l.VectorDimension == 0 {
		return DefaultVectorDimension
	}
	return l.VectorDimension
}

// A Vocabulary is a table of words and their embedding
// vectors, in the order they appeared in the source file.
//
// Words are not guaranteed to be unique. Duplicates in the
// source file become separate rows.
type Vocabulary struct {
	Words []string

	// Vectors contains one row per word.
	Vectors *anyvec.Matrix
}

// NewVocabulary creates a Vocabulary from a list of words
// and one vector per word.
// All vectors must have the same length.
func NewVocabulary(words []string, vectors [][]float64) (*Vocabulary, error) {
	if len(words) != len(vectors) {
		return nil, &ShapeMismatchError{What: "vector count", Expected: len(words),
			Actual: len(vectors)}
	}
	var dim int
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	data := make([]float64, 0, dim*len(vectors))
	for _, vec := range vectors {
		if len(vec) != dim {
			return nil, &ShapeMismatchError{What: "vector dimension", Expected: dim,
				Actual: len(vec)}
		}
		data = append(data, vec...)
	}
	return newVocabulary(words, dim, data), nil
}

// LoadVocabulary reads a Vocabulary from a text file.
//
// The first line of the file is a header and is skipped.
// Every other line is a word followed by the vector's
// components, all separated by single spaces.
func LoadVocabulary(path string, cfg LoaderConfig) (vocab *Vocabulary, err error) {
	defer essentials.AddCtxTo("load vocabulary", &err)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer f.Close()
	return readVocabulary(f, path, cfg)
}

// ReadVocabulary is like LoadVocabulary, but it reads the
// table from a stream.
func ReadVocabulary(r io.Reader, cfg LoaderConfig) (*Vocabulary, error) {
	return readVocabulary(r, "vocabulary", cfg)
}

// Len returns the number of rows.
func (v *Vocabulary) Len() int {
	return len(v.Words)
}

// Dim returns the dimensionality of the vectors.
func (v *Vocabulary) Dim() int {
	return v.Vectors.Cols
}

// Vector returns the vector in the given row.
// The result is a copy.
func (v *Vocabulary) Vector(row int) []float64 {
	return float64Data(extractRow(v.Vectors, row))
}

func readVocabulary(r io.Reader, name string, cfg LoaderConfig) (*Vocabulary, error) {
	maxRows, dim := cfg.MaxRows(), cfg.Dim()
	reader := bufio.NewReader(r)

	if _, ok, err := nextLine(reader); err != nil {
		return nil, err
	} else if !ok {
		return nil, &FormatError{Path: name, Line: 1, Reason: "missing header"}
	}

	var words []string
	var data []float64
	for lineNum := 2; len(words) < maxRows; lineNum++ {
		line, ok, err := nextLine(reader)
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		fields := strings.Split(strings.TrimRight(line, "\r\n"), " ")
		if len(fields) < dim+1 {
			return nil, &FormatError{
				Path:   name,
				Line:   lineNum,
				Reason: fmt.Sprintf("expected %d tokens but got %d", dim+1, len(fields)),
			}
		}
		for _, field := range fields[1 : dim+1] {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &FormatError{Path: name, Line: lineNum, Reason: err.Error()}
			}
			data = append(data, x)
		}
		words = append(words, fields[0])
	}

	return newVocabulary(words, dim, data), nil
}

func newVocabulary(words []string, dim int, data []float64) *Vocabulary {
	var c anyvec.Creator = anyvec64.DefaultCreator{}
	if data == nil {
		data = []float64{}
	}
	return &Vocabulary{
		Words: words,
		Vectors: &anyvec.Matrix{
			Data: c.MakeVectorData(data),
			Rows: len(words),
			Cols: dim,
		},
	}
}

// nextLine reads a line, including its terminator.
// It reports false once the stream is exhausted.
func nextLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF {
		return line, line != "", nil
	} else if err != nil {
		return "", false, err
	}
	return line, true, nil
}

func extractRow(mat *anyvec.Matrix, row int) anyvec.Vector {
	idx := mat.Cols * row
	return mat.Data.Slice(idx, idx+mat.Cols)
}
