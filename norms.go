package autonorm

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// WordColumn is the norm table column holding words.
const WordColumn = "word"

// missingValues are the cell contents treated as a missing
// norm score.
var missingValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// A NormDataset is a table of human-rated norm scores,
// one per distinct word.
type NormDataset struct {
	// Norm is the name of the rated property.
	Norm string

	// Words contains the case-folded words.
	Words []string

	// Scores contains one centered score per word.
	Scores Centered

	// Min and Max are the extremes of the scores before
	// centering.
	Min float64
	Max float64
}

// NormOptions controls how a norm table is read.
type NormOptions struct {
	// Norm is the name of the column to read scores from.
	Norm string

	// Folder normalizes words after duplicates have been
	// dropped.
	Folder Folder

	// Comma is the field delimiter.
	// If 0, LoadNorms uses a tab for ".tsv" files and a
	// comma otherwise.
	Comma rune
}

// LoadNorms reads a NormDataset from a delimited file with
// a header row.
func LoadNorms(path string, opts NormOptions) (data *NormDataset, err error) {
	defer essentials.AddCtxTo("load norms", &err)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer f.Close()
	if opts.Comma == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opts.Comma = '\t'
	}
	return readNorms(f, path, opts)
}

// ReadNorms is like LoadNorms, but it reads the table from
// a stream.
func ReadNorms(r io.Reader, opts NormOptions) (*NormDataset, error) {
	return readNorms(r, "norms", opts)
}

// Len returns the number of words.
func (n *NormDataset) Len() int {
	return len(n.Words)
}

// Mean returns the mean of the scores before centering.
func (n *NormDataset) Mean() float64 {
	return n.Scores.Mean()
}

// Index creates a WordIndex mapping words to rows.
func (n *NormDataset) Index() WordIndex {
	return NewWordIndex(n.Words)
}

func readNorms(r io.Reader, name string, opts NormOptions) (*NormDataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Column: WordColumn}
	} else if err != nil {
		return nil, &FormatError{Path: name, Line: 1, Reason: err.Error()}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	wordCol, normCol := columnIndex(header, WordColumn), columnIndex(header, opts.Norm)
	if opts.Norm == "" {
		return nil, &SchemaError{Column: opts.Norm, Columns: header}
	} else if wordCol < 0 {
		return nil, &SchemaError{Column: WordColumn, Columns: header}
	} else if normCol < 0 {
		return nil, &SchemaError{Column: opts.Norm, Columns: header}
	}

	var words []string
	var scores []float64
	seen := map[string]bool{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &FormatError{Path: name, Reason: err.Error()}
		}
		word, rawScore := field(record, wordCol), field(record, normCol)
		if word == "" || missingValues[strings.TrimSpace(rawScore)] {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rawScore), 64)
		if err != nil {
			line, _ := reader.FieldPos(normCol)
			return nil, &FormatError{Path: name, Line: line,
				Reason: fmt.Sprintf("bad %s score %q", opts.Norm, rawScore)}
		} else if math.IsNaN(score) {
			continue
		} else if math.IsInf(score, 0) {
			line, _ := reader.FieldPos(normCol)
			return nil, &FormatError{Path: name, Line: line,
				Reason: fmt.Sprintf("infinite %s score", opts.Norm)}
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
		scores = append(scores, score)
	}

	words, scores = foldWords(&opts.Folder, words, scores)

	res := &NormDataset{
		Norm:   opts.Norm,
		Words:  words,
		Scores: Center(scores),
	}
	if len(scores) > 0 {
		res.Min = floats.Min(scores)
		res.Max = floats.Max(scores)
	}
	return res, nil
}

// foldWords normalizes the words, keeping only the first
// row for words which become equal after folding.
func foldWords(f *Folder, words []string, scores []float64) ([]string, []float64) {
	folded := f.Fold(words)
	index := NewWordIndex(folded)
	var resWords []string
	var resScores []float64
	for i, w := range folded {
		if row, _ := index.Row(w); row == i {
			resWords = append(resWords, w)
			resScores = append(resScores, scores[i])
		}
	}
	return resWords, resScores
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
