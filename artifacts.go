package autonorm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/essentials"
)

// LoadCoefficients reads a list of regression weights from
// a whitespace-delimited text file.
func LoadCoefficients(path string) (coefs anyvec.Vector, err error) {
	defer essentials.AddCtxTo("load coefficients", &err)
	rows, err := readNumericFile(path)
	if err != nil {
		return nil, err
	}
	var data []float64
	for _, row := range rows {
		data = append(data, row...)
	}
	if len(data) == 0 {
		return nil, &FormatError{Path: path, Reason: "no coefficients"}
	}
	c := anyvec64.DefaultCreator{}
	return c.MakeVectorData(c.MakeNumericList(data)), nil
}

// WriteCoefficients writes one weight per line.
func WriteCoefficients(w io.Writer, coefs anyvec.Vector) error {
	for _, x := range float64Data(coefs) {
		if _, err := fmt.Fprintf(w, "%.18e\n", x); err != nil {
			return err
		}
	}
	return nil
}

// SaveCoefficients writes the weights to a file.
// If writing fails, the file is left untouched.
func SaveCoefficients(path string, coefs anyvec.Vector) error {
	return essentials.AddCtx("save coefficients", writeFileAtomic(path, func(w io.Writer) error {
		return WriteCoefficients(w, coefs)
	}))
}

// LoadMatrix reads a dense, row-major matrix from a
// whitespace-delimited text file with one row per line.
func LoadMatrix(path string) (mat *anyvec.Matrix, err error) {
	defer essentials.AddCtxTo("load matrix", &err)
	rows, err := readNumericFile(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Reason: "empty matrix"}
	}
	cols := len(rows[0])
	data := make([]float64, 0, cols*len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, &FormatError{
				Path:   path,
				Reason: fmt.Sprintf("row %d has %d columns but row 1 has %d", i+1, len(row), cols),
			}
		}
		data = append(data, row...)
	}
	c := anyvec64.DefaultCreator{}
	return &anyvec.Matrix{
		Data: c.MakeVectorData(c.MakeNumericList(data)),
		Rows: len(rows),
		Cols: cols,
	}, nil
}

// readNumericFile parses every non-blank line of a file as
// a row of floats. Lines starting with '#' are skipped.
func readNumericFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	reader := bufio.NewReader(f)
	for lineNum := 1; ; lineNum++ {
		line, ok, err := nextLine(reader)
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			row[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Line: lineNum, Reason: err.Error()}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeFileAtomic writes a file through a temporary file
// in the same directory, so that readers never observe a
// partially written file.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	buf := bufio.NewWriter(tmp)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func float64Data(v anyvec.Vector) []float64 {
	return v.Creator().Float64Slice(v.Data())
}
