package autonorm

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
)

// An Estimate is one row of an output table.
type Estimate struct {
	Word string

	// Observed is the human-rated score, which is only
	// meaningful if HasObserved is set.
	Observed    float64
	HasObserved bool

	Estimated float64
}

// EstimatedColumn returns the output column name for the
// estimates of a norm.
func EstimatedColumn(norm string) string {
	return "estimated-" + norm
}

// WriteEstimates writes a CSV table with one row per
// estimate.
//
// If withObserved is set, a column named after the norm
// holds observed scores, with empty cells for words that
// have none.
func WriteEstimates(w io.Writer, norm string, rows []Estimate, withObserved bool) error {
	out := csv.NewWriter(w)
	header := []string{WordColumn, EstimatedColumn(norm)}
	if withObserved {
		header = []string{WordColumn, norm, EstimatedColumn(norm)}
	}
	if err := out.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		record[0] = row.Word
		record[len(record)-1] = formatFloat(row.Estimated)
		if withObserved {
			record[1] = ""
			if row.HasObserved {
				record[1] = formatFloat(row.Observed)
			}
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// SaveEstimates writes the table to a file.
// If writing fails, no file is created.
func SaveEstimates(path, norm string, rows []Estimate, withObserved bool) error {
	return essentials.AddCtx("save estimates", writeFileAtomic(path, func(w io.Writer) error {
		return WriteEstimates(w, norm, rows, withObserved)
	}))
}

// formatFloat writes the shortest form that parses back to
// x, always with a decimal point or exponent, e.g. "5.0",
// "2.75" or "1e-07".
func formatFloat(x float64) string {
	abs := math.Abs(x)
	if math.IsNaN(x) || (abs != 0 && (abs < 1e-4 || abs >= 1e16)) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
