package autonorm

import "fmt"

// NotFoundError is returned when an input file does not
// exist.
type NotFoundError struct {
	Path string
}

func (n *NotFoundError) Error() string {
	return "file not found: " + n.Path
}

// FormatError is returned when an input file contains a
// malformed line.
type FormatError struct {
	Path string

	// Line is the 1-based line number, or 0 if the error
	// is not tied to a specific line.
	Line int

	Reason string
}

func (f *FormatError) Error() string {
	if f.Line == 0 {
		return fmt.Sprintf("malformed %s: %s", f.Path, f.Reason)
	}
	return fmt.Sprintf("malformed %s (line %d): %s", f.Path, f.Line, f.Reason)
}

// SchemaError is returned when a norm table lacks a
// required column.
type SchemaError struct {
	Column  string
	Columns []string
}

func (s *SchemaError) Error() string {
	return fmt.Sprintf("missing column %q (have %v)", s.Column, s.Columns)
}

// FitError is returned when a regression cannot be fit,
// e.g. because no training rows are available.
type FitError struct {
	Reason string
}

func (f *FitError) Error() string {
	return "cannot fit regression: " + f.Reason
}

// ShapeMismatchError is returned when the dimensions of
// vectors, alignment matrices, and coefficients do not
// agree.
type ShapeMismatchError struct {
	What     string
	Expected int
	Actual   int
}

func (s *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %s should be %d but got %d", s.What, s.Expected,
		s.Actual)
}
