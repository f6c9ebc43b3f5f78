package autonorm

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/unixpickle/anyvec/anyvec64"
)

func TestCoefficientsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.coef")
	expected := []float64{1, -2.5e-9, math.Pi}
	if err := SaveCoefficients(path, anyvec64.MakeVectorData(expected)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	firstLine := "1.000000000000000000e+00\n"
	if !bytes.HasPrefix(data, []byte(firstLine)) {
		t.Errorf("expected file to start with %q but got %q", firstLine, data)
	}
	coefs, err := LoadCoefficients(path)
	if err != nil {
		t.Fatal(err)
	}
	if actual := float64Data(coefs); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestLoadMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nl.txt")
	if err := os.WriteFile(path, []byte("# alignment\n1 2\n\n3 4\n5   6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mat, err := LoadMatrix(path)
	if err != nil {
		t.Fatal(err)
	}
	if mat.Rows != 3 || mat.Cols != 2 {
		t.Errorf("unexpected shape %dx%d", mat.Rows, mat.Cols)
	}
	expected := []float64{1, 2, 3, 4, 5, 6}
	if actual := float64Data(mat.Data); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestLoadMatrixErrors(t *testing.T) {
	dir := t.TempDir()
	for name, contents := range map[string]string{
		"ragged.txt": "1 2\n3\n",
		"empty.txt":  "\n",
		"bad.txt":    "1 x\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadMatrix(path)
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("%s: expected FormatError but got %v", name, err)
		}
	}
	_, err := LoadMatrix(filepath.Join(dir, "missing.txt"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError but got %v", err)
	}
}

func TestWriteEstimates(t *testing.T) {
	rows := []Estimate{
		{Word: "dog", Observed: 5, HasObserved: true, Estimated: 5},
		{Word: "idea", Estimated: 2.75},
		{Word: "a,b", Estimated: 1e-7},
		{Word: "rock", Observed: -3, HasObserved: true, Estimated: 0},
		{Word: "sea", Estimated: 1e16},
	}
	var buf bytes.Buffer
	if err := WriteEstimates(&buf, "concreteness", rows, true); err != nil {
		t.Fatal(err)
	}
	expected := "word,concreteness,estimated-concreteness\n" +
		"dog,5.0,5.0\n" +
		"idea,,2.75\n" +
		"\"a,b\",,1e-07\n" +
		"rock,-3.0,0.0\n" +
		"sea,,1e+16\n"
	if buf.String() != expected {
		t.Errorf("expected %q but got %q", expected, buf.String())
	}

	buf.Reset()
	if err := WriteEstimates(&buf, "valence", rows[1:2], false); err != nil {
		t.Fatal(err)
	}
	expected = "word,estimated-valence\nidea,2.75\n"
	if buf.String() != expected {
		t.Errorf("expected %q but got %q", expected, buf.String())
	}
}

func TestSaveEstimatesFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	if err := SaveEstimates(path, "x", nil, false); err == nil {
		t.Error("expected an error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no output file but got %v", err)
	}
}
