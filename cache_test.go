package autonorm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/unixpickle/serializer"
)

func TestVocabularySerialize(t *testing.T) {
	vocab, err := NewVocabulary([]string{"dog", "rock", "dog"},
		[][]float64{{1, 0}, {0, 1}, {0.5, -0.5}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := serializer.SerializeAny(vocab)
	if err != nil {
		t.Fatal(err)
	}
	var decoded *Vocabulary
	if err := serializer.DeserializeAny(data, &decoded); err != nil {
		t.Fatal(err)
	}
	assertSameVocabulary(t, vocab, decoded)
}

func TestLoadVocabularyCached(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "wiki.en.vec")
	cachePath := filepath.Join(dir, "wiki.en.cache")
	if err := os.WriteFile(textPath, []byte(testVocabulary), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := LoaderConfig{VectorDimension: 3}

	parsed, cached, err := LoadVocabularyCached(textPath, cachePath, cfg)
	if err != nil {
		t.Fatal(err)
	} else if cached {
		t.Error("first load should not use the cache")
	}

	loaded, cached, err := LoadVocabularyCached(textPath, cachePath, cfg)
	if err != nil {
		t.Fatal(err)
	} else if !cached {
		t.Error("second load should use the cache")
	}
	assertSameVocabulary(t, parsed, loaded)

	truncated, cached, err := LoadVocabularyCached(textPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !cached || truncated.Len() != 1 || truncated.Vectors.Rows != 1 {
		t.Errorf("expected 1 cached row but got %d (cached=%v)", truncated.Len(), cached)
	}

	narrow, cached, err := LoadVocabularyCached(textPath, cachePath, LoaderConfig{VectorDimension: 2})
	if err != nil {
		t.Fatal(err)
	}
	if cached || narrow.Dim() != 2 {
		t.Errorf("expected a fresh 2-dimensional parse but got dim %d (cached=%v)", narrow.Dim(),
			cached)
	}
}

func TestLoadVocabularyCachedOtherSource(t *testing.T) {
	dir := t.TempDir()
	enPath := filepath.Join(dir, "wiki.en.vec")
	nlPath := filepath.Join(dir, "wiki.nl.vec")
	cachePath := filepath.Join(dir, "vectors.cache")
	if err := os.WriteFile(enPath, []byte(testVocabulary), 0o644); err != nil {
		t.Fatal(err)
	}
	nlVocabulary := "3 3\nhond 1 0 0\nsteen 0 1 0\nidee 0 0 1\n"
	if err := os.WriteFile(nlPath, []byte(nlVocabulary), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadVocabularyCached(enPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 2}); err != nil {
		t.Fatal(err)
	}
	vocab, cached, err := LoadVocabularyCached(nlPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 3})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"hond", "steen", "idee"}
	if cached || !reflect.DeepEqual(vocab.Words, expected) {
		t.Errorf("expected %v but got %v (cached=%v)", expected, vocab.Words, cached)
	}
}

func TestLoadVocabularyCachedRaisedCap(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "wiki.en.vec")
	cachePath := filepath.Join(dir, "wiki.en.cache")
	if err := os.WriteFile(textPath, []byte(testVocabulary), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadVocabularyCached(textPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 2}); err != nil {
		t.Fatal(err)
	}

	vocab, cached, err := LoadVocabularyCached(textPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 3})
	if err != nil {
		t.Fatal(err)
	}
	if cached || vocab.Len() != 3 {
		t.Errorf("expected 3 parsed rows but got %d (cached=%v)", vocab.Len(), cached)
	}

	// The cap-3 cache is full, so a larger cap must reparse.
	vocab, cached, err = LoadVocabularyCached(textPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if cached || vocab.Len() != 4 {
		t.Errorf("expected 4 parsed rows but got %d (cached=%v)", vocab.Len(), cached)
	}

	// The whole file fits under a cap of 10, so any cap is
	// served from the cache now.
	vocab, cached, err = LoadVocabularyCached(textPath, cachePath,
		LoaderConfig{VectorDimension: 3, MaxVocabularySize: 50})
	if err != nil {
		t.Fatal(err)
	}
	if !cached || vocab.Len() != 4 {
		t.Errorf("expected 4 cached rows but got %d (cached=%v)", vocab.Len(), cached)
	}
}

func TestLoadVocabularyCachedMissingText(t *testing.T) {
	dir := t.TempDir()
	_, _, err := LoadVocabularyCached(filepath.Join(dir, "wiki.xx.vec"),
		filepath.Join(dir, "wiki.xx.cache"), LoaderConfig{})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError but got %v", err)
	}
}

func TestLoadVocabularyNoCache(t *testing.T) {
	textPath := filepath.Join(t.TempDir(), "wiki.en.vec")
	if err := os.WriteFile(textPath, []byte(testVocabulary), 0o644); err != nil {
		t.Fatal(err)
	}
	vocab, cached, err := LoadVocabularyCached(textPath, "", LoaderConfig{VectorDimension: 3})
	if err != nil {
		t.Fatal(err)
	}
	if cached || vocab.Len() != 4 {
		t.Errorf("unexpected result: cached=%v len=%d", cached, vocab.Len())
	}
}

func assertSameVocabulary(t *testing.T, expected, actual *Vocabulary) {
	t.Helper()
	if !reflect.DeepEqual(expected.Words, actual.Words) {
		t.Errorf("expected words %v but got %v", expected.Words, actual.Words)
	}
	if expected.Vectors.Rows != actual.Vectors.Rows || expected.Vectors.Cols != actual.Vectors.Cols {
		t.Errorf("expected %dx%d but got %dx%d", expected.Vectors.Rows, expected.Vectors.Cols,
			actual.Vectors.Rows, actual.Vectors.Cols)
	}
	expectedData := float64Data(expected.Vectors.Data)
	actualData := float64Data(actual.Vectors.Data)
	if !reflect.DeepEqual(expectedData, actualData) {
		t.Errorf("expected vectors %v but got %v", expectedData, actualData)
	}
}
