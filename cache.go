package autonorm

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Vocabulary{}).SerializerType(),
		DeserializeVocabulary)
}

// DeserializeVocabulary deserializes a Vocabulary.
func DeserializeVocabulary(d []byte) (*Vocabulary, error) {
	var res Vocabulary
	var wordData serializer.Bytes
	var rows, cols int
	var data *anyvecsave.S
	if err := serializer.DeserializeAny(d, &wordData, &rows, &cols, &data); err != nil {
		return nil, essentials.AddCtx("deserialize Vocabulary", err)
	}
	if err := json.Unmarshal(wordData, &res.Words); err != nil {
		return nil, essentials.AddCtx("deserialize Vocabulary", err)
	}
	if len(res.Words) != rows || data.Vector.Len() != rows*cols {
		return nil, essentials.AddCtx("deserialize Vocabulary",
			&ShapeMismatchError{What: "cached rows", Expected: rows, Actual: len(res.Words)})
	}
	res.Vectors = &anyvec.Matrix{
		Data: data.Vector,
		Rows: rows,
		Cols: cols,
	}
	return &res, nil
}

// LoadVocabularyCached is like LoadVocabulary, but it
// keeps a binary copy of the parsed table at cachePath.
//
// The cache records which text file it was parsed from
// (path, size, and modification time) and the loader
// limits that were used. It is only used when it matches
// the current text file and can supply the requested rows.
// Otherwise, the text file is parsed and the cache is
// rewritten.
// The bool result reports whether the cache was used.
//
// If cachePath is empty, no cache is used.
func LoadVocabularyCached(textPath, cachePath string, cfg LoaderConfig) (vocab *Vocabulary,
	cached bool, err error) {
	if cachePath == "" {
		vocab, err = LoadVocabulary(textPath, cfg)
		return vocab, false, err
	}
	key, err := newCacheKey(textPath, cfg)
	if err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(cachePath); err == nil {
		var keyData serializer.Bytes
		var cachedVocab *Vocabulary
		if err := serializer.LoadAny(cachePath, &keyData, &cachedVocab); err != nil {
			return nil, false, essentials.AddCtx("load vocabulary cache", err)
		}
		var cachedKey cacheKey
		if err := json.Unmarshal(keyData, &cachedKey); err != nil {
			return nil, false, essentials.AddCtx("load vocabulary cache", err)
		}
		if cachedKey.covers(key, cachedVocab.Len()) {
			return cachedVocab.truncate(key.MaxRows), true, nil
		}
	}

	vocab, err = LoadVocabulary(textPath, cfg)
	if err != nil {
		return nil, false, err
	}
	keyData, err := json.Marshal(key)
	if err != nil {
		return nil, false, err
	}
	if err := serializer.SaveAny(cachePath, serializer.Bytes(keyData), vocab); err != nil {
		return nil, false, essentials.AddCtx("save vocabulary cache", err)
	}
	return vocab, false, nil
}

// cacheKey identifies the text file and loader limits a
// cached Vocabulary was built from.
type cacheKey struct {
	Source  string `json:"source"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
	MaxRows int    `json:"max_rows"`
	Dim     int    `json:"dim"`
}

func newCacheKey(textPath string, cfg LoaderConfig) (*cacheKey, error) {
	info, err := os.Stat(textPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, essentials.AddCtx("load vocabulary", &NotFoundError{Path: textPath})
		}
		return nil, essentials.AddCtx("load vocabulary", err)
	}
	source, err := filepath.Abs(textPath)
	if err != nil {
		return nil, essentials.AddCtx("load vocabulary", err)
	}
	return &cacheKey{
		Source:  source,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		MaxRows: cfg.MaxRows(),
		Dim:     cfg.Dim(),
	}, nil
}

// covers checks if a cache built under k, holding rows
// rows, can serve a load under want.
//
// A cache that stopped short of its cap holds the whole
// file, so it serves any cap.
func (k *cacheKey) covers(want *cacheKey, rows int) bool {
	if k.Source != want.Source || k.Size != want.Size || k.ModTime != want.ModTime ||
		k.Dim != want.Dim {
		return false
	}
	return want.MaxRows <= k.MaxRows || rows < k.MaxRows
}

// SerializerType returns the unique ID used to serialize
// a Vocabulary with the serializer package.
func (v *Vocabulary) SerializerType() string {
	return "github.com/billdthompson/cogsci-auto-norm.Vocabulary"
}

// Serialize serializes the Vocabulary.
func (v *Vocabulary) Serialize() ([]byte, error) {
	wordData, err := json.Marshal(v.Words)
	if err != nil {
		return nil, err
	}
	return serializer.SerializeAny(
		serializer.Bytes(wordData),
		v.Vectors.Rows,
		v.Vectors.Cols,
		&anyvecsave.S{Vector: v.Vectors.Data},
	)
}

func (v *Vocabulary) truncate(rows int) *Vocabulary {
	if v.Len() <= rows {
		return v
	}
	return &Vocabulary{
		Words: v.Words[:rows],
		Vectors: &anyvec.Matrix{
			Data: v.Vectors.Data.Slice(0, rows*v.Vectors.Cols),
			Rows: rows,
			Cols: v.Vectors.Cols,
		},
	}
}
