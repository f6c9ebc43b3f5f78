package config

import (
	"os"
	"path/filepath"
	"testing"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, autonorm.DefaultMaxVocabularySize, cfg.MaxVocabularySize)
	assert.Equal(t, autonorm.DefaultVectorDimension, cfg.VectorDimension)
	assert.Equal(t, "wiki.en.vec", cfg.VectorsPath("en"))
	assert.Equal(t, "concreteness-norms-en-prediction-transform.coef",
		cfg.CoefficientsPath("concreteness", "en"))
	assert.Equal(t, "concreteness-estimates-nl.csv", cfg.EstimatesPath("concreteness", "nl"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autonorm.yaml")
	contents := "max_vocabulary_size: 5000\nvector_dimension: 50\nembeddings_dir: /data\n" +
		"files:\n  estimates: out/{lang}-{norm}.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.MaxVocabularySize)
	assert.Equal(t, 50, cfg.VectorDimension)
	assert.Equal(t, filepath.Join("/data", "wiki.fr.vec"), cfg.VectorsPath("fr"))
	assert.Equal(t, "out/fr-valence.csv", cfg.EstimatesPath("valence", "fr"))
	assert.Equal(t, autonorm.LoaderConfig{MaxVocabularySize: 5000, VectorDimension: 50},
		cfg.LoaderConfig())
}

func TestVectorCachePath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.VectorCachePath("concreteness", "en"))

	path := filepath.Join(t.TempDir(), "autonorm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files:\n  vector_cache: cache/{lang}.bin\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cache/nl.bin", cfg.VectorCachePath("concreteness", "nl"))
	assert.Equal(t, "wiki.nl.vec", cfg.VectorsPath("nl"))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvMaxVocabularySize, "12")
	t.Setenv(EnvVectorDimension, "3")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxVocabularySize)
	assert.Equal(t, 3, cfg.VectorDimension)

	t.Setenv(EnvVectorDimension, "three")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autonorm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vector_dimension: -1\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	// Registered with t.Setenv first so the variable is restored afterwards.
	t.Setenv(EnvEmbeddingsDir, "")
	os.Unsetenv(EnvEmbeddingsDir)
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvEmbeddingsDir+"=/vectors\n"), 0o644))
	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/vectors", "wiki.de.vec"), cfg.VectorsPath("de"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "autonorm.yaml")
	cfg := defaultConfig()
	cfg.VectorDimension = 100
	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
