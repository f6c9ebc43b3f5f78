package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvMaxVocabularySize = "AUTONORM_MAX_VOCABULARY_SIZE"
	EnvVectorDimension   = "AUTONORM_VECTOR_DIMENSION"
	EnvEmbeddingsDir     = "AUTONORM_EMBEDDINGS_DIR"
)

// FileNames holds templates for the files a run reads and
// writes. "{norm}" and "{lang}" are replaced by the run's
// norm and language.
type FileNames struct {
	Vectors      string `yaml:"vectors"`
	Coefficients string `yaml:"coefficients"`
	Estimates    string `yaml:"estimates"`

	// VectorCache, if set, is where a parsed vocabulary is
	// cached between runs.
	VectorCache string `yaml:"vector_cache,omitempty"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	MaxVocabularySize int       `yaml:"max_vocabulary_size"`
	VectorDimension   int       `yaml:"vector_dimension"`
	EmbeddingsDir     string    `yaml:"embeddings_dir"`
	Files             FileNames `yaml:"files"`
}

// Load reads a config from a path. If the file does not
// exist, defaults are returned.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else if err == nil {
		cfg = &AppConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		applyConfigDefaults(cfg)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads variables from a .env file into the
// process environment, if the file exists.
// Variables which are already set are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Save writes the config to the given path, creating
// directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the sizes are usable.
func (c *AppConfig) Validate() error {
	if c.MaxVocabularySize <= 0 {
		return fmt.Errorf("max_vocabulary_size must be positive, got %d", c.MaxVocabularySize)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("vector_dimension must be positive, got %d", c.VectorDimension)
	}
	return nil
}

// LoaderConfig returns the vocabulary limits.
func (c *AppConfig) LoaderConfig() autonorm.LoaderConfig {
	return autonorm.LoaderConfig{
		MaxVocabularySize: c.MaxVocabularySize,
		VectorDimension:   c.VectorDimension,
	}
}

// VectorsPath returns the embedding file for a language.
func (c *AppConfig) VectorsPath(lang string) string {
	name := expand(c.Files.Vectors, "", lang)
	if c.EmbeddingsDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.EmbeddingsDir, name)
}

// VectorCachePath returns the vocabulary cache for a run,
// or "" if caching is disabled.
func (c *AppConfig) VectorCachePath(norm, lang string) string {
	return expand(c.Files.VectorCache, norm, lang)
}

// CoefficientsPath returns the coefficient file for a norm
// fit in a language.
func (c *AppConfig) CoefficientsPath(norm, lang string) string {
	return expand(c.Files.Coefficients, norm, lang)
}

// EstimatesPath returns the output table for a norm in a
// language.
func (c *AppConfig) EstimatesPath(norm, lang string) string {
	return expand(c.Files.Estimates, norm, lang)
}

func expand(template, norm, lang string) string {
	return strings.NewReplacer("{norm}", norm, "{lang}", lang).Replace(template)
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		MaxVocabularySize: autonorm.DefaultMaxVocabularySize,
		VectorDimension:   autonorm.DefaultVectorDimension,
		Files: FileNames{
			Vectors:      "wiki.{lang}.vec",
			Coefficients: "{norm}-norms-{lang}-prediction-transform.coef",
			Estimates:    "{norm}-estimates-{lang}.csv",
		},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	defaults := defaultConfig()
	if cfg.MaxVocabularySize == 0 {
		cfg.MaxVocabularySize = defaults.MaxVocabularySize
	}
	if cfg.VectorDimension == 0 {
		cfg.VectorDimension = defaults.VectorDimension
	}
	if cfg.Files.Vectors == "" {
		cfg.Files.Vectors = defaults.Files.Vectors
	}
	if cfg.Files.Coefficients == "" {
		cfg.Files.Coefficients = defaults.Files.Coefficients
	}
	if cfg.Files.Estimates == "" {
		cfg.Files.Estimates = defaults.Files.Estimates
	}
}

func applyEnv(cfg *AppConfig) error {
	for name, dest := range map[string]*int{
		EnvMaxVocabularySize: &cfg.MaxVocabularySize,
		EnvVectorDimension:   &cfg.VectorDimension,
	} {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dest = n
		}
	}
	if value, ok := os.LookupEnv(EnvEmbeddingsDir); ok {
		cfg.EmbeddingsDir = value
	}
	return nil
}
