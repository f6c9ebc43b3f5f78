package main

import (
	"os"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/billdthompson/cogsci-auto-norm/internal/config"
	"github.com/billdthompson/cogsci-auto-norm/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	configPath    string
	envPath       string
	verbose       bool
	metricsFile   string
	vectorCache   string
	maxVocabulary int
	dimension     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "autonorm",
		Short: "Estimate psycholinguistic norms from word embeddings",
		Long: `autonorm extrapolates human word ratings to a whole embedding vocabulary.

"distill" fits a linear map from word vectors to a norm and estimates the
norm for every word. "extend" reuses the saved map in another language by
way of a cross-lingual alignment matrix.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "autonorm.yaml", "config file path")
	flags.StringVar(&opts.envPath, "env-file", ".env", "file of environment overrides")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics to this file")
	flags.StringVar(&opts.vectorCache, "vector-cache", "",
		"binary cache of the parsed vocabulary; {norm} and {lang} are expanded")
	flags.IntVar(&opts.maxVocabulary, "max-vocabulary", 0, "maximum number of vocabulary rows to read")
	flags.IntVar(&opts.dimension, "dimension", 0, "embedding vector dimension")

	rootCmd.AddCommand(newDistillCmd(opts, log))
	rootCmd.AddCommand(newExtendCmd(opts, log))
	rootCmd.AddCommand(newInitConfigCmd(opts, log))
	return rootCmd
}

// loadConfig combines the config file, environment and
// flags, in increasing order of precedence.
func loadConfig(opts *globalOptions) (*config.AppConfig, error) {
	if err := config.LoadDotEnv(opts.envPath); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.maxVocabulary > 0 {
		cfg.MaxVocabularySize = opts.maxVocabulary
	}
	if opts.dimension > 0 {
		cfg.VectorDimension = opts.dimension
	}
	if opts.vectorCache != "" {
		cfg.Files.VectorCache = opts.vectorCache
	}
	return cfg, cfg.Validate()
}

// loadVocabulary reads the embedding table, using the
// binary cache if one is configured.
func loadVocabulary(log logrus.FieldLogger, cfg *config.AppConfig, path, cachePath string,
	run *metrics.Run) (*autonorm.Vocabulary, error) {
	log.Infof("Preprocessing > Retrieving semantic model from %s", path)
	vocab, cached, err := autonorm.LoadVocabularyCached(path, cachePath, cfg.LoaderConfig())
	if err != nil {
		return nil, err
	}
	if cached {
		log.Debugf("Preprocessing > Read vocabulary from cache %s", cachePath)
	} else if cachePath != "" {
		log.Debugf("Preprocessing > Wrote vocabulary cache %s", cachePath)
	}

	counts := autonorm.CountWords(vocab.Words)
	if extra := counts.ExtraRows(); extra > 0 {
		dups := counts.Duplicates()
		log.WithField("examples", dups[:min(len(dups), 5)]).
			Warnf("Preprocessing > %d vocabulary rows repeat an earlier word", extra)
		run.Set(run.DuplicateWords, float64(extra))
	}
	run.Set(run.VocabularyWords, float64(vocab.Len()))
	return vocab, nil
}

// finishRun records the duration and writes the metrics
// file, if any.
func finishRun(log logrus.FieldLogger, opts *globalOptions, run *metrics.Run) error {
	run.Finish()
	if opts.metricsFile == "" {
		return nil
	}
	log.Debugf("Postprocessing > Writing metrics to %s", opts.metricsFile)
	return run.WriteFile(opts.metricsFile)
}
