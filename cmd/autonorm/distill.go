package main

import (
	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/billdthompson/cogsci-auto-norm/distill"
	"github.com/billdthompson/cogsci-auto-norm/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type distillOptions struct {
	normsPath    string
	language     string
	norm         string
	vectors      string
	coefficients string
	output       string
	preserveCase bool
	langCasing   bool
}

func newDistillCmd(global *globalOptions, log *logrus.Logger) *cobra.Command {
	opts := &distillOptions{}
	cmd := &cobra.Command{
		Use:   "distill",
		Short: "Fit a norm regression and estimate the norm for a vocabulary",
		Long: `Regress human ratings on word vectors, save the coefficients, and
write an estimate for every word in the embedding vocabulary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistill(log, global, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.normsPath, "filename", "f", "norms.csv", "table of rated words")
	flags.StringVarP(&opts.language, "language", "l", "en", "language of the ratings")
	flags.StringVarP(&opts.norm, "norm", "n", "concreteness", "norm column to regress")
	flags.StringVar(&opts.vectors, "vectors", "", "embedding file (default from config)")
	flags.StringVar(&opts.coefficients, "coefficients", "", "coefficient output (default from config)")
	flags.StringVar(&opts.output, "output", "", "estimates output (default from config)")
	flags.BoolVar(&opts.preserveCase, "preserve-case", false, "match rated words without lower-casing")
	flags.BoolVar(&opts.langCasing, "language-casing", false,
		"lower-case rated words with the rules of --language")
	return cmd
}

func runDistill(log *logrus.Logger, global *globalOptions, opts *distillOptions) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	run := metrics.NewRun("distill", opts.norm, opts.language)
	vectorsPath := orDefault(opts.vectors, cfg.VectorsPath(opts.language))
	coefPath := orDefault(opts.coefficients, cfg.CoefficientsPath(opts.norm, opts.language))
	outPath := orDefault(opts.output, cfg.EstimatesPath(opts.norm, opts.language))

	log.Infof("Preprocessing > Reading data from %s", opts.normsPath)
	norms, err := autonorm.LoadNorms(opts.normsPath, autonorm.NormOptions{
		Norm:   opts.norm,
		Folder: opts.folder(),
	})
	if err != nil {
		return err
	}
	log.Infof("Preprocessing > Centered %d %s norms to zero-mean", norms.Len(), opts.norm)
	run.Set(run.NormWords, float64(norms.Len()))

	cachePath := cfg.VectorCachePath(opts.norm, opts.language)
	vocab, err := loadVocabulary(log, cfg, vectorsPath, cachePath, run)
	if err != nil {
		return err
	}

	aligner := &distill.Aligner{
		Log:              log,
		EstimatesPath:    outPath,
		CoefficientsPath: coefPath,
	}
	res, err := aligner.Run(vocab, norms)
	if err != nil {
		return err
	}
	run.Set(run.CoveredWords, float64(res.NumTraining))
	run.Set(run.Correlation, res.Correlation)
	return finishRun(log, global, run)
}

// folder returns the case folding for rated words.
// Folding is language-neutral unless --language-casing
// is given.
func (d *distillOptions) folder() autonorm.Folder {
	f := autonorm.Folder{PreserveCase: d.preserveCase}
	if d.langCasing {
		f.Language = d.language
	}
	return f
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
