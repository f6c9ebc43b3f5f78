package main

import (
	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/billdthompson/cogsci-auto-norm/extend"
	"github.com/billdthompson/cogsci-auto-norm/internal/metrics"
	"github.com/billdthompson/cogsci-auto-norm/regress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type extendOptions struct {
	language     string
	norm         string
	alignment    string
	coefficients string
	vectors      string
	output       string
}

func newExtendCmd(global *globalOptions, log *logrus.Logger) *cobra.Command {
	opts := &extendOptions{}
	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Estimate a norm in another language using saved coefficients",
		Long: `Map a foreign vocabulary into the source embedding space with an
alignment matrix, then apply coefficients saved by "distill".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtend(log, global, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "language", "l", "nl", "language of the vocabulary")
	flags.StringVarP(&opts.norm, "norm", "n", "concreteness", "norm being estimated")
	flags.StringVarP(&opts.alignment, "vectortransformfile", "v", "nl.txt", "alignment matrix")
	flags.StringVarP(&opts.coefficients, "coefficientfile", "c",
		"concreteness-norms-en-prediction-transform.coef", "coefficients saved by distill")
	flags.StringVar(&opts.vectors, "vectors", "", "embedding file (default from config)")
	flags.StringVar(&opts.output, "output", "", "estimates output (default from config)")
	return cmd
}

func runExtend(log *logrus.Logger, global *globalOptions, opts *extendOptions) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	run := metrics.NewRun("extend", opts.norm, opts.language)
	vectorsPath := orDefault(opts.vectors, cfg.VectorsPath(opts.language))
	outPath := orDefault(opts.output, cfg.EstimatesPath(opts.norm, opts.language))

	cachePath := cfg.VectorCachePath(opts.norm, opts.language)
	vocab, err := loadVocabulary(log, cfg, vectorsPath, cachePath, run)
	if err != nil {
		return err
	}
	log.Infof("Preprocessing > Reading alignment from %s", opts.alignment)
	alignment, err := autonorm.LoadMatrix(opts.alignment)
	if err != nil {
		return err
	}
	log.Infof("Preprocessing > Reading coefficients from %s", opts.coefficients)
	model, err := regress.LoadModel(opts.coefficients)
	if err != nil {
		return err
	}

	transporter := &extend.Transporter{Log: log, Dim: cfg.VectorDimension}
	rows, err := transporter.Run(vocab, alignment, model)
	if err != nil {
		return err
	}

	log.Infof("Postprocessing > Saving predictions out to: %s", outPath)
	if err := autonorm.SaveEstimates(outPath, opts.norm, rows, false); err != nil {
		return err
	}
	return finishRun(log, global, run)
}
