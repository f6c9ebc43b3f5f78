// Package distill estimates a norm for every word in an
// embedding vocabulary from a small set of human ratings.
package distill

import (
	"io"
	"os"

	autonorm "github.com/billdthompson/cogsci-auto-norm"
	"github.com/billdthompson/cogsci-auto-norm/regress"
	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"
)

// An Aligner regresses norm scores on embedding vectors
// and applies the regression to a whole vocabulary.
type Aligner struct {
	// Log receives progress messages.
	// If nil, nothing is logged.
	Log logrus.FieldLogger

	// EstimatesPath, if non-empty, is where the estimates
	// table is saved.
	EstimatesPath string

	// CoefficientsPath, if non-empty, is where the fitted
	// coefficients are saved.
	//
	// Coefficients are saved only once the estimates are
	// written, and a failed coefficient write removes the
	// estimates, so a failed run leaves neither file.
	CoefficientsPath string
}

// Result is the outcome of an Aligner run.
type Result struct {
	Norm string

	// Covered has one entry per vocabulary row, indicating
	// whether that row's word has a rating.
	Covered []bool

	// NumTraining is the number of covered rows.
	NumTraining int

	// NumRated is the number of distinct rated words.
	NumRated int

	Model *regress.Model

	// Correlation is the Pearson correlation between the
	// ratings and the estimates of covered rows.
	// It is NaN when undefined.
	Correlation float64

	// Rows has one estimate per vocabulary row, in
	// vocabulary order.
	Rows []autonorm.Estimate
}

// Run fits the regression and estimates the norm for every
// word in the vocabulary.
func (a *Aligner) Run(vocab *autonorm.Vocabulary, norms *autonorm.NormDataset) (res *Result,
	err error) {
	defer essentials.AddCtxTo("distill "+norms.Norm, &err)
	log := a.logger()

	log.Info("Preprocessing > Merging vocabulary and norm table")
	index := norms.Index()
	covered := index.Mask(vocab.Words)
	joined := make([]int, vocab.Len())
	var vocabRows, normRows []int
	for i, word := range vocab.Words {
		row, ok := index.Row(word)
		if !ok {
			joined[i] = -1
			continue
		}
		joined[i] = row
		vocabRows = append(vocabRows, i)
		normRows = append(normRows, row)
	}
	log.Infof("Preprocessing > Vocabulary covers %d (of %d) rated words", len(vocabRows),
		norms.Len())

	log.Info("Regression > Regressing ratings on raw vectors")
	x := regress.SelectRows(vocab.Vectors, vocabRows)
	model, err := regress.Fit(x, norms.Scores.Select(normRows))
	if err != nil {
		return nil, err
	}
	log.Info("Regression > Predicting full vocabulary")
	estimates, err := model.Apply(vocab.Vectors, regress.ApplyOptions{
		Offset:              norms.Mean(),
		ApplyRangeRescaling: true,
		Range:               regress.Range{Min: norms.Min, Max: norms.Max},
	})
	if err != nil {
		return nil, err
	}

	observed := norms.Scores.Uncentered()
	rows := make([]autonorm.Estimate, vocab.Len())
	var trainObserved, trainEstimated []float64
	for i, word := range vocab.Words {
		rows[i] = autonorm.Estimate{Word: word, Estimated: estimates[i]}
		if row := joined[i]; row >= 0 {
			rows[i].Observed = observed[row]
			rows[i].HasObserved = true
			trainObserved = append(trainObserved, observed[row])
			trainEstimated = append(trainEstimated, estimates[i])
		}
	}

	res = &Result{
		Norm:        norms.Norm,
		Covered:     covered,
		NumTraining: len(vocabRows),
		NumRated:    norms.Len(),
		Model:       model,
		Correlation: regress.Pearson(trainObserved, trainEstimated),
		Rows:        rows,
	}
	log.Infof("Regression > Predictions correlate with ratings at: %v", res.Correlation)

	if err := a.save(log, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Aligner) save(log logrus.FieldLogger, res *Result) error {
	if a.EstimatesPath != "" {
		log.Infof("Postprocessing > Saving predictions out to: %s", a.EstimatesPath)
		if err := autonorm.SaveEstimates(a.EstimatesPath, res.Norm, res.Rows, true); err != nil {
			return err
		}
	}
	if a.CoefficientsPath != "" {
		log.Infof("Postprocessing > Saving coefficients to %s", a.CoefficientsPath)
		if err := res.Model.Save(a.CoefficientsPath); err != nil {
			if a.EstimatesPath != "" {
				os.Remove(a.EstimatesPath)
			}
			return err
		}
	}
	return nil
}

func (a *Aligner) logger() logrus.FieldLogger {
	if a.Log != nil {
		return a.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
