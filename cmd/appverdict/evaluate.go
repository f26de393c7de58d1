package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/NeuralTrust/AppVerdict/pkg/app/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/config"
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/storage"
	"github.com/sirupsen/logrus"
)

var errLabelsRequired = errors.New("a labels file is required (--labels or paths.labels)")

// evaluateReports scores reports against the labels file and saves the
// metrics document. The empty report is saved too when the labels cannot be
// aligned, so a stale metrics file never survives a failed evaluation.
func evaluateReports(store storage.Store, logger *logrus.Logger, cfg *config.Config, reports []verdict.Report) (domain.Report, error) {
	if cfg.Paths.Labels == "" {
		return domain.Report{}, errLabelsRequired
	}
	labels, err := store.LoadLabels(cfg.Paths.Labels)
	if err != nil {
		return domain.Report{}, err
	}

	trueLabels, predLabels, unlabeled := evaluation.Align(labels, reports)
	if len(unlabeled) > 0 {
		logger.WithFields(logrus.Fields{
			"count":   len(unlabeled),
			"app_ids": unlabeled,
		}).Warn("apps without ground-truth label were left out of the evaluation")
	}

	report, evalErr := evaluation.Evaluate(trueLabels, predLabels)
	if err := store.Save(cfg.Paths.Metrics, report); err != nil {
		return report, err
	}
	if evalErr != nil {
		return report, evalErr
	}
	logger.WithFields(logrus.Fields{
		"samples":  report.Samples,
		"accuracy": report.Accuracy,
		"path":     cfg.Paths.Metrics,
	}).Info("evaluation complete")
	return report, nil
}

func runEvaluate(cfg *config.Config, logger *logrus.Logger, store storage.Store, out io.Writer) int {
	reports, err := store.LoadReports(cfg.Paths.Output)
	if err != nil {
		logger.WithError(err).Error("failed to load analysis results")
		_, _ = fmt.Fprintf(out, "\nError: %v\n", err)
		return exitError
	}
	report, err := evaluateReports(store, logger, cfg, reports)
	if err != nil {
		logger.WithError(err).Error("evaluation failed")
		_, _ = fmt.Fprintf(out, "\nError: %v\n", err)
		return exitError
	}
	printMetrics(out, report, cfg.Paths.Metrics)
	return exitOK
}
