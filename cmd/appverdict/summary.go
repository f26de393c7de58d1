package main

import (
	"fmt"
	"io"

	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
)

func printSummary(out io.Writer, reports []verdict.Report, outputPath string) {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(out, "\nNo results to display.")
		return
	}
	s := verdict.Summarize(reports)

	_, _ = fmt.Fprintf(out, "\nAnalysis complete! Checked %d apps.\n", s.Total)
	_, _ = fmt.Fprintf(out, "Results saved to %s\n", outputPath)
	_, _ = fmt.Fprintln(out, "\n========= ANALYSIS SUMMARY =========")
	_, _ = fmt.Fprintf(out, "Total apps analyzed: %d\n", s.Total)
	_, _ = fmt.Fprintf(out, "- Fraud: %d\n", s.Fraud)
	_, _ = fmt.Fprintf(out, "- Suspected: %d\n", s.Suspected)
	_, _ = fmt.Fprintf(out, "- Genuine: %d\n", s.Genuine)
}

func printMetrics(out io.Writer, report domain.Report, metricsPath string) {
	if report.IsEmpty() {
		_, _ = fmt.Fprintln(out, "\nNo metrics to display.")
		return
	}
	cm := report.ConfusionMatrix
	_, _ = fmt.Fprintln(out, "\n========= EVALUATION METRICS =========")
	_, _ = fmt.Fprintf(out, "Samples: %d\n", report.Samples)
	_, _ = fmt.Fprintf(out, "Accuracy: %.4f\n", report.Accuracy)
	_, _ = fmt.Fprintf(out, "Precision: %.4f\n", report.Precision)
	_, _ = fmt.Fprintf(out, "Recall: %.4f\n", report.Recall)
	_, _ = fmt.Fprintf(out, "F1 score: %.4f\n", report.F1Score)
	_, _ = fmt.Fprintf(out, "False positive rate: %.4f\n", report.FalsePositiveRate)
	_, _ = fmt.Fprintf(out, "False negative rate: %.4f\n", report.FalseNegativeRate)
	_, _ = fmt.Fprintf(out, "TP=%d FP=%d TN=%d FN=%d\n", cm.TruePositives, cm.FalsePositives, cm.TrueNegatives, cm.FalseNegatives)
	_, _ = fmt.Fprintf(out, "Metrics saved to %s\n", metricsPath)
}
