package evaluation

import (
	"errors"
	"fmt"

	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/evaluation"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
)

var (
	ErrLengthMismatch = errors.New("label lists must be the same length")
	ErrEmptyLabels    = errors.New("label lists cannot be empty")
)

// Evaluate compares predicted labels against ground truth. Labels are 0 for
// genuine and 1 for fraud or suspected; other values land in no matrix cell
// but still count towards the sample size. Ratios with a zero denominator
// are reported as 0.
func Evaluate(trueLabels, predLabels []int) (domain.Report, error) {
	if len(trueLabels) != len(predLabels) {
		return domain.Report{}, fmt.Errorf("%w: %d true vs %d predicted", ErrLengthMismatch, len(trueLabels), len(predLabels))
	}
	if len(trueLabels) == 0 {
		return domain.Report{}, ErrEmptyLabels
	}

	var m domain.ConfusionMatrix
	for i, t := range trueLabels {
		p := predLabels[i]
		switch {
		case t == domain.LabelFraud && p == domain.LabelFraud:
			m.TruePositives++
		case t == domain.LabelGenuine && p == domain.LabelFraud:
			m.FalsePositives++
		case t == domain.LabelGenuine && p == domain.LabelGenuine:
			m.TrueNegatives++
		case t == domain.LabelFraud && p == domain.LabelGenuine:
			m.FalseNegatives++
		}
	}

	tp := float64(m.TruePositives)
	fp := float64(m.FalsePositives)
	tn := float64(m.TrueNegatives)
	fn := float64(m.FalseNegatives)

	precision := ratio(tp, tp+fp)
	recall := ratio(tp, tp+fn)

	return domain.Report{
		Accuracy:          (tp + tn) / float64(len(trueLabels)),
		Precision:         precision,
		Recall:            recall,
		F1Score:           ratio(2*precision*recall, precision+recall),
		FalsePositiveRate: ratio(fp, fp+tn),
		FalseNegativeRate: ratio(fn, fn+tp),
		ConfusionMatrix:   m,
		Samples:           len(trueLabels),
	}, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// LabelOf maps a verdict type onto the binary label space. Anything that is
// not genuine counts as positive.
func LabelOf(t verdict.Type) int {
	if t == verdict.Genuine {
		return domain.LabelGenuine
	}
	return domain.LabelFraud
}

func LabelsFromReports(reports []verdict.Report) []int {
	labels := make([]int, len(reports))
	for i, r := range reports {
		labels[i] = LabelOf(r.Type)
	}
	return labels
}

// Align pairs every report with its ground-truth label by app id. Reports
// without a label are skipped and their ids returned.
func Align(truth map[string]int, reports []verdict.Report) (trueLabels, predLabels []int, unlabeled []string) {
	trueLabels = make([]int, 0, len(reports))
	predLabels = make([]int, 0, len(reports))
	for _, r := range reports {
		label, ok := truth[r.AppID]
		if !ok {
			unlabeled = append(unlabeled, r.AppID)
			continue
		}
		trueLabels = append(trueLabels, label)
		predLabels = append(predLabels, LabelOf(r.Type))
	}
	return trueLabels, predLabels, unlabeled
}
