package verdict

type FallbackCode string

const (
	FallbackNone          FallbackCode = ""
	FallbackInvalidFormat FallbackCode = "invalid_format"
	FallbackAnalysisError FallbackCode = "analysis_error"

	InvalidFormatReason = "Analysis produced invalid format. Manual review recommended."
	AnalysisErrorReason = "Error during analysis. Manual review recommended."
)

// FallbackVerdict maps a fallback code to the suspected verdict that routes
// the app to manual review.
func FallbackVerdict(code FallbackCode) Verdict {
	if code == FallbackInvalidFormat {
		return Verdict{Type: Suspected, Reason: InvalidFormatReason}
	}
	return Verdict{Type: Suspected, Reason: AnalysisErrorReason}
}

// Outcome is either an accepted verdict or a fallback code.
type Outcome struct {
	accepted Verdict
	fallback FallbackCode
}

func Accepted(v Verdict) Outcome {
	return Outcome{accepted: v}
}

func Fallback(code FallbackCode) Outcome {
	if code == FallbackNone {
		code = FallbackAnalysisError
	}
	return Outcome{fallback: code}
}

func (o Outcome) IsAccepted() bool {
	return o.fallback == FallbackNone
}

func (o Outcome) FallbackCode() FallbackCode {
	return o.fallback
}

// Verdict resolves the outcome to a concrete verdict.
func (o Outcome) Verdict() Verdict {
	if o.IsAccepted() {
		return o.accepted
	}
	return FallbackVerdict(o.fallback)
}
