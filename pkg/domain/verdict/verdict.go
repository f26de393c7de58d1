package verdict

import "unicode/utf8"

type Type string

const (
	Fraud     Type = "fraud"
	Genuine   Type = "genuine"
	Suspected Type = "suspected"

	MaxReasonLength = 300
)

var Types = []Type{Fraud, Genuine, Suspected}

func (t Type) Valid() bool {
	switch t {
	case Fraud, Genuine, Suspected:
		return true
	}
	return false
}

type Verdict struct {
	Type   Type   `json:"type"`
	Reason string `json:"reason"`
}

func (v Verdict) Valid() bool {
	return v.Type.Valid() && utf8.RuneCountInString(v.Reason) <= MaxReasonLength
}

// Report is a verdict tagged with the app it was produced for.
type Report struct {
	Verdict
	AppID    string `json:"app_id"`
	AppTitle string `json:"app_title"`
}

func NewReport(v Verdict, appID, appTitle string) Report {
	return Report{Verdict: v, AppID: appID, AppTitle: appTitle}
}

// Summary counts reports per verdict type.
type Summary struct {
	Total     int `json:"total"`
	Fraud     int `json:"fraud"`
	Suspected int `json:"suspected"`
	Genuine   int `json:"genuine"`
}

func Summarize(reports []Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		switch r.Type {
		case Fraud:
			s.Fraud++
		case Suspected:
			s.Suspected++
		case Genuine:
			s.Genuine++
		}
	}
	return s
}
