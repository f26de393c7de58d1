package features

import (
	domain "github.com/NeuralTrust/AppVerdict/pkg/domain/features"
)

const ExcessiveDangerousRatio = 0.4

var dangerousPermissions = map[string]struct{}{
	"android.permission.READ_CONTACTS":          {},
	"android.permission.ACCESS_FINE_LOCATION":   {},
	"android.permission.RECORD_AUDIO":           {},
	"android.permission.CAMERA":                 {},
	"android.permission.READ_SMS":               {},
	"android.permission.SEND_SMS":               {},
	"android.permission.CALL_PHONE":             {},
	"android.permission.READ_CALL_LOG":          {},
	"android.permission.READ_EXTERNAL_STORAGE":  {},
	"android.permission.WRITE_EXTERNAL_STORAGE": {},
	"android.permission.GET_ACCOUNTS":           {},
	"android.permission.READ_PHONE_STATE":       {},
}

// IsDangerous reports whether permission belongs to the dangerous reference set.
func IsDangerous(permission string) bool {
	_, ok := dangerousPermissions[permission]
	return ok
}

// DangerousPermissions returns a copy of the reference set.
func DangerousPermissions() []string {
	out := make([]string, 0, len(dangerousPermissions))
	for p := range dangerousPermissions {
		out = append(out, p)
	}
	return out
}

func AnalyzePermissions(permissions []string) domain.PermissionAnalysis {
	found := make([]string, 0)
	for _, p := range permissions {
		if IsDangerous(p) {
			found = append(found, p)
		}
	}
	analysis := domain.PermissionAnalysis{
		Total:          len(permissions),
		DangerousCount: len(found),
		DangerousFound: found,
	}
	if analysis.Total > 0 {
		analysis.DangerousRatio = float64(analysis.DangerousCount) / float64(analysis.Total)
	}
	return analysis
}
