package features_test

import (
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/app/features"
	"github.com/stretchr/testify/assert"
)

func TestDangerousPermissions_ReferenceSet(t *testing.T) {
	set := features.DangerousPermissions()
	assert.Len(t, set, 12)

	set[0] = "mutated"
	assert.Len(t, features.DangerousPermissions(), 12)
	assert.NotContains(t, features.DangerousPermissions(), "mutated")
}

func TestAnalyzePermissions_Empty(t *testing.T) {
	analysis := features.AnalyzePermissions(nil)

	assert.Equal(t, 0, analysis.Total)
	assert.Equal(t, 0, analysis.DangerousCount)
	assert.Equal(t, float64(0), analysis.DangerousRatio)
	assert.Empty(t, analysis.DangerousFound)
}

func TestAnalyzePermissions_Mixed(t *testing.T) {
	analysis := features.AnalyzePermissions([]string{
		"android.permission.INTERNET",
		"android.permission.READ_SMS",
		"android.permission.ACCESS_NETWORK_STATE",
		"android.permission.CAMERA",
	})

	assert.Equal(t, 4, analysis.Total)
	assert.Equal(t, 2, analysis.DangerousCount)
	assert.InDelta(t, 0.5, analysis.DangerousRatio, 1e-9)
	assert.Equal(t, []string{"android.permission.READ_SMS", "android.permission.CAMERA"}, analysis.DangerousFound)
}

func TestAnalyzePermissions_RatioIsMonotonic(t *testing.T) {
	dangerous := features.DangerousPermissions()
	permissions := []string{"android.permission.INTERNET", "android.permission.VIBRATE"}

	previous := features.AnalyzePermissions(permissions).DangerousRatio
	for _, p := range dangerous {
		permissions = append(permissions, p)
		analysis := features.AnalyzePermissions(permissions)

		assert.GreaterOrEqual(t, analysis.DangerousRatio, previous)
		assert.InDelta(t, float64(len(analysis.DangerousFound))/float64(len(permissions)), analysis.DangerousRatio, 1e-9)
		previous = analysis.DangerousRatio
	}
}

func TestAnalyzePermissions_AllDangerous(t *testing.T) {
	analysis := features.AnalyzePermissions(features.DangerousPermissions())

	assert.Equal(t, 12, analysis.DangerousCount)
	assert.Equal(t, float64(1), analysis.DangerousRatio)
}
