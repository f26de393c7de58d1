package judgment

import (
	"strings"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   bool
	}{
		{"fraud", map[string]any{"type": "fraud", "reason": "Clone of a banking app"}, true},
		{"genuine", map[string]any{"type": "genuine", "reason": ""}, true},
		{"suspected", map[string]any{"type": "suspected", "reason": "Unclear"}, true},
		{"struct", verdict.Verdict{Type: verdict.Genuine, Reason: "ok"}, true},
		{"reason at limit", map[string]any{"type": "fraud", "reason": strings.Repeat("a", 300)}, true},
		{"multibyte reason at limit", map[string]any{"type": "fraud", "reason": strings.Repeat("é", 300)}, true},
		{"reason over limit", map[string]any{"type": "fraud", "reason": strings.Repeat("a", 301)}, false},
		{"unknown type", map[string]any{"type": "scam", "reason": "x"}, false},
		{"uppercase type", map[string]any{"type": "FRAUD", "reason": "x"}, false},
		{"missing reason", map[string]any{"type": "fraud"}, false},
		{"missing type", map[string]any{"reason": "x"}, false},
		{"extra key", map[string]any{"type": "fraud", "reason": "x", "confidence": 0.9}, false},
		{"reason not a string", map[string]any{"type": "fraud", "reason": 7}, false},
		{"array", []any{"fraud", "x"}, false},
		{"string", "fraud", false},
		{"nil", nil, false},
		{"unmarshalable", map[string]any{"type": make(chan int)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.result))
		})
	}
}
