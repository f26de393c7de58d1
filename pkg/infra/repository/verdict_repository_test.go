package repository

import (
	"testing"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVerdictRow_Conversion(t *testing.T) {
	runID := uuid.New()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rec := verdict.Record{
		RunID: runID,
		Index: 3,
		Report: verdict.NewReport(verdict.Verdict{
			Type:   verdict.Suspected,
			Reason: "many dangerous permissions",
		}, "com.example.wallet", "Wallet"),
		CreatedAt: created,
	}

	row := toRow(rec)
	assert.NotEqual(t, uuid.Nil, row.ID)
	assert.Equal(t, "verdicts", row.TableName())
	assert.Equal(t, 3, row.Position)
	assert.Equal(t, "suspected", row.Type)
	assert.Equal(t, "", row.Fallback)

	assert.Equal(t, rec, row.toRecord())
}

func TestVerdictRow_DefaultsCreatedAt(t *testing.T) {
	rec := verdict.Record{
		RunID:    uuid.New(),
		Report:   verdict.NewReport(verdict.FallbackVerdict(verdict.FallbackAnalysisError), "x", "X"),
		Fallback: verdict.FallbackAnalysisError,
	}
	row := toRow(rec)
	assert.False(t, row.CreatedAt.IsZero())
	assert.Equal(t, string(verdict.FallbackAnalysisError), row.Fallback)
}
