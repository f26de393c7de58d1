package repository

import (
	"context"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type verdictRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID     uuid.UUID `gorm:"type:uuid;not null"`
	Position  int       `gorm:"not null"`
	AppID     string    `gorm:"not null"`
	AppTitle  string    `gorm:"not null"`
	Type      string    `gorm:"not null"`
	Reason    string    `gorm:"not null"`
	Fallback  string
	CreatedAt time.Time
}

func (verdictRow) TableName() string {
	return "verdicts"
}

func toRow(rec verdict.Record) verdictRow {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return verdictRow{
		ID:        uuid.New(),
		RunID:     rec.RunID,
		Position:  rec.Index,
		AppID:     rec.Report.AppID,
		AppTitle:  rec.Report.AppTitle,
		Type:      string(rec.Report.Type),
		Reason:    rec.Report.Reason,
		Fallback:  string(rec.Fallback),
		CreatedAt: createdAt,
	}
}

func (r verdictRow) toRecord() verdict.Record {
	return verdict.Record{
		RunID: r.RunID,
		Index: r.Position,
		Report: verdict.NewReport(verdict.Verdict{
			Type:   verdict.Type(r.Type),
			Reason: r.Reason,
		}, r.AppID, r.AppTitle),
		Fallback:  verdict.FallbackCode(r.Fallback),
		CreatedAt: r.CreatedAt,
	}
}

type verdictRepository struct {
	db *gorm.DB
}

func NewVerdictRepository(db *gorm.DB) verdict.Repository {
	return &verdictRepository{db: db}
}

// Publish stores one record. Re-publishing the same run position overwrites
// the earlier verdict.
func (r *verdictRepository) Publish(ctx context.Context, rec verdict.Record) error {
	row := toRow(rec)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}, {Name: "position"}},
		DoUpdates: clause.AssignmentColumns([]string{"app_id", "app_title", "type", "reason", "fallback", "created_at"}),
	}).Create(&row).Error
}

func (r *verdictRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]verdict.Record, error) {
	var rows []verdictRow
	if err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewNotFoundError("verdict run", runID)
	}
	records := make([]verdict.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}
