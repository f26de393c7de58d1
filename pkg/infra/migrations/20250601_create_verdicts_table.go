package migrations

import (
	"github.com/NeuralTrust/AppVerdict/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250601_create_verdicts_table",
		Name: "Create verdicts table",

		Up: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS verdicts (
					id         UUID PRIMARY KEY,
					run_id     UUID NOT NULL,
					position   INTEGER NOT NULL,
					app_id     TEXT NOT NULL,
					app_title  TEXT NOT NULL,
					type       VARCHAR(16) NOT NULL,
					reason     TEXT NOT NULL,
					fallback   VARCHAR(32) NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE(run_id, position)
				);
			`).Error; err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_verdicts_app_id ON verdicts (app_id);`).Error
		},

		Down: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS verdicts;`).Error
		},
	})
}
