package state

import (
	"database/sql"

	"github.com/llehouerou/cadence/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	return db.WithTx(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS session_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				folder TEXT NOT NULL,
				selected_name TEXT,
				volume REAL NOT NULL DEFAULT 1.0,
				updated_at INTEGER NOT NULL
			);
		`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)
		`, currentSchemaVersion)
		return err
	})
}
