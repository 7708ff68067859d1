package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/cadence/internal/db"
)

// Session is what the player restores at startup.
type Session struct {
	Folder       string
	SelectedName string // file name inside Folder, may be empty
	Volume       float64
}

func getSession(conn *sql.DB) (*Session, error) {
	row := conn.QueryRow(`
		SELECT folder, selected_name, volume FROM session_state WHERE id = 1
	`)

	var s Session
	var selectedName sql.NullString
	err := row.Scan(&s.Folder, &selectedName, &s.Volume)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	s.SelectedName = db.NullStringValue(selectedName)
	return &s, nil
}

func saveSession(conn *sql.DB, s Session) error {
	_, err := conn.Exec(`
		INSERT INTO session_state (id, folder, selected_name, volume, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			folder = excluded.folder,
			selected_name = excluded.selected_name,
			volume = excluded.volume,
			updated_at = excluded.updated_at
	`, s.Folder, db.NullString(s.SelectedName), s.Volume, time.Now().Unix())
	return err
}
