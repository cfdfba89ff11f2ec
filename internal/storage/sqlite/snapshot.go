package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/pomodoro"
)

func (s *Store) GetSnapshot() (pomodoro.Snapshot, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT data FROM snapshot WHERE id = 1").Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomodoro.Snapshot{}, false, nil
		}
		return pomodoro.Snapshot{}, false, err
	}

	var snap pomodoro.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return pomodoro.Snapshot{}, false, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *Store) SaveSnapshot(snap pomodoro.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ClearSnapshot() error {
	_, err := s.db.Exec("DELETE FROM snapshot WHERE id = 1")
	return err
}
