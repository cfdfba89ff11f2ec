package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/models"
)

func (s *Store) GetSchedule() (models.ScheduleConfig, error) {
	var raw string
	err := s.db.QueryRow("SELECT config FROM schedule WHERE id = 1").Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ScheduleConfig{}, fmt.Errorf("schedule not found")
		}
		return models.ScheduleConfig{}, err
	}

	var cfg models.ScheduleConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.ScheduleConfig{}, fmt.Errorf("failed to parse schedule config: %w", err)
	}
	if cfg.WorkingDays == nil {
		cfg.WorkingDays = map[string]bool{}
	}
	return cfg, nil
}

func (s *Store) SaveSchedule(cfg models.ScheduleConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule config: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO schedule (id, config, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}
