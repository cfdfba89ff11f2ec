package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/models"
)

func (s *Store) AddReminder(r models.Reminder) error {
	weekdays, err := marshalWeekdays(r.Weekdays)
	if err != nil {
		return err
	}

	var lastSent sql.NullString
	if r.LastSent != nil {
		lastSent = sql.NullString{String: r.LastSent.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO reminders (id, message, time, weekdays, active, last_sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Message, r.Time, weekdays, r.Active, lastSent,
		r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`
		SELECT id, message, time, weekdays, active, last_sent, created_at
		FROM reminders WHERE id = ?`, id)

	r, err := scanReminder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Reminder{}, fmt.Errorf("reminder not found: %s", id)
		}
		return models.Reminder{}, err
	}
	return r, nil
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, message, time, weekdays, active, last_sent, created_at
		FROM reminders ORDER BY time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	weekdays, err := marshalWeekdays(r.Weekdays)
	if err != nil {
		return err
	}

	var lastSent sql.NullString
	if r.LastSent != nil {
		lastSent = sql.NullString{String: r.LastSent.Format(time.RFC3339), Valid: true}
	}

	res, err := s.db.Exec(`
		UPDATE reminders SET message = ?, time = ?, weekdays = ?, active = ?, last_sent = ?
		WHERE id = ?`,
		r.Message, r.Time, weekdays, r.Active, lastSent, r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder not found: %s", r.ID)
	}
	return nil
}

func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reminder not found: %s", id)
	}
	return nil
}

func marshalWeekdays(weekdays []time.Weekday) (string, error) {
	if len(weekdays) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(weekdays)
	if err != nil {
		return "", fmt.Errorf("failed to serialize weekdays: %w", err)
	}
	return string(raw), nil
}

func scanReminder(row rowScanner) (models.Reminder, error) {
	var r models.Reminder
	var weekdays, lastSent sql.NullString
	var createdAt string

	err := row.Scan(&r.ID, &r.Message, &r.Time, &weekdays, &r.Active, &lastSent, &createdAt)
	if err != nil {
		return models.Reminder{}, err
	}

	if weekdays.Valid && weekdays.String != "" {
		if err := json.Unmarshal([]byte(weekdays.String), &r.Weekdays); err != nil {
			return models.Reminder{}, fmt.Errorf("failed to parse reminder weekdays: %w", err)
		}
	}
	if lastSent.Valid {
		t, err := time.Parse(time.RFC3339, lastSent.String)
		if err != nil {
			return models.Reminder{}, fmt.Errorf("failed to parse reminder last_sent: %w", err)
		}
		r.LastSent = &t
	}
	if createdAt != "" {
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	}

	return r, nil
}
