package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/models"
)

const entryColumns = `id, label, description, start_time, end_time, tags, source, kind, dedupe_key, created_at`

func (s *Store) AddEntry(entry models.Entry) error {
	var endTime sql.NullString
	if entry.End != nil {
		endTime = sql.NullString{String: entry.End.Format(time.RFC3339), Valid: true}
	}

	tags := ""
	if len(entry.Tags) > 0 {
		raw, err := json.Marshal(entry.Tags)
		if err != nil {
			return fmt.Errorf("failed to serialize tags: %w", err)
		}
		tags = string(raw)
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Label, entry.Description,
		entry.Start.Format(time.RFC3339), endTime, tags,
		entry.Source, entry.Kind, entry.DedupeKey,
		entry.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetEntry(id string) (models.Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Entry{}, fmt.Errorf("entry not found: %s", id)
		}
		return models.Entry{}, err
	}
	return entry, nil
}

func (s *Store) GetEntries(limit int) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY start_time DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Store) GetEntriesForDay(day string) ([]models.Entry, error) {
	rows, err := s.db.Query(`
		SELECT `+entryColumns+` FROM entries
		WHERE start_time >= ? AND start_time < date(?, '+1 day')
		ORDER BY start_time ASC`, day, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	var startTime, createdAt string
	var endTime, description, tags, dedupeKey sql.NullString

	err := row.Scan(&e.ID, &e.Label, &description, &startTime, &endTime,
		&tags, &e.Source, &e.Kind, &dedupeKey, &createdAt)
	if err != nil {
		return models.Entry{}, err
	}

	e.Description = description.String
	e.DedupeKey = dedupeKey.String

	e.Start, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse entry start time: %w", err)
	}
	if endTime.Valid {
		end, err := time.Parse(time.RFC3339, endTime.String)
		if err != nil {
			return models.Entry{}, fmt.Errorf("failed to parse entry end time: %w", err)
		}
		e.End = &end
	}
	if createdAt != "" {
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
			return models.Entry{}, fmt.Errorf("failed to parse entry tags: %w", err)
		}
	}

	return e, nil
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
