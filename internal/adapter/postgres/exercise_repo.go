package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"exercisetracker/internal/domain"
)

const (
	insertExerciseSQL = "INSERT INTO exercises (id, user_id, username, description, duration, date, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7);"
	deleteExerciseSQL = "DELETE FROM exercises WHERE id = $1;"

	// The upsert holds the row lock of the aggregate for the whole statement, so
	// concurrent appends for one username serialize instead of losing updates.
	appendLogEntrySQL = "INSERT INTO exercise_logs (id, username, entry_count, entries) VALUES ($1, $2, 1, jsonb_build_array($3::jsonb)) " +
		"ON CONFLICT (username) DO UPDATE SET entry_count = exercise_logs.entry_count + 1, entries = exercise_logs.entries || jsonb_build_array($3::jsonb);"

	selectLogSQL = "SELECT id, username, entry_count, CASE WHEN $2::bigint > 0 THEN " +
		"COALESCE((SELECT jsonb_agg(e.value ORDER BY e.ord) FROM jsonb_array_elements(entries) WITH ORDINALITY AS e(value, ord) WHERE e.ord <= $2::bigint), '[]'::jsonb) " +
		"ELSE entries END FROM exercise_logs WHERE id = $1;"
)

// AddExercise inserts an exercise record.
func (d *DB) AddExercise(ctx context.Context, e domain.Exercise) error {
	_, err := d.sql.ExecContext(ctx, insertExerciseSQL,
		e.ID, e.UserID, e.Username, e.Description, e.Duration, e.Date, e.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise record.
func (d *DB) DeleteExercise(ctx context.Context, id string) error {
	if _, err := d.sql.ExecContext(ctx, deleteExerciseSQL, id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// AppendLogEntry upserts the aggregate of username and appends entry in a single
// statement.
func (d *DB) AppendLogEntry(ctx context.Context, userID, username string, entry domain.LogEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	if _, err := d.sql.ExecContext(ctx, appendLogEntrySQL, userID, username, string(payload)); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// GetLog returns the aggregate with the given ID; a positive limit is applied
// by the database.
func (d *DB) GetLog(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error) {
	var (
		agg     domain.ExerciseLog
		entries []byte
	)
	err := d.sql.QueryRowContext(ctx, selectLogSQL, id, limit).Scan(&agg.ID, &agg.Username, &agg.Count, &entries)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select log: %w", err)
	}
	if err := json.Unmarshal(entries, &agg.Log); err != nil {
		return nil, fmt.Errorf("decode log entries: %w", err)
	}
	if agg.Log == nil {
		agg.Log = []domain.LogEntry{}
	}
	return &agg, nil
}
