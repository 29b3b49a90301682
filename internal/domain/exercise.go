package domain

import (
	"context"
	"time"
)

// Exercise is a single logged exercise. It is written once and never updated.
type Exercise struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Entry returns the log entry recorded for this exercise.
func (e Exercise) Entry() LogEntry {
	return LogEntry{Description: e.Description, Duration: e.Duration, Date: e.Date}
}

// LogEntry is one exercise event inside an ExerciseLog.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// ExerciseLog is the per-username aggregate of logged exercises, oldest first.
// Its ID is the ID of the user whose first exercise created it.
type ExerciseLog struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ExerciseRepository is the port for exercise persistence.
type ExerciseRepository interface {
	AddExercise(ctx context.Context, exercise Exercise) error
	// DeleteExercise removes the exercise with the given ID. Deleting a missing
	// exercise is not an error.
	DeleteExercise(ctx context.Context, id string) error
}

// LogRepository is the port for exercise log aggregates.
type LogRepository interface {
	// AppendLogEntry atomically appends entry to the aggregate of username and
	// increments its count, creating the aggregate with ID userID if none exists.
	AppendLogEntry(ctx context.Context, userID, username string, entry LogEntry) error
	// GetLog returns the aggregate with the given ID. A positive limit restricts
	// the returned log to its first limit entries; Count is left unchanged.
	GetLog(ctx context.Context, id string, limit int) (*ExerciseLog, error)
}
