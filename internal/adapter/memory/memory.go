// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"

	"exercisetracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu        sync.Mutex
	users     []domain.User
	exercises []domain.Exercise
	logs      map[string]*domain.ExerciseLog
	// logIDs maps a username to the ID of its log aggregate.
	logIDs map[string]string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		logs:   make(map[string]*domain.ExerciseLog),
		logIDs: make(map[string]string),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ExerciseRepository = (*DB)(nil)
var _ domain.LogRepository = (*DB)(nil)

// Close is a no-op; it exists so DB can be used wherever a store is closed.
func (db *DB) Close() error {
	return nil
}

// --- UserRepository ---

// CreateUser stores a user.
func (db *DB) CreateUser(ctx context.Context, user domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == user.ID {
			return errors.New("user id already exists")
		}
	}
	db.users = append(db.users, user)
	return nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListUsers returns all users in insertion order.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.User, len(db.users))
	copy(result, db.users)
	return result, nil
}

// --- ExerciseRepository ---

// AddExercise stores an exercise.
func (db *DB) AddExercise(ctx context.Context, exercise domain.Exercise) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.exercises = append(db.exercises, exercise)
	return nil
}

// DeleteExercise removes an exercise by ID.
func (db *DB) DeleteExercise(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.exercises {
		if e.ID == id {
			db.exercises = append(db.exercises[:i], db.exercises[i+1:]...)
			return nil
		}
	}
	return nil
}

// Exercises returns a copy of every stored exercise.
func (db *DB) Exercises() []domain.Exercise {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Exercise, len(db.exercises))
	copy(result, db.exercises)
	return result
}

// --- LogRepository ---

// AppendLogEntry appends entry to the aggregate of username under the lock.
func (db *DB) AppendLogEntry(ctx context.Context, userID, username string, entry domain.LogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, ok := db.logIDs[username]
	if !ok {
		db.logIDs[username] = userID
		db.logs[userID] = &domain.ExerciseLog{
			ID:       userID,
			Username: username,
			Count:    1,
			Log:      []domain.LogEntry{entry},
		}
		return nil
	}

	agg := db.logs[id]
	agg.Count++
	agg.Log = append(agg.Log, entry)
	return nil
}

// GetLog returns a copy of the aggregate with the given ID.
func (db *DB) GetLog(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	agg, ok := db.logs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	n := len(agg.Log)
	if limit > 0 && limit < n {
		n = limit
	}
	ret := *agg
	ret.Log = make([]domain.LogEntry, n)
	copy(ret.Log, agg.Log[:n])
	return &ret, nil
}
