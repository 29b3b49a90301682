package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exercisetracker/internal/apperror"
	"exercisetracker/internal/domain"
)

// ExerciseService encapsulates exercise logging use cases.
type ExerciseService struct {
	users     domain.UserRepository
	exercises domain.ExerciseRepository
	logs      domain.LogRepository
	now       func() time.Time
}

// NewExerciseService creates an ExerciseService backed by the given repositories.
func NewExerciseService(users domain.UserRepository, exercises domain.ExerciseRepository, logs domain.LogRepository) *ExerciseService {
	return &ExerciseService{users: users, exercises: exercises, logs: logs, now: time.Now}
}

// WithClock replaces the clock used to date exercises submitted without a
// usable date.
func (s *ExerciseService) WithClock(now func() time.Time) *ExerciseService {
	s.now = now
	return s
}

// NewExercise is the input for AddExercise. Date is optional and may be in any
// layout accepted by domain.ParseDate.
type NewExercise struct {
	Description string
	Duration    float64
	Date        string
}

// AddExercise records an exercise for the user and appends it to the user's log.
// When the log append fails the saved exercise is removed again.
func (s *ExerciseService) AddExercise(ctx context.Context, userID string, in NewExercise) (*domain.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperror.NewValidationError("description is required", nil)
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NewNotFoundError("user not found", err)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load user", err)
	}

	now := s.now()
	ex := domain.Exercise{
		ID:          domain.NewID(),
		UserID:      user.ID,
		Username:    user.Username,
		Description: in.Description,
		Duration:    in.Duration,
		Date:        domain.NormalizeDate(in.Date, now),
		CreatedAt:   now.UTC(),
	}
	if err := s.exercises.AddExercise(ctx, ex); err != nil {
		return nil, apperror.NewDatabaseError("failed to save exercise", err)
	}
	if err := s.logs.AppendLogEntry(ctx, user.ID, user.Username, ex.Entry()); err != nil {
		if delErr := s.exercises.DeleteExercise(ctx, ex.ID); delErr != nil {
			err = errors.Join(err, fmt.Errorf("remove exercise %s: %w", ex.ID, delErr))
		}
		return nil, apperror.NewDatabaseError("failed to update exercise log", err)
	}
	return &ex, nil
}
