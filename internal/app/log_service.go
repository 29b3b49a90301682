package app

import (
	"context"
	"errors"
	"time"

	"exercisetracker/internal/apperror"
	"exercisetracker/internal/domain"
)

// LogService encapsulates exercise history queries.
type LogService struct {
	users domain.UserRepository
	logs  domain.LogRepository
}

// NewLogService creates a LogService backed by the given repositories.
func NewLogService(users domain.UserRepository, logs domain.LogRepository) *LogService {
	return &LogService{users: users, logs: logs}
}

// LogQuery holds the optional history filters. The date range only applies
// when both From and To are set; Limit applies when positive.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

func (q LogQuery) hasRange() bool {
	return q.From != nil && q.To != nil
}

// GetLog returns the exercise log of the user filtered by q. A user without any
// logged exercise gets an empty log.
func (s *LogService) GetLog(ctx context.Context, userID string, q LogQuery) (*domain.ExerciseLog, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NewNotFoundError("user not found", err)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load user", err)
	}

	// Without a range the store can apply the limit itself.
	storeLimit := 0
	if !q.hasRange() && q.Limit > 0 {
		storeLimit = q.Limit
	}

	agg, err := s.logs.GetLog(ctx, user.ID, storeLimit)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ExerciseLog{ID: user.ID, Username: user.Username, Log: []domain.LogEntry{}}, nil
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load exercise log", err)
	}

	if q.hasRange() {
		agg.Log = FilterByDate(agg.Log, *q.From, *q.To)
		if q.Limit > 0 && len(agg.Log) > q.Limit {
			agg.Log = agg.Log[:q.Limit]
		}
	}
	if agg.Log == nil {
		agg.Log = []domain.LogEntry{}
	}
	return agg, nil
}

// FilterByDate keeps the entries dated within [from, to], preserving order.
// Entries whose date cannot be parsed are dropped.
func FilterByDate(entries []domain.LogEntry, from, to time.Time) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(entries))
	for _, e := range entries {
		d, err := domain.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
