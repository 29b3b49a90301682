package app_test

import (
	"context"

	"exercisetracker/internal/domain"
)

type mockUserRepo struct {
	createFn func(ctx context.Context, user domain.User) error
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domain.User{ID: id, Username: "bob"}, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockExerciseRepo struct {
	addFn    func(ctx context.Context, exercise domain.Exercise) error
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockExerciseRepo) AddExercise(ctx context.Context, exercise domain.Exercise) error {
	if m.addFn != nil {
		return m.addFn(ctx, exercise)
	}
	return nil
}

func (m *mockExerciseRepo) DeleteExercise(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockLogRepo struct {
	appendFn func(ctx context.Context, userID, username string, entry domain.LogEntry) error
	getFn    func(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error)
}

func (m *mockLogRepo) AppendLogEntry(ctx context.Context, userID, username string, entry domain.LogEntry) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, userID, username, entry)
	}
	return nil
}

func (m *mockLogRepo) GetLog(ctx context.Context, id string, limit int) (*domain.ExerciseLog, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id, limit)
	}
	return nil, domain.ErrNotFound
}
