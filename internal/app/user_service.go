// Package app holds the application services and business logic.
package app

import (
	"context"
	"strings"

	"exercisetracker/internal/apperror"
	"exercisetracker/internal/domain"
)

// UserService encapsulates user registration use cases.
type UserService struct {
	repo domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser registers a new user. Duplicate usernames are allowed and each
// registration gets its own ID.
func (s *UserService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperror.NewValidationError("username is required", nil)
	}
	u := domain.User{ID: domain.NewID(), Username: username}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, apperror.NewDatabaseError("failed to save user", err)
	}
	return &u, nil
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
