// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// User is a registered exerciser. Usernames are not unique.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// NewID returns a random, URL-safe, 22 character identifier.
func NewID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
