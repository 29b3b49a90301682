package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exercisetracker/internal/domain"
)

const (
	insertUserSQL = "INSERT INTO users (id, username, created_at) VALUES ($1, $2, $3);"
	selectUserSQL = "SELECT id, username FROM users WHERE id = $1;"
	listUsersSQL  = "SELECT id, username FROM users ORDER BY created_at, id;"
)

// CreateUser inserts a new user.
func (d *DB) CreateUser(ctx context.Context, user domain.User) error {
	if _, err := d.sql.ExecContext(ctx, insertUserSQL, user.ID, user.Username, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx, selectUserSQL, id).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all users in registration order.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
