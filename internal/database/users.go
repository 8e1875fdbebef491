// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/parkwatch/internal/models"
)

// IsUserNotFound reports whether err means the user does not exist.
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// GetUserByUsername loads a user for login.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`

	u := &models.User{}
	err := db.conn.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user with an already hashed password.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var exists bool
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) > 0 FROM users WHERE username = ?`, username).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	u := &models.User{Username: username, PasswordHash: passwordHash, Role: role, CreatedAt: db.now()}
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		u.Username, u.PasswordHash, u.Role, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// CountUsers returns the number of accounts.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
