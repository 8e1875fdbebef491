// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/models"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore looks up login accounts. Satisfied by *database.DB.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// IsNotFound reports whether a UserStore error means the user does not exist.
type IsNotFound func(error) bool

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator checks passwords and issues tokens.
type Authenticator struct {
	users    UserStore
	jwt      *JWTManager
	notFound IsNotFound

	dummyOnce sync.Once
	dummyHash string
	hashCost  int
}

// NewAuthenticator creates an authenticator. notFound classifies lookup
// errors that mean "no such user"; other lookup errors are returned as-is.
func NewAuthenticator(users UserStore, jwtManager *JWTManager, notFound IsNotFound) *Authenticator {
	return &Authenticator{
		users:    users,
		jwt:      jwtManager,
		notFound: notFound,
		hashCost: bcryptCost,
	}
}

// Login verifies username and password and returns a signed token.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if a.notFound != nil && a.notFound(err) {
			// Burn a comparison so unknown users cost the same as bad passwords.
			CheckPassword(a.dummy(), password)
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		logging.Warn().Str("username", username).Msg("Login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expires, err := a.jwt.GenerateToken(user.Username, user.Role)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Info().Str("username", user.Username).Str("role", user.Role).Msg("User logged in")
	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expires,
	}, nil
}

func (a *Authenticator) dummy() string {
	a.dummyOnce.Do(func() {
		hash, err := hashWithCost("parkwatch-timing-equaliser", a.hashCost)
		if err == nil {
			a.dummyHash = hash
		}
	})
	return a.dummyHash
}
