// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/models"
)

const testSecret = "test-secret-with-at-least-32-characters!"

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("NewJWTManager() with empty secret returned nil error")
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestJWTManager(t)
	token, expires, err := m.GenerateToken("alice", models.RoleOperator)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expires = %v, want future", expires)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "alice" || claims.Role != models.RoleOperator {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Parallel()

	m := newTestJWTManager(t)
	valid, _, err := m.GenerateToken("bob", models.RoleViewer)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expired := newTestJWTManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.GenerateToken("bob", models.RoleViewer)

	other, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: "another-secret-that-is-also-32-chars-long"})
	foreign, _, _ := other.GenerateToken("bob", models.RoleAdmin)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "bob", Role: models.RoleAdmin})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"expired", stale},
		{"wrong secret", foreign},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := hashWithCost("operator", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashWithCost() error = %v", err)
	}
	if !CheckPassword(hash, "operator") {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword(hash, "Operator") {
		t.Error("CheckPassword() = true for the wrong password")
	}
	if _, err := hashWithCost("", bcrypt.MinCost); err == nil {
		t.Error("hashWithCost(\"\") returned nil error")
	}
}

var errNoUser = errors.New("no such user")

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if username == "broken" {
		return nil, errors.New("database is closed")
	}
	u, ok := f[username]
	if !ok {
		return nil, errNoUser
	}
	return u, nil
}

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := hashWithCost("admin", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashWithCost() error = %v", err)
	}
	users := fakeUsers{"admin": {ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin}}
	a := NewAuthenticator(users, newTestJWTManager(t), func(err error) bool { return errors.Is(err, errNoUser) })
	a.hashCost = bcrypt.MinCost
	return a
}

func TestAuthenticator_Login(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	res, err := a.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Username != "admin" || res.Role != models.RoleAdmin || res.Token == "" {
		t.Errorf("Login() = %+v", res)
	}

	claims, err := a.jwt.ValidateToken(res.Token)
	if err != nil || claims.Role != models.RoleAdmin {
		t.Errorf("issued token claims = %+v, %v", claims, err)
	}
}

func TestAuthenticator_LoginFailures(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	tests := []struct {
		name      string
		username  string
		password  string
		wantCreds bool
	}{
		{"wrong password", "admin", "nope", true},
		{"unknown user", "mallory", "admin", true},
		{"store error", "broken", "admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Login(context.Background(), tt.username, tt.password)
			if err == nil {
				t.Fatal("Login() error = nil")
			}
			if got := errors.Is(err, ErrInvalidCredentials); got != tt.wantCreds {
				t.Errorf("errors.Is(err, ErrInvalidCredentials) = %v, want %v (err = %v)", got, tt.wantCreds, err)
			}
		})
	}
}

func TestMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	m := newTestJWTManager(t)
	token, _, _ := m.GenerateToken("carol", models.RoleViewer)
	mw := NewMiddleware(m)

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Username != "carol" {
			t.Errorf("claims in context = %+v, %v", claims, ok)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		want   int
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, "/", http.StatusNoContent},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }, "/", http.StatusNoContent},
		{"query param", func(*http.Request) {}, "/?token=" + token, http.StatusNoContent},
		{"missing", func(*http.Request) {}, "/", http.StatusUnauthorized},
		{"basic scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, "/", http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, "/", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMiddleware_CustomErrorWriter(t *testing.T) {
	t.Parallel()

	mw := NewMiddleware(newTestJWTManager(t))
	var gotStatus int
	mw.SetErrorWriter(func(w http.ResponseWriter, _ *http.Request, status int, _ string) {
		gotStatus = status
		w.WriteHeader(status)
	})

	rec := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if gotStatus != http.StatusUnauthorized {
		t.Errorf("error writer status = %d, want 401", gotStatus)
	}
}
