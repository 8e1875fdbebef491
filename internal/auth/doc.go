// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package auth provides password login, JWT issuance and the authentication
middleware.

Key Components:

  - JWTManager: token generation and validation using HMAC-SHA256
  - HashPassword / CheckPassword: bcrypt password hashing
  - Authenticator: username/password login against the user store
  - Middleware: HTTP middleware that validates the bearer token and stores
    the Claims in the request context

Token Transport:

The middleware accepts the token from, in order:
  - the Authorization header ("Bearer <token>")
  - the "token" cookie
  - the "token" query parameter (browsers cannot set headers on websocket
    upgrades)

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	authenticator := auth.NewAuthenticator(db, jwtManager)
	mw := auth.NewMiddleware(jwtManager)

	r.With(mw.Authenticate).Get("/api/dashboard", handler.Dashboard)

	claims, ok := auth.ClaimsFromContext(r.Context())

Security:

  - Unknown usernames are checked against a dummy hash so a failed login
    takes the same time whether or not the user exists
  - Tokens with any signing method other than HMAC are rejected
*/
package auth
