// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package models

import "time"

// Role constants. These align with the Casbin policy in internal/authz/policy.csv.
const (
	// RoleViewer can read dashboards, maps and layouts.
	RoleViewer = "viewer"

	// RoleOperator can also submit readings and edit layouts (inherits viewer).
	RoleOperator = "operator"

	// RoleAdmin has full access including layout deletion (inherits operator).
	RoleAdmin = "admin"
)

// ValidRoles lists the roles in increasing order of privilege.
var ValidRoles = []string{RoleViewer, RoleOperator, RoleAdmin}

// IsValidRole reports whether role is a known role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is a login account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
