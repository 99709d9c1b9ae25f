// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

package sec

// # User Roles

// Role represents the authorization level granted to a portal account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can moderate reviews and inspect the audit trail
	RoleModerator Role = "moderator"

	// Can manage the listing of their own linked provider
	RoleProvider Role = "provider"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleProvider:
		return 10
	default:
		return 0
	}
}
