package domain

import "strings"

// Role enumerates the authorization roles a principal can hold.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAuditor Role = "AUDITOR"
	RoleManager Role = "MANAGER"
)

// AllRoles lists every role known to the application.
var AllRoles = []Role{RoleAdmin, RoleAuditor, RoleManager}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAuditor, RoleManager:
		return true
	}
	return false
}

// ParseRole normalizes user input ("admin", " Auditor ") into a Role.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", false
	}
	return role, true
}
