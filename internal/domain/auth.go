package domain

import "time"

// IdentityClaims is the claim set embedded in a session token.
type IdentityClaims struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is the identity reconstructed from a valid session token.
// Timestamps are dropped on decode; a Session carries no server-side state.
type Session struct {
	SubjectID string
	Role      Role
}

// HasRole reports whether the session role is one of roles.
func (s Session) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}
