package domain

// Role is the closed set of access levels the backend issues. Roles are
// compared by exact membership only; there is no permission composition.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

// ParseRole maps a backend role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// User models the identity resolved from the current session token.
// It is only ever populated by a successful whoami call against the backend;
// a stale copy from a previous token must never be trusted.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}
