package entity

// Role constants for User
const (
	RoleLeader = "Leader"
	RolePIC    = "PIC"
)

// User represents a member of the marketing team. Role and the super-admin
// flag are owned by the external user-management system; this engine only
// reads them.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// IsLeader returns true if the user holds the Leader role.
func (u *User) IsLeader() bool {
	return u.Role == RoleLeader
}
