package valueobjects

import "fmt"

// Role is the editorial role of a user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleChiefEditor Role = "chief_editor"
	RoleEditor      Role = "editor"
	RoleReviewer    Role = "reviewer"
	RoleUser        Role = "user"
)

var allRoles = []Role{
	RoleAdmin,
	RoleChiefEditor,
	RoleEditor,
	RoleReviewer,
	RoleUser,
}

// AllRoles returns every defined role in a stable order.
func AllRoles() []Role {
	roles := make([]Role, len(allRoles))
	copy(roles, allRoles)
	return roles
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	for _, role := range allRoles {
		if role == r {
			return true
		}
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
