package user

import (
	"fmt"
	"time"

	vo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/shared/biztime"
)

// User is an account that can act on tickets and articles. Account management
// lives outside this service; the workflow only reads identity, role and status.
type User struct {
	id        uint
	username  string
	fullName  string
	role      vo.Role
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(username, fullName string, role vo.Role) (*User, error) {
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return nil, fmt.Errorf("username exceeds maximum length of 150 characters")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		username:  username,
		fullName:  fullName,
		role:      role,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(
	id uint,
	username string,
	fullName string,
	role vo.Role,
	active bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:        id,
		username:  username,
		fullName:  fullName,
		role:      role,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) Role() vo.Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.active
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = biztime.NowUTC()
}

// EnsureCanAct returns ErrUserInactive for deactivated accounts.
func (u *User) EnsureCanAct() error {
	if !u.active {
		return ErrUserInactive
	}
	return nil
}
