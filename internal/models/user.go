package models

import "time"

// UserRole distinguishes managers (parents) from members (children)
type UserRole string

const (
	RoleManager UserRole = "MANAGER"
	RoleMember  UserRole = "MEMBER"
)

// IsValid checks whether the role is one of the known values
func (r UserRole) IsValid() bool {
	return r == RoleManager || r == RoleMember
}

// User represents a family member account
type User struct {
	ID        string
	Name      string
	Email     string // unique, matched case-insensitively at login
	Role      UserRole
	Avatar    string
	Stars     int // gamification accumulator, never negative
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManager reports whether the user holds the manager role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
