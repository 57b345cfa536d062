package domain

import "time"

// Role distinguishes regular requesters from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is the domain model for registered identities. PasswordHash is
// populated only by the explicit with-password lookup used during login.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// AccountRef is the public identity projection attached to owned resources.
type AccountRef struct {
	ID    string
	Name  string
	Email string
}
