package models

import "time"

// User roles, in ascending order of privilege.
const (
	RoleReader      = "reader"
	RoleContributor = "contributor"
	RoleAdmin       = "admin"
)

// ValidRole reports whether r is one of the known user roles.
func ValidRole(r string) bool {
	return r == RoleReader || r == RoleContributor || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"` // Never expose this to the client
	Avatar        string     `json:"avatar"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// FullName returns the display name used for generated avatars.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserUpdate carries a partial profile edit. Nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}
