// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents an account in the system. Guest commenters are regular
// users created lazily on their first comment; they carry no password hash.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash *string   `json:"-"` // Nullable; nil for guest accounts
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsGuest returns true if the account has no credential, i.e. it was
// created by the identity resolver from a comment submission.
func (u *User) IsGuest() bool {
	return u.PasswordHash == nil
}

// Profile is the public subset of a user attached to comments and posts.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name,omitempty"`
	Email string    `json:"email"`
	Image *string   `json:"image,omitempty"`
	Role  Role      `json:"role"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, Role: u.Role}
}

// Identity is the resolved caller identity attached to a request by the
// auth boundary. A nil *Identity means the caller is anonymous.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// Elevated returns true if the identity grants administrative privileges:
// seeing unpublished content and managing the taxonomy.
func (i *Identity) Elevated() bool {
	return i != nil && i.Role == RoleAdmin
}
