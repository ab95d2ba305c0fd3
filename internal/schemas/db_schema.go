// Package schemas defines the data structures
package schemas

import (
	"time"
)

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents the data model for a user in the system.
type User struct {
	ID           int64     // Unique identifier for the user, assigned by the database.
	Username     string    // Username of the user, unique and case-sensitive.
	Email        string    // Email address of the user, unique.
	PasswordHash string    // bcrypt hash of the password, never exposed.
	AvatarURL    *string   // URL of the avatar, optional.
	Confirmed    bool      // Whether the email address has been confirmed.
	Role         Role      // Role of the user.
	CreatedAt    time.Time // Timestamp when the user was created.
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Contact represents a contact owned by exactly one user.
type Contact struct {
	ID           int64     // Unique identifier for the contact.
	FirstName    string    // First name of the contact.
	LastName     string    // Last name of the contact.
	Email        string    // Email address of the contact, unique across all contacts.
	PhoneNumber  string    // Phone number of the contact, unique across all contacts.
	BirthdayDate time.Time // Birthday, only the date part is meaningful.
	Info         *string   // Free text, optional.
	UserID       int64     // Owning user.
	CreatedAt    time.Time // Timestamp when the contact was created.
	UpdatedAt    time.Time // Timestamp of the last mutation.
}

// NewContact carries the values of a contact about to be inserted.
type NewContact struct {
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	BirthdayDate time.Time
	Info         *string
}

// ContactPatch carries the fields of a partial update. Nil fields stay untouched.
type ContactPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PhoneNumber  *string
	BirthdayDate *time.Time
	Info         *string
}

// ContactFilter holds the substring filters and pagination of a contact listing.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
	Skip      int
	Limit     int
}
