// Package schemas defines the request structures for various operations in the application.
package schemas

// RegistrationRequest is a struct that represents a registration request
// Username is required, 3 to 50 characters of letters, digits, '.', '-' and '_'
// Email is required and must be a valid email
// Password is required and must be 4 to 128 characters
type RegistrationRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username_validation"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,min=4,max=128" sanitize:"-"`
}

// LoginRequest is a struct that represents a login request
// It is accepted as form data or JSON
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=50"`
	Password string `form:"password" json:"password" validate:"required,max=128" sanitize:"-"`
}

// RequestEmailRequest asks for the confirmation mail to be sent again
type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the email of the account and the new candidate password
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=128" sanitize:"-"`
}

// CreateContactRequest is a struct that represents a create contact request
// BirthdayDate is formatted as YYYY-MM-DD, Info is optional
type CreateContactRequest struct {
	FirstName    string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName     string  `json:"last_name" validate:"required,min=2,max=50"`
	Email        string  `json:"email" validate:"required,min=7,max=80,email"`
	PhoneNumber  string  `json:"phone_number" validate:"required,min=7,max=15,phone_validation"`
	BirthdayDate string  `json:"birthday_date" validate:"required,datetime=2006-01-02"`
	Info         *string `json:"info" validate:"omitempty,max=500"`
}

// UpdateContactRequest is a struct that represents a partial contact update
// Absent fields are left untouched
type UpdateContactRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName     *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Email        *string `json:"email" validate:"omitempty,min=7,max=80,email"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,min=7,max=15,phone_validation"`
	BirthdayDate *string `json:"birthday_date" validate:"omitempty,datetime=2006-01-02"`
	Info         *string `json:"info" validate:"omitempty,max=500"`
}
