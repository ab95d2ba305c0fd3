package schemas

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// MessageDTO is a struct that represents a plain message response
type MessageDTO struct {
	Message string `json:"message"`
}

// MetadataDTO describes the running API
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// TokenDTO is a struct that represents a login response
// AccessToken is the JWT used as bearer token
// TokenType is always "bearer"
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserDTO is the public view of a user, it never contains the password hash
type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      Role      `json:"role"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactDTO is the public view of a contact
// BirthdayDate is formatted as YYYY-MM-DD
type ContactDTO struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	BirthdayDate string    `json:"birthday_date"`
	Info         *string   `json:"info"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserDTO converts a user record into its public view.
func NewUserDTO(u *User) *UserDTO {
	dto := &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
	if u.AvatarURL != nil {
		dto.Avatar = *u.AvatarURL
	}
	return dto
}

// NewContactDTO converts a contact record into its public view.
func NewContactDTO(c *Contact) *ContactDTO {
	return &ContactDTO{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		BirthdayDate: c.BirthdayDate.Format(DateLayout),
		Info:         c.Info,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// NewContactDTOs converts a list of contact records, never returning nil.
func NewContactDTOs(contacts []*Contact) []*ContactDTO {
	out := make([]*ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContactDTO(c))
	}
	return out
}
