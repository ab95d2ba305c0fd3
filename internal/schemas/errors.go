package schemas

import "net/http"

// CustomError is the single error type returned by services and rendered by handlers.
// HttpStatus never leaves the process, only Message and Code are serialized.
type CustomError struct {
	Message    string `json:"message"`
	Code       string `json:"code"`
	HttpStatus int    `json:"-"`
}

func (e *CustomError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	BadRequest = &CustomError{
		Message:    "The request body is invalid. Please check the request body and try again.",
		Code:       "ERR-001",
		HttpStatus: http.StatusBadRequest,
	}
	EmailTaken = &CustomError{
		Message:    "You can't use this email",
		Code:       "ERR-002",
		HttpStatus: http.StatusConflict,
	}
	UsernameTaken = &CustomError{
		Message:    "You can't use this username",
		Code:       "ERR-003",
		HttpStatus: http.StatusConflict,
	}
	InvalidCredentials = &CustomError{
		Message:    "Wrong credentials",
		Code:       "ERR-004",
		HttpStatus: http.StatusUnauthorized,
	}
	EmailNotConfirmed = &CustomError{
		Message:    "Email is not confirmed",
		Code:       "ERR-005",
		HttpStatus: http.StatusUnauthorized,
	}
	Unauthorized = &CustomError{
		Message:    "Could not validate credentials",
		Code:       "ERR-006",
		HttpStatus: http.StatusUnauthorized,
	}
	Forbidden = &CustomError{
		Message:    "Operation forbidden",
		Code:       "ERR-007",
		HttpStatus: http.StatusForbidden,
	}
	ContactNotFound = &CustomError{
		Message:    "Contact not found",
		Code:       "ERR-008",
		HttpStatus: http.StatusNotFound,
	}
	ContactExists = &CustomError{
		Message:    "Contact with this email or phone number already exists",
		Code:       "ERR-009",
		HttpStatus: http.StatusConflict,
	}
	UserNotFound = &CustomError{
		Message:    "User not found",
		Code:       "ERR-010",
		HttpStatus: http.StatusNotFound,
	}
	VerificationError = &CustomError{
		Message:    "Verification error",
		Code:       "ERR-011",
		HttpStatus: http.StatusBadRequest,
	}
	ResetEmailNotConfirmed = &CustomError{
		Message:    "Email not confirmed",
		Code:       "ERR-012",
		HttpStatus: http.StatusBadRequest,
	}
	InvalidResetToken = &CustomError{
		Message:    "Invalid or expired token",
		Code:       "ERR-013",
		HttpStatus: http.StatusBadRequest,
	}
	InvalidEmailToken = &CustomError{
		Message:    "Invalid email verification token",
		Code:       "ERR-014",
		HttpStatus: http.StatusUnprocessableEntity,
	}
	UnprocessableEntity = &CustomError{
		Message:    "The request body could not be parsed.",
		Code:       "ERR-015",
		HttpStatus: http.StatusUnprocessableEntity,
	}
	EmailUnreachable = &CustomError{
		Message:    "The email address is unreachable. Please check the email address and try again.",
		Code:       "ERR-016",
		HttpStatus: http.StatusUnprocessableEntity,
	}
	TooManyRequests = &CustomError{
		Message:    "No more requests allowed. Try again later.",
		Code:       "ERR-017",
		HttpStatus: http.StatusTooManyRequests,
	}
	InvalidAvatar = &CustomError{
		Message:    "The uploaded file must be an image of at most 5 MiB.",
		Code:       "ERR-018",
		HttpStatus: http.StatusBadRequest,
	}
	AvatarUploadFailed = &CustomError{
		Message:    "The avatar could not be uploaded. Please try again later.",
		Code:       "ERR-019",
		HttpStatus: http.StatusBadGateway,
	}
	DatabaseError = &CustomError{
		Message:    "A database error occurred. Please try again later.",
		Code:       "ERR-020",
		HttpStatus: http.StatusInternalServerError,
	}
	DatabaseUnavailable = &CustomError{
		Message:    "Error connecting to the db",
		Code:       "ERR-022",
		HttpStatus: http.StatusInternalServerError,
	}
	InternalServerError = &CustomError{
		Message:    "An internal server error occurred. Please try again later.",
		Code:       "ERR-021",
		HttpStatus: http.StatusInternalServerError,
	}
)
