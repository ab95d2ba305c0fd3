package utils

const (
	// ContactIdKey is the key for the contact ID used in routing parameters.
	ContactIdKey = "contactId"

	// TokenKey is the key for mailed tokens used in routing parameters.
	TokenKey = "token"

	// FirstNameParamKey is the key for the first name filter used in query parameters.
	FirstNameParamKey = "first_name"

	// LastNameParamKey is the key for the last name filter used in query parameters.
	LastNameParamKey = "last_name"

	// EmailParamKey is the key for the email filter used in query parameters.
	EmailParamKey = "email"

	// SkipParamKey is the key for skip used in pagination query parameters.
	SkipParamKey = "skip"

	// LimitParamKey is the key for limit used in pagination query parameters.
	LimitParamKey = "limit"

	// DaysParamKey is the key for the birthday window used in query parameters.
	DaysParamKey = "days"

	// AvatarFormKey is the multipart field carrying an uploaded avatar.
	AvatarFormKey = "file"
)
