package utils

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// TraceIdKey holds the trace id of the current request.
var TraceIdKey = &contextKey{"traceId"}

// SanitizedPayloadKey holds the bound, sanitized and validated request body.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}

// CurrentUserKey holds the *schemas.User resolved from the bearer token.
var CurrentUserKey = &contextKey{"currentUser"}
