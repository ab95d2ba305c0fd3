package middleware

import (
	"context"
	"strings"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AccessGate resolves bearer tokens and checks roles.
type AccessGate interface {
	ResolveUser(ctx context.Context, token string) (*schemas.User, error)
	RequireAdmin(user *schemas.User) error
}

// Authenticate resolves the bearer token to a user and stores it under utils.CurrentUserKey.
func Authenticate(gate AccessGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := gate.ResolveUser(c, bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			utils.WriteError(c, err)
			return
		}

		c.Set(utils.CurrentUserKey.String(), user)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(gate AccessGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := utils.CurrentUser(c)
		if err := gate.RequireAdmin(user); err != nil {
			utils.WriteError(c, err)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
