// Package handlers translates HTTP requests into service calls and service results into JSON responses.
package handlers

import (
	"strconv"
	"strings"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// baseURL returns the configured public base URL, or the scheme and host the request came in on.
func baseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return configured
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}

// currentUser returns the authenticated user, writing a 401 when there is none.
func currentUser(c *gin.Context) (*schemas.User, bool) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.WriteError(c, schemas.Unauthorized)
	}
	return user, ok
}

func parseContactId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(utils.ContactIdKey), 10, 64)
	if err != nil || id < 1 {
		utils.WriteAndLogError(c, schemas.BadRequest, schemas.BadRequest.HttpStatus, err)
		return 0, false
	}
	return id, true
}
