package middleware

import (
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizePath strips markup from the request path before it is logged.
func SanitizePath() gin.HandlerFunc {
	p := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if sanitized := p.Sanitize(c.Request.URL.Path); sanitized != c.Request.URL.Path {
			utils.LogMessageWithFields(c, "warn", "Stripped markup from request path")
			c.Request.URL.Path = sanitized
			c.Request.URL.RawPath = ""
		}
		c.Next()
	}
}
