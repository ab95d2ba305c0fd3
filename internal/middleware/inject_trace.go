package middleware

import (
	"context"

	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// InjectTrace tags every request with a trace id, echoed back in the X-Trace-Id header.
func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), utils.TraceIdKey, traceId))
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
