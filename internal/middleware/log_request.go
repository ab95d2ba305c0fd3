package middleware

import (
	"time"

	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// LogRequest logs every request on arrival and its status once handled.
func LogRequest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		entry := utils.Logger(ctx)
		utils.LogEntry(entry, "info", "Request received: "+ctx.Request.Method+" "+ctx.Request.URL.Path)

		ctx.Next()

		entry.WithFields(log.Fields{
			"status":   ctx.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}
