package middleware

import (
	"net/http"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// ValidateAndSanitizeStruct binds the body (JSON or form) into a fresh T, sanitizes and validates it,
// and stores the result under utils.SanitizedPayloadKey.
// Unparsable bodies are answered with 422, invalid ones with 400.
func ValidateAndSanitizeStruct[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := new(T)
		if err := c.ShouldBind(obj); err != nil {
			utils.WriteAndLogError(c, schemas.UnprocessableEntity, http.StatusUnprocessableEntity, err)
			return
		}

		validator := utils.GetValidator()
		validator.SanitizeData(obj)

		if err := validator.Validate.Struct(obj); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}
