package utils

import (
	"errors"

	"contacts-api/internal/schemas"

	"github.com/gin-gonic/gin"
)

// WriteAndLogResponse encodes the response object to JSON and writes it to the HTTP response.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the provided error and sends an error response with the specified status code and error details.
// The request is aborted so that later handlers in the chain do not run.
func WriteAndLogError(c *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	if err != nil {
		LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	}
	LogMessageWithFields(c, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	errorDto := &schemas.ErrorDTO{
		Error: *customErr,
	}
	c.AbortWithStatusJSON(statusCode, errorDto)
}

// WriteError renders err. Catalogue errors keep their status, anything else becomes a 500.
func WriteError(c *gin.Context, err error) {
	var customErr *schemas.CustomError
	if errors.As(err, &customErr) {
		WriteAndLogError(c, customErr, customErr.HttpStatus, err)
		return
	}
	WriteAndLogError(c, schemas.InternalServerError, schemas.InternalServerError.HttpStatus, err)
}

// CurrentUser returns the user stored by the authentication middleware.
func CurrentUser(c *gin.Context) (*schemas.User, bool) {
	user, ok := c.Get(CurrentUserKey.String())
	if !ok {
		return nil, false
	}
	u, ok := user.(*schemas.User)
	return u, ok && u != nil
}

// SanitizedPayload returns the request body bound by the validation middleware.
func SanitizedPayload[T any](c *gin.Context) *T {
	payload, _ := c.Get(SanitizedPayloadKey.String())
	obj, _ := payload.(*T)
	return obj
}
