package handlers

import (
	"context"
	"net/http"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthFlows is implemented by services.AuthService.
type AuthFlows interface {
	Register(ctx context.Context, req *schemas.RegistrationRequest, baseURL string) (*schemas.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestEmail(ctx context.Context, email, baseURL string) (string, error)
	RequestPasswordReset(ctx context.Context, req *schemas.ResetPasswordRequest, baseURL string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token string) (string, error)
}

type AuthHdl interface {
	RegisterUser(c *gin.Context)
	LoginUser(c *gin.Context)
	ConfirmEmail(c *gin.Context)
	RequestEmail(c *gin.Context)
	RequestPasswordReset(c *gin.Context)
	ConfirmPasswordReset(c *gin.Context)
}

type AuthHandler struct {
	AuthService   AuthFlows
	PublicBaseURL string
}

func NewAuthHandler(authService AuthFlows, publicBaseURL string) *AuthHandler {
	return &AuthHandler{AuthService: authService, PublicBaseURL: publicBaseURL}
}

// RegisterUser creates an account and sends the confirmation mail.
func (handler *AuthHandler) RegisterUser(c *gin.Context) {
	req := utils.SanitizedPayload[schemas.RegistrationRequest](c)

	user, err := handler.AuthService.Register(c, req, baseURL(c, handler.PublicBaseURL))
	if err != nil {
		utils.WriteError(c, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewUserDTO(user), http.StatusCreated)
}

// LoginUser exchanges username and password for a bearer token.
func (handler *AuthHandler) LoginUser(c *gin.Context) {
	req := utils.SanitizedPayload[schemas.LoginRequest](c)

	token, err := handler.AuthService.Login(c, req.Username, req.Password)
	if err != nil {
		utils.WriteError(c, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.TokenDTO{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
}

func (handler *AuthHandler) ConfirmEmail(c *gin.Context) {
	message, err := handler.AuthService.ConfirmEmail(c, c.Param(utils.TokenKey))
	handler.writeMessage(c, message, err)
}

func (handler *AuthHandler) RequestEmail(c *gin.Context) {
	req := utils.SanitizedPayload[schemas.RequestEmailRequest](c)

	message, err := handler.AuthService.RequestEmail(c, req.Email, baseURL(c, handler.PublicBaseURL))
	handler.writeMessage(c, message, err)
}

func (handler *AuthHandler) RequestPasswordReset(c *gin.Context) {
	req := utils.SanitizedPayload[schemas.ResetPasswordRequest](c)

	message, err := handler.AuthService.RequestPasswordReset(c, req, baseURL(c, handler.PublicBaseURL))
	handler.writeMessage(c, message, err)
}

func (handler *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	message, err := handler.AuthService.ConfirmPasswordReset(c, c.Param(utils.TokenKey))
	handler.writeMessage(c, message, err)
}

func (handler *AuthHandler) writeMessage(c *gin.Context, message string, err error) {
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.WriteAndLogResponse(c, &schemas.MessageDTO{Message: message}, http.StatusOK)
}
