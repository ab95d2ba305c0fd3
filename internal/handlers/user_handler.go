package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 5 << 20

// UserProfiles is implemented by services.UserService.
type UserProfiles interface {
	UpdateAvatar(ctx context.Context, user *schemas.User, contentType string, data []byte) (*schemas.User, error)
}

type UserHdl interface {
	GetCurrentUser(c *gin.Context)
	UpdateAvatar(c *gin.Context)
}

type UserHandler struct {
	UserService UserProfiles
}

func NewUserHandler(userService UserProfiles) *UserHandler {
	return &UserHandler{UserService: userService}
}

func (handler *UserHandler) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.WriteAndLogResponse(c, schemas.NewUserDTO(user), http.StatusOK)
}

// UpdateAvatar stores the uploaded image (multipart field "file") as the avatar of the current user.
func (handler *UserHandler) UpdateAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile(utils.AvatarFormKey)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}
	if header.Size > MaxAvatarSize {
		utils.WriteAndLogError(c, schemas.InvalidAvatar, schemas.InvalidAvatar.HttpStatus, errors.New("avatar too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarSize+1))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}
	if len(data) > MaxAvatarSize {
		utils.WriteAndLogError(c, schemas.InvalidAvatar, schemas.InvalidAvatar.HttpStatus, errors.New("avatar too large"))
		return
	}

	contentType := mimetype.Detect(data).String()
	if !strings.HasPrefix(contentType, "image/") {
		utils.WriteAndLogError(c, schemas.InvalidAvatar, schemas.InvalidAvatar.HttpStatus, errors.New("unsupported content type "+contentType))
		return
	}

	updated, err := handler.UserService.UpdateAvatar(c, user, contentType, data)
	if err != nil {
		utils.WriteError(c, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewUserDTO(updated), http.StatusOK)
}
