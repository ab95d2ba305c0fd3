package services

import (
	"context"

	"contacts-api/internal/interfaces"
	"contacts-api/internal/managers"
	"contacts-api/internal/repositories"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5"
)

// UserService covers profile changes of the current user.
type UserService struct {
	pool       interfaces.PgxPoolIface
	storageMgr managers.StorageMgr
}

func NewUserService(pool interfaces.PgxPoolIface, storageMgr managers.StorageMgr) *UserService {
	return &UserService{pool: pool, storageMgr: storageMgr}
}

// UpdateAvatar uploads the image and stores its public URL on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, user *schemas.User, contentType string, data []byte) (*schemas.User, error) {
	url, err := s.storageMgr.UploadAvatar(ctx, user.Username, contentType, data)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error uploading avatar", err)
		return nil, schemas.AvatarUploadFailed
	}

	var updated *schemas.User
	err = inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = repositories.NewUserRepository(tx).UpdateAvatarURL(ctx, user.Email, url)
		if err == nil && updated == nil {
			return schemas.UserNotFound
		}
		return err
	})
	return updated, err
}
