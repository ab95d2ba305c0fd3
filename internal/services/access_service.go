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

// AccessService resolves bearer tokens to users and checks roles.
type AccessService struct {
	pool   interfaces.PgxPoolIface
	jwtMgr managers.JWTMgr
}

func NewAccessService(pool interfaces.PgxPoolIface, jwtMgr managers.JWTMgr) *AccessService {
	return &AccessService{pool: pool, jwtMgr: jwtMgr}
}

// ResolveUser returns the user a session token was issued to.
func (s *AccessService) ResolveUser(ctx context.Context, token string) (*schemas.User, error) {
	if token == "" {
		return nil, schemas.Unauthorized
	}

	username, err := s.jwtMgr.ParseAccessToken(token)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "info", "Rejected access token", err)
		return nil, schemas.Unauthorized
	}

	var user *schemas.User
	err = inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = repositories.NewUserRepository(tx).FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, schemas.Unauthorized
	}
	return user, nil
}

// RequireAdmin fails with Forbidden unless user has the admin role.
func (s *AccessService) RequireAdmin(user *schemas.User) error {
	if user == nil || !user.IsAdmin() {
		return schemas.Forbidden
	}
	return nil
}
