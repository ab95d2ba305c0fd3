package repositories

import (
	"context"
	"errors"

	"contacts-api/internal/interfaces"
	"contacts-api/internal/schemas"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, username, email, password_hash, avatar_url, confirmed, role, created_at"

// UserRepository is the user directory.
type UserRepository struct {
	db interfaces.DBTX
}

func NewUserRepository(db interfaces.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns nil, nil when no user has that email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*schemas.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// FindByUsername returns nil, nil when no user has that username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*schemas.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

// FindByID returns nil, nil when the id is unknown.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*schemas.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// Create inserts a new unconfirmed user and returns it with the assigned id and timestamp.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string, avatarURL *string) (*schemas.User, error) {
	query := "INSERT INTO users (username, email, password_hash, avatar_url) VALUES ($1, $2, $3, $4) RETURNING " + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, query, username, email, passwordHash, avatarURL))
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// UpdateAvatarURL sets the avatar of the user with that email and returns the updated user.
func (r *UserRepository) UpdateAvatarURL(ctx context.Context, email, url string) (*schemas.User, error) {
	query := "UPDATE users SET avatar_url = $1 WHERE email = $2 RETURNING " + userColumns
	return r.findOne(ctx, query, url, email)
}

// ConfirmEmail marks the user with that email as confirmed.
func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET confirmed = TRUE WHERE email = $1", email)
	return err
}

// UpdatePassword replaces the stored password hash of the user with that email.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE email = $2", passwordHash, email)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*schemas.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*schemas.User, error) {
	user := &schemas.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.AvatarURL,
		&user.Confirmed, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Role = schemas.Role(role)
	return user, nil
}
