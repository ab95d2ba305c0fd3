package services

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"contacts-api/internal/config"
	"contacts-api/internal/managers"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "username", "email", "password_hash", "avatar_url", "confirmed", "role", "created_at"}

var contactColumns = []string{"id", "first_name", "last_name", "email", "phone_number", "birthday_date", "info", "user_id", "created_at", "updated_at"}

func testConfig() *config.Config {
	return &config.Config{
		Token: config.TokenConfig{
			Issuer:         "contacts-api-test",
			AccessTokenTTL: time.Hour,
			EmailTokenTTL:  24 * time.Hour,
			HashCost:       bcrypt.MinCost,
		},
	}
}

func newJWTManager(t *testing.T) *managers.JWTManager {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return managers.NewJWTManager(privateKey, publicKey, testConfig().Token)
}

func newPool(t *testing.T) pgxmock.PgxPoolIface {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func hash(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func userRows(id int64, username, email, passwordHash string, confirmed bool, role string) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).
		AddRow(id, username, email, passwordHash, (*string)(nil), confirmed, role, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func contactRows() *pgxmock.Rows {
	return pgxmock.NewRows(contactColumns)
}

func addContact(rows *pgxmock.Rows, id int64, email, phone string, birthday time.Time) *pgxmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Jane", "Doe", email, phone, birthday, (*string)(nil), int64(1), now, now)
}
