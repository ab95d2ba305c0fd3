package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"contacts-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:         "contacts-api-test",
		AccessTokenTTL: time.Hour,
		EmailTokenTTL:  7 * 24 * time.Hour,
	}
}

func newTestJWTManager(t *testing.T, cfg config.TokenConfig) *JWTManager {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return NewJWTManager(privateKey, publicKey, cfg)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	jm := newTestJWTManager(t, testTokenConfig())

	token, err := jm.CreateAccessToken("alice")
	require.NoError(t, err)

	username, err := jm.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestResetTokenCarriesHash(t *testing.T) {
	jm := newTestJWTManager(t, testTokenConfig())

	token, err := jm.CreateResetToken("alice@x.com", "$2a$04$hash")
	require.NoError(t, err)

	email, hash, err := jm.ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", email)
	assert.Equal(t, "$2a$04$hash", hash)
}

func TestTokenPurposeMismatch(t *testing.T) {
	jm := newTestJWTManager(t, testTokenConfig())

	emailToken, err := jm.CreateEmailToken("alice@x.com")
	require.NoError(t, err)

	_, err = jm.ParseAccessToken(emailToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = jm.ParseResetToken(emailToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	email, err := jm.ParseEmailToken(emailToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", email)
}

func TestExpiredToken(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTokenTTL = -time.Minute
	jm := newTestJWTManager(t, cfg)

	token, err := jm.CreateAccessToken("alice")
	require.NoError(t, err)

	_, err = jm.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedToken(t *testing.T) {
	jm := newTestJWTManager(t, testTokenConfig())

	token, err := jm.CreateAccessToken("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := jm.CreateAccessToken("mallory")
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	_, err = jm.ParseAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jm.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromOtherKeyRejected(t *testing.T) {
	issuer := newTestJWTManager(t, testTokenConfig())
	verifier := newTestJWTManager(t, testTokenConfig())

	token, err := issuer.CreateAccessToken("alice")
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromOtherIssuerRejected(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	otherCfg := testTokenConfig()
	otherCfg.Issuer = "someone-else"
	token, err := NewJWTManager(privateKey, publicKey, otherCfg).CreateAccessToken("alice")
	require.NoError(t, err)

	_, err = NewJWTManager(privateKey, publicKey, testTokenConfig()).ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTManagerFromFilePersistsKeys(t *testing.T) {
	cfg := testTokenConfig()
	cfg.KeyPairPath = filepath.Join(t.TempDir(), "keys", "ed25519.key")

	first, err := NewJWTManagerFromFile(cfg)
	require.NoError(t, err)
	token, err := first.CreateAccessToken("alice")
	require.NoError(t, err)

	second, err := NewJWTManagerFromFile(cfg)
	require.NoError(t, err)
	username, err := second.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}
