package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"contacts-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// Token purposes, carried in the typ claim.
const (
	PurposeAccess            = "access"
	PurposeEmailConfirmation = "email_confirmation"
	PurposePasswordReset     = "password_reset"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingClaim = errors.New("token is missing a required claim")
)

type JWTMgr interface {
	GenerateJWT(claims jwt.Claims) (string, error)
	ValidateJWT(tokenString string) (*TokenClaims, error)
	CreateAccessToken(username string) (string, error)
	CreateEmailToken(email string) (string, error)
	CreateResetToken(email, passwordHash string) (string, error)
	ParseAccessToken(tokenString string) (string, error)
	ParseEmailToken(tokenString string) (string, error)
	ParseResetToken(tokenString string) (string, string, error)
}

// TokenClaims are the claims of every token the service signs.
// PasswordHash is only present on password reset tokens.
type TokenClaims struct {
	Purpose      string `json:"typ"`
	PasswordHash string `json:"pwd,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT generation, signing, and validation.
type JWTManager struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	cfg        config.TokenConfig
	parser     *jwt.Parser
}

// NewJWTManager creates a new JWTManager with the given key pair.
func NewJWTManager(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey, cfg config.TokenConfig) *JWTManager {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &JWTManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		cfg:        cfg,
		parser:     jwt.NewParser(opts...),
	}
}

// NewJWTManagerFromFile loads the key pair from cfg.KeyPairPath, generating and saving one when none exists.
func NewJWTManagerFromFile(cfg config.TokenConfig) (*JWTManager, error) {
	privateKey, publicKey, err := loadKeyPair(cfg.KeyPairPath)
	if err != nil {
		log.Warnf("No usable key pair at %s, generating a new one: %v", cfg.KeyPairPath, err)
		// No key yet for initial setup, generate a new key pair
		privateKey, publicKey, err = generateKeyPair(cfg.KeyPairPath)
		if err != nil {
			return nil, err
		}
	}

	return NewJWTManager(privateKey, publicKey, cfg), nil
}

// GenerateJWT signs the given claims.
func (jm *JWTManager) GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(jm.privateKey)
}

// ValidateJWT verifies signature, issuer and expiry of the given JWT and returns its claims.
func (jm *JWTManager) ValidateJWT(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jm.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jm.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// CreateAccessToken issues a session token for username.
func (jm *JWTManager) CreateAccessToken(username string) (string, error) {
	return jm.GenerateJWT(jm.newClaims(username, PurposeAccess, jm.cfg.AccessTokenTTL))
}

// CreateEmailToken issues an email confirmation token for email.
func (jm *JWTManager) CreateEmailToken(email string) (string, error) {
	return jm.GenerateJWT(jm.newClaims(email, PurposeEmailConfirmation, jm.cfg.EmailTokenTTL))
}

// CreateResetToken issues a password reset token carrying the hash of the new password.
func (jm *JWTManager) CreateResetToken(email, passwordHash string) (string, error) {
	claims := jm.newClaims(email, PurposePasswordReset, jm.cfg.EmailTokenTTL)
	claims.PasswordHash = passwordHash
	return jm.GenerateJWT(claims)
}

// ParseAccessToken returns the username of a valid session token.
func (jm *JWTManager) ParseAccessToken(tokenString string) (string, error) {
	claims, err := jm.parse(tokenString, PurposeAccess)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ParseEmailToken returns the email of a valid confirmation token.
func (jm *JWTManager) ParseEmailToken(tokenString string) (string, error) {
	claims, err := jm.parse(tokenString, PurposeEmailConfirmation)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ParseResetToken returns the email and the embedded password hash of a valid reset token.
func (jm *JWTManager) ParseResetToken(tokenString string) (string, string, error) {
	claims, err := jm.parse(tokenString, PurposePasswordReset)
	if err != nil {
		return "", "", err
	}
	if claims.PasswordHash == "" {
		return "", "", ErrMissingClaim
	}
	return claims.Subject, claims.PasswordHash, nil
}

func (jm *JWTManager) parse(tokenString, purpose string) (*TokenClaims, error) {
	claims, err := jm.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, purpose, claims.Purpose)
	}
	if claims.Subject == "" {
		return nil, ErrMissingClaim
	}
	return claims, nil
}

func (jm *JWTManager) newClaims(subject, purpose string, ttl time.Duration) *TokenClaims {
	now := time.Now()
	return &TokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jm.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// generateKeyPair generates a new key pair and saves it to a file.
func generateKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	// Save the new key pair to a file for persistence
	if err := saveKeyPair(privateKey, publicKey, path); err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// saveKeyPair saves the key pair to the specified file.
func saveKeyPair(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	keyPairBytes := append(append([]byte{}, privateKey...), publicKey...)
	return os.WriteFile(path, keyPairBytes, 0o600)
}

// loadKeyPair loads the key pair from the specified file.
func loadKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	keyPairBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	// The key pair is the concatenation of private and public keys
	if len(keyPairBytes) != ed25519.PrivateKeySize+ed25519.PublicKeySize {
		return nil, nil, fmt.Errorf("invalid key pair format")
	}

	return keyPairBytes[:ed25519.PrivateKeySize], keyPairBytes[ed25519.PrivateKeySize:], nil
}
