package mocks

import (
	"contacts-api/internal/managers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// MockJwtManager is a mock of the JWTManager.
// It is used to simulate token operations, including failures, in tests.
type MockJwtManager struct {
	mock.Mock
}

func (m *MockJwtManager) GenerateJWT(claims jwt.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) ValidateJWT(tokenString string) (*managers.TokenClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*managers.TokenClaims)
	return claims, args.Error(1)
}

func (m *MockJwtManager) CreateAccessToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) CreateEmailToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) CreateResetToken(email, passwordHash string) (string, error) {
	args := m.Called(email, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) ParseAccessToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) ParseEmailToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

func (m *MockJwtManager) ParseResetToken(tokenString string) (string, string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.String(1), args.Error(2)
}
