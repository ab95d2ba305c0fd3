package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) UploadAvatar(ctx context.Context, username, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, username, contentType, data)
	return args.String(0), args.Error(1)
}
