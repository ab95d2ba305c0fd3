package mocks

import "github.com/stretchr/testify/mock"

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendConfirmationMail(email, username, link string) error {
	args := m.Called(email, username, link)
	return args.Error(0)
}

func (m *MockMailManager) SendResetPasswordMail(email, username, link string) error {
	args := m.Called(email, username, link)
	return args.Error(0)
}
