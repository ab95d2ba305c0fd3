package mocks

import (
	"contacts-api/internal/interfaces"

	"github.com/stretchr/testify/mock"
)

type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}

func (m *MockDatabaseManager) Close() {
	m.Called()
}
