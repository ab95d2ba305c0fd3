// package managers wraps the external collaborators of the service: database pool, token signing,
// mail transport and avatar storage.
package managers

import (
	"contacts-api/internal/interfaces"

	log "github.com/sirupsen/logrus"
)

// DatabaseMgr defines the interface for database management.
// It provides methods for interacting with the database connection pool.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
	Close()
}

// DatabaseManager is responsible for managing the database connection pool.
// It implements the DatabaseMgr interface and provides methods to interact with the database.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool managed by the DatabaseManager.
// This pool is used for executing database operations.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// Close releases the pool if it supports closing.
func (dbMgr *DatabaseManager) Close() {
	if closer, ok := dbMgr.Pool.(interface{ Close() }); ok {
		log.Info("Closing database pool")
		closer.Close()
	}
}

// NewDatabaseManager creates and initializes a new instance of DatabaseManager with the provided database connection pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) *DatabaseManager {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
