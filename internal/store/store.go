// Package store persists team data and risk scores for the risk engine.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// StoreManager holds the RiskStore used by commands.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	risk         contract.RiskStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetRiskStore returns the configured RiskStore.
func (mgr *StoreManager) GetRiskStore() contract.RiskStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.risk
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global manager with a store for the given backend.
// Subsequent calls are no-ops and return the first call's error.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		s, err := NewSQLStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize %s store: %w", backend, err)
			return
		}
		Manager.Lock()
		Manager.risk = s
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.risk != nil {
			_ = Manager.risk.Close()
		}
	})
}

// ClearStore removes all persisted data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the atlas tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropTables("mysql", backend, connStr)

	case schema.PostgreSQLBackend:
		return dropTables("pgx", backend, connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropTables connects to the SQL database and drops every atlas table if it exists.
func dropTables(driverName string, backend schema.DatabaseBackend, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	tables := append(slices.Clone(allTables), migrationsTable)
	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// ResolveSQLitePath returns connStr, or the default DB file when it is empty.
func ResolveSQLitePath(connStr string) string {
	if connStr == "" {
		return contract.GetDBFilePath()
	}
	return connStr
}
