// Package runstore persists metrics runs and their ranked member scores
// across SQLite, MySQL and PostgreSQL backends.
package runstore

import (
	"fmt"
	"os"
	"sync"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/schema"
)

// RunStoreManager coordinates access to the shared run store.
type RunStoreManager struct {
	mu    sync.RWMutex
	store contract.RunStore
}

var _ contract.StoreManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the active run store, or nil when tracking is off.
func (m *RunStoreManager) GetRunStore() contract.RunStore {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store
}

func (m *RunStoreManager) setRunStore(store contract.RunStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = store
}

// Manager is the global run store manager.
var Manager = &RunStoreManager{}

var (
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global run store once per process.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run store: %w", err)
			return
		}
		Manager.setRunStore(store)
	})
	return initErr
}

// CloseStore closes the global run store once per process.
func CloseStore() error {
	var closeErr error
	closeOnce.Do(func() {
		store := Manager.GetRunStore()
		if store == nil {
			return
		}
		closeErr = store.Close()
		Manager.setRunStore(nil)
	})
	return closeErr
}

// ClearRuns removes all stored runs for the given backend. For SQLite this
// deletes the database file; for server backends it empties the tables.
func ClearRuns(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.NoneBackend:
		return nil

	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to remove run database %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}
