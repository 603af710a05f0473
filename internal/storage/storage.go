package storage

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/config"
	"github.com/mauv0809/squad-scheduler/internal/database"
)

// Store is a key/value blob store.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*BoltStorage)(nil)
)

// Open returns the store selected by cfg together with a teardown that
// releases it.
func Open(cfg config.Config) (Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendBolt:
		log.Info("Opening bolt storage", "path", cfg.BoltPath)
		s, err := NewBoltStorage(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case config.BackendSQLite:
		db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLite(db), teardown, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
