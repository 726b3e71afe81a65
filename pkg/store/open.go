package store

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"twocardpoker-server/internal/config"
	"twocardpoker-server/pkg/db"
)

// Open returns the store selected by the configured driver and a func that releases it
// PostgreSQL is migrated with the migrations in the configured path, SQLite with the embedded ones
func Open(cfg config.Config) (Store, func(), error) {
	switch cfg.Store.Driver {
	case "", config.DriverMemory:
		logrus.Warn("using the memory store, players are lost on restart")
		return NewMemoryStore(), func() {}, nil
	case config.DriverSQLite:
		s, err := NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		sqlDB, err := db.Open(cfg.Store.PGDSN)
		if err != nil {
			return nil, nil, err
		}

		if err := db.MigrateInstance(sqlDB, cfg.Store.MigrationsPath); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}

		return NewPostgresStore(sqlDB), func() { _ = sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
