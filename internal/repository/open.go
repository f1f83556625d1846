package repository

import (
	"fmt"
	"log"
	"strings"

	"schoolhub/internal/config"
	"schoolhub/internal/database"
)

// OpenFromConfig opens the state store selected by DATABASE_TYPE.
// The returned close function releases whatever backs the store.
func OpenFromConfig(cfg *config.Config) (StateStore, func() error, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil

	case "bolt", "bbolt":
		store, err := OpenBoltStateStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Printf("Database connection established (type: %s)", db.Dialect.Name())

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewSQLStateStore(db), db.Close, nil
}
