// Package backend selects and constructs the persistence layer.
package backend

import (
	"fmt"

	"bilancio/internal/config"
	"bilancio/internal/log"
	"bilancio/internal/store"
	"bilancio/internal/store/memory"
	"bilancio/internal/store/sqlite"
)

// Open returns the store named by the configuration.
func Open(cfg *config.Config, logger *log.Logger) (store.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
		return st, nil
	case "memory":
		logger.Info("Initialized memory backend")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
