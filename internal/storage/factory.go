// Package storage selects the configured storage backend
package storage

import (
	"fmt"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/storage/memory"
	"github.com/priyanshps/fundtrack/internal/storage/surrealdb"
)

// NewStorageManager creates the storage manager for the configured backend.
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	switch config.Storage.Backend {
	case "", "surrealdb":
		return surrealdb.NewManager(logger, config)
	case "memory":
		logger.Warn().Msg("Using in-memory storage - data will not survive restarts")
		return memory.NewManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.Storage.Backend)
	}
}
