// Package repository provides lead storage backed by PostgreSQL or memory.
package repository

import (
	"fmt"

	"github.com/yourusername/bad-bets/internal/config"
	"github.com/yourusername/bad-bets/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Lead LeadRepository
}

// NewRepositories creates the repositories for the configured lead store.
// db is required only for the postgres store.
func NewRepositories(store string, db *database.DB) (*Repositories, error) {
	switch store {
	case config.LeadStoreMemory:
		return &Repositories{Lead: NewMemoryLeadRepository()}, nil
	case config.LeadStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("database connection is required for lead store %q", store)
		}
		return &Repositories{Lead: NewPostgresLeadRepository(db)}, nil
	default:
		return nil, fmt.Errorf("unknown lead store %q", store)
	}
}
