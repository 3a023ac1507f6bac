package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isleforge/isleforge/internal/database/postgres"
	"github.com/isleforge/isleforge/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Game repository.Game
}

// InitializeRepositories creates all repository implementations. A nil pool
// selects the in-memory repository, used when no database is configured.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	if dbPool == nil {
		return &Repositories{Game: repository.NewMemoryGame()}
	}
	return &Repositories{Game: postgres.NewGameRepository(dbPool)}
}
