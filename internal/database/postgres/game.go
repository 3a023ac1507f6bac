// Package postgres implements the game snapshot repository on PostgreSQL.
// Snapshots store the whitelisted state JSON verbatim in a JSONB column;
// the database never interprets it, so schema churn in the game state needs
// no migration.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/repository"
)

// GameRepository implements repository.Game for PostgreSQL.
type GameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a GameRepository.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// GetSnapshot returns the latest snapshot for the game.
func (r *GameRepository) GetSnapshot(ctx context.Context, gameID string) (*repository.Snapshot, error) {
	snap := repository.Snapshot{GameID: gameID}
	err := r.pool.QueryRow(ctx,
		`SELECT data, saved_at FROM game_saves WHERE game_id = $1`,
		gameID,
	).Scan(&snap.Data, &snap.SavedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQuerySnapshot, err)
	}
	return &snap, nil
}

// SaveSnapshot upserts the snapshot. Last writer wins.
func (r *GameRepository) SaveSnapshot(ctx context.Context, snap *repository.Snapshot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO game_saves (game_id, data, saved_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (game_id) DO UPDATE SET data = $2, saved_at = $3`,
		snap.GameID, snap.Data, snap.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSaveSnapshot, err)
	}
	return nil
}

// DeleteSnapshot removes the save for the game.
func (r *GameRepository) DeleteSnapshot(ctx context.Context, gameID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM game_saves WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteSnapshot, err)
	}
	return nil
}

// ListGameIDs returns every saved game id.
func (r *GameRepository) ListGameIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT game_id FROM game_saves ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListSnapshots, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgListSnapshots, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListSnapshots, err)
	}
	return ids, nil
}
