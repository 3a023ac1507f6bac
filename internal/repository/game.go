// Package repository defines persistence interfaces for game snapshots.
// Implementations live in internal/database/postgres and in-memory here.
package repository

import (
	"context"
	"time"
)

// Snapshot is one persisted game save. Data is the whitelisted state JSON,
// stored verbatim; the repository never interprets it.
type Snapshot struct {
	GameID  string
	Data    []byte
	SavedAt time.Time
}

// Game persists game snapshots. Last writer wins; there is no merge or
// conflict detection.
type Game interface {
	// GetSnapshot returns the latest snapshot for the game, or
	// domain.ErrSaveNotFound when the game has never been saved.
	GetSnapshot(ctx context.Context, gameID string) (*Snapshot, error)

	// SaveSnapshot upserts the snapshot for the game.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// DeleteSnapshot removes the save. Deleting a missing save is not an
	// error.
	DeleteSnapshot(ctx context.Context, gameID string) error

	// ListGameIDs returns the ids of every saved game.
	ListGameIDs(ctx context.Context) ([]string, error)
}
