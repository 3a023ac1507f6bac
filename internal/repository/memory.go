package repository

import (
	"context"
	"sync"

	"github.com/isleforge/isleforge/internal/domain"
)

// MemoryGame is an in-memory Game repository for tests and DB-less runs.
type MemoryGame struct {
	mu    sync.RWMutex
	saves map[string]Snapshot
}

// NewMemoryGame creates an empty in-memory repository.
func NewMemoryGame() *MemoryGame {
	return &MemoryGame{saves: make(map[string]Snapshot)}
}

// GetSnapshot returns the stored snapshot for the game.
func (m *MemoryGame) GetSnapshot(ctx context.Context, gameID string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.saves[gameID]
	if !ok {
		return nil, domain.ErrSaveNotFound
	}
	out := snap
	out.Data = append([]byte(nil), snap.Data...)
	return &out, nil
}

// SaveSnapshot upserts the snapshot for the game.
func (m *MemoryGame) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[snap.GameID] = Snapshot{
		GameID:  snap.GameID,
		Data:    append([]byte(nil), snap.Data...),
		SavedAt: snap.SavedAt,
	}
	return nil
}

// DeleteSnapshot removes the save if present.
func (m *MemoryGame) DeleteSnapshot(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saves, gameID)
	return nil
}

// ListGameIDs returns every saved game id.
func (m *MemoryGame) ListGameIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.saves))
	for id := range m.saves {
		ids = append(ids, id)
	}
	return ids, nil
}
