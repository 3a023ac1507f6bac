// Package session keeps live game stores resident in memory. Each game id
// maps to one Store; idle sessions age out of an LRU cache and are flushed to
// the repository on the way out, so the working set stays bounded while a
// returning player picks up exactly where the last save left off.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/game"
	"github.com/isleforge/isleforge/internal/logger"
	"github.com/isleforge/isleforge/internal/metrics"
	"github.com/isleforge/isleforge/internal/repository"
)

// Manager owns the live session cache.
type Manager struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *game.Store]

	cat  *catalog.Catalog
	clk  clock.Clock
	bus  event.Bus
	repo repository.Game
}

// NewManager creates a session manager. Evicted sessions are saved with a
// short background deadline; a failed eviction save loses at most the
// interval since the last autosave.
func NewManager(cat *catalog.Catalog, clk clock.Clock, bus event.Bus, repo repository.Game, size int, ttl time.Duration) *Manager {
	m := &Manager{cat: cat, clk: clk, bus: bus, repo: repo}
	m.cache = expirable.NewLRU[string, *game.Store](size, m.onEvict, ttl)
	return m
}

func (m *Manager) onEvict(id string, store *game.Store) {
	metrics.LiveSessions.Dec()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.save(ctx, store); err != nil {
		logger.FromContext(ctx).Error(LogMsgEvictionSaveFailed, "game_id", id, "error", err)
	}
}

// Get returns the live store for the game id, loading the saved snapshot on
// a cache miss. A game with no save yet starts fresh.
func (m *Manager) Get(ctx context.Context, id string) (*game.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.cache.Get(id); ok {
		return store, nil
	}

	store := game.New(id, m.cat, m.clk, m.bus, rand.New(rand.NewSource(m.clk.Now().UnixNano())))
	snap, err := m.repo.GetSnapshot(ctx, id)
	switch {
	case err == nil:
		if err := store.Restore(snap.Data); err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info(LogMsgSessionRestored, "game_id", id)
	case errors.Is(err, domain.ErrSaveNotFound):
		logger.FromContext(ctx).Info(LogMsgSessionCreated, "game_id", id)
	default:
		return nil, err
	}

	m.cache.Add(id, store)
	metrics.LiveSessions.Inc()
	return store, nil
}

// Peek returns the live store only if already resident; it never loads.
func (m *Manager) Peek(id string) (*game.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Peek(id)
}

// save snapshots the store and persists it.
func (m *Manager) save(ctx context.Context, store *game.Store) error {
	metrics.SavesTotal.Inc()
	data, err := store.Snapshot()
	if err != nil {
		metrics.SaveFailures.Inc()
		return err
	}
	now := m.clk.Now()
	if err := m.repo.SaveSnapshot(ctx, &repository.Snapshot{
		GameID:  store.ID(),
		Data:    data,
		SavedAt: now,
	}); err != nil {
		metrics.SaveFailures.Inc()
		return err
	}
	store.MarkSaved(now)
	return nil
}

// Save persists the session now, regardless of dirtiness.
func (m *Manager) Save(ctx context.Context, store *game.Store) error {
	if err := m.save(ctx, store); err != nil {
		return err
	}
	m.publishSaved(ctx, store.ID())
	return nil
}

// SaveDirty persists every resident session with unsaved changes. Failures
// are logged per session and never abort the sweep.
func (m *Manager) SaveDirty(ctx context.Context) {
	for _, store := range m.resident() {
		if !store.Dirty() {
			continue
		}
		if err := m.save(ctx, store); err != nil {
			logger.FromContext(ctx).Error(LogMsgAutosaveFailed, "game_id", store.ID(), "error", err)
			continue
		}
		m.publishSaved(ctx, store.ID())
	}
}

// ForEach runs fn over every resident session. Used by the periodic tick
// jobs.
func (m *Manager) ForEach(fn func(*game.Store)) {
	for _, store := range m.resident() {
		fn(store)
	}
}

func (m *Manager) resident() []*game.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Values()
}

// Delete removes the session from the cache and its save from the
// repository.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.cache.Remove(id)
	m.mu.Unlock()
	return m.repo.DeleteSnapshot(ctx, id)
}

// Close flushes every resident session. Called on shutdown.
func (m *Manager) Close(ctx context.Context) {
	for _, store := range m.resident() {
		if err := m.save(ctx, store); err != nil {
			logger.FromContext(ctx).Error(LogMsgShutdownSaveFailed, "game_id", store.ID(), "error", err)
		}
	}
}

func (m *Manager) publishSaved(ctx context.Context, id string) {
	if m.bus == nil {
		return
	}
	_ = m.bus.Publish(ctx, event.New(event.GameSaved, id, nil))
}
