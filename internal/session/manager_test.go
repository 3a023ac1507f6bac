package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/game"
	"github.com/isleforge/isleforge/internal/repository"
)

var managerStart = time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *repository.MemoryGame, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{Time: managerStart}
	repo := repository.NewMemoryGame()
	m := NewManager(catalog.Default(), clk, nil, repo, 8, time.Hour)
	return m, repo, clk
}

func TestGet_CreatesFreshGameOnFirstAccess(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	store, err := m.Get(ctx, "new-game")
	require.NoError(t, err)
	assert.Equal(t, "new-game", store.ID())
	assert.Equal(t, 1, store.State().Player.Level)
}

func TestGet_ReturnsSameStoreWhileResident(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	a, err := m.Get(ctx, "g")
	require.NoError(t, err)
	a.AddCoins(42)

	b, err := m.Get(ctx, "g")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 42, b.State().Player.Coins)
}

func TestSaveAndRestoreAcrossEviction(t *testing.T) {
	m, repo, clk := newTestManager(t)
	ctx := context.Background()

	store, err := m.Get(ctx, "g")
	require.NoError(t, err)
	store.AddCoins(500)
	require.NoError(t, m.Save(ctx, store))
	assert.False(t, store.Dirty())
	assert.Equal(t, clock.Millis(clk.Time), store.State().LastSave)

	_, err = repo.GetSnapshot(ctx, "g")
	require.NoError(t, err)

	// A fresh manager over the same repository restores the save.
	m2 := NewManager(catalog.Default(), clk, nil, repo, 8, time.Hour)
	restored, err := m2.Get(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, 500, restored.State().Player.Coins)
}

func TestSaveDirty_SkipsCleanSessions(t *testing.T) {
	m, repo, _ := newTestManager(t)
	ctx := context.Background()

	clean, err := m.Get(ctx, "clean")
	require.NoError(t, err)
	dirty, err := m.Get(ctx, "dirty")
	require.NoError(t, err)
	dirty.AddCoins(1)

	m.SaveDirty(ctx)

	_, err = repo.GetSnapshot(ctx, "dirty")
	assert.NoError(t, err)
	_, err = repo.GetSnapshot(ctx, "clean")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound, "untouched sessions are not flushed")
	assert.False(t, dirty.Dirty())
	_ = clean
}

func TestEviction_SavesDisplacedSession(t *testing.T) {
	clk := &clock.Fixed{Time: managerStart}
	repo := repository.NewMemoryGame()
	m := NewManager(catalog.Default(), clk, nil, repo, 2, time.Hour)
	ctx := context.Background()

	first, err := m.Get(ctx, "first")
	require.NoError(t, err)
	first.AddCoins(77)

	_, err = m.Get(ctx, "second")
	require.NoError(t, err)
	_, err = m.Get(ctx, "third") // displaces "first"
	require.NoError(t, err)

	_, ok := m.Peek("first")
	assert.False(t, ok)

	snap, err := repo.GetSnapshot(ctx, "first")
	require.NoError(t, err)
	assert.Contains(t, string(snap.Data), `"coins":77`)
}

func TestForEach_VisitsEveryResidentSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := m.Get(ctx, id)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	m.ForEach(func(s *game.Store) {
		seen[s.ID()] = true
	})
	assert.Len(t, seen, 3)
}

func TestDelete_RemovesSessionAndSave(t *testing.T) {
	m, repo, _ := newTestManager(t)
	ctx := context.Background()

	store, err := m.Get(ctx, "g")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, store))

	require.NoError(t, m.Delete(ctx, "g"))
	_, ok := m.Peek("g")
	assert.False(t, ok)
	_, err = repo.GetSnapshot(ctx, "g")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)
}

func TestClose_FlushesEverything(t *testing.T) {
	m, repo, _ := newTestManager(t)
	ctx := context.Background()

	a, err := m.Get(ctx, "a")
	require.NoError(t, err)
	a.AddCoins(5)
	b, err := m.Get(ctx, "b")
	require.NoError(t, err)
	b.AddCoins(9)

	m.Close(ctx)

	for _, id := range []string{"a", "b"} {
		_, err := repo.GetSnapshot(ctx, id)
		assert.NoError(t, err, "session %s must be flushed on shutdown", id)
	}
}

func TestGet_CorruptSaveFailsLoad(t *testing.T) {
	m, repo, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, &repository.Snapshot{
		GameID: "broken",
		Data:   []byte("definitely not json"),
	}))

	_, err := m.Get(ctx, "broken")
	assert.Error(t, err)
}
