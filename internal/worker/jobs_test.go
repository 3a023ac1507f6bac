package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/repository"
	"github.com/isleforge/isleforge/internal/session"
	"github.com/isleforge/isleforge/internal/testing/leaktest"
)

func jobFixture(t *testing.T) (*session.Manager, *repository.MemoryGame, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{Time: time.Date(2026, 7, 1, 6, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryGame()
	return session.NewManager(catalog.Default(), clk, nil, repo, 8, time.Hour), repo, clk
}

func TestGeneratorTickJob_AdvancesEveryResidentSession(t *testing.T) {
	sessions, _, clk := jobFixture(t)
	ctx := context.Background()

	a, err := sessions.Get(ctx, "a")
	require.NoError(t, err)
	b, err := sessions.Get(ctx, "b")
	require.NoError(t, err)

	// Anchor both, then advance 10s: two cobblestone cycles each.
	job := &GeneratorTickJob{Sessions: sessions}
	require.NoError(t, job.Process(ctx))
	clk.Advance(10 * time.Second)
	require.NoError(t, job.Process(ctx))

	assert.Equal(t, 2, a.State().Storage.Quantity(catalog.ItemCobblestone))
	assert.Equal(t, 2, b.State().Storage.Quantity(catalog.ItemCobblestone))
}

func TestBankInterestJob_CreditsResidentSessions(t *testing.T) {
	sessions, _, _ := jobFixture(t)
	ctx := context.Background()

	s, err := sessions.Get(ctx, "g")
	require.NoError(t, err)
	s.AddCoins(1000)
	require.NoError(t, s.DepositToBank(1000))

	job := &BankInterestJob{Sessions: sessions}
	require.NoError(t, job.Process(ctx))

	assert.Equal(t, 1010, s.State().Bank.Balance)
}

func TestSessionTickJob_DropsExpiredBoosters(t *testing.T) {
	sessions, _, clk := jobFixture(t)
	ctx := context.Background()

	s, err := sessions.Get(ctx, "g")
	require.NoError(t, err)
	s.AddUniversalPoints(5)
	require.NoError(t, s.BuyBooster(catalog.BoosterProduction))
	require.Len(t, s.ActiveBoosters(), 1)

	clk.Advance(11 * time.Minute)
	job := &SessionTickJob{Sessions: sessions}
	require.NoError(t, job.Process(ctx))

	assert.Empty(t, s.ActiveBoosters())
}

func TestAutosaveJob_FlushesDirtySessions(t *testing.T) {
	sessions, repo, _ := jobFixture(t)
	ctx := context.Background()

	s, err := sessions.Get(ctx, "g")
	require.NoError(t, err)
	s.AddCoins(3)

	job := &AutosaveJob{Sessions: sessions}
	require.NoError(t, job.Process(ctx))

	_, err = repo.GetSnapshot(ctx, "g")
	assert.NoError(t, err)
	assert.False(t, s.Dirty())

	// An untouched game never reaches the repository.
	_, err = sessions.Get(ctx, "idle")
	require.NoError(t, err)
	require.NoError(t, job.Process(ctx))
	_, err = repo.GetSnapshot(ctx, "idle")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)
}

func TestPool_StopLeavesNoGoroutinesBehind(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 16)
		pool.Start()
		pool.TryEnqueue(&testJob{executed: new(int32)})
		time.Sleep(20 * time.Millisecond)
		pool.Stop()
	})
}
