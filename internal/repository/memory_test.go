package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/domain"
)

func TestMemoryGame_SaveGetRoundTrip(t *testing.T) {
	repo := NewMemoryGame()
	ctx := context.Background()
	savedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.GetSnapshot(ctx, "game-1")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)

	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{
		GameID:  "game-1",
		Data:    []byte(`{"player":{"level":3}}`),
		SavedAt: savedAt,
	}))

	snap, err := repo.GetSnapshot(ctx, "game-1")
	require.NoError(t, err)
	assert.Equal(t, "game-1", snap.GameID)
	assert.JSONEq(t, `{"player":{"level":3}}`, string(snap.Data))
	assert.Equal(t, savedAt, snap.SavedAt)
}

func TestMemoryGame_SaveOverwrites(t *testing.T) {
	repo := NewMemoryGame()
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "g", Data: []byte(`{"v":1}`)}))
	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "g", Data: []byte(`{"v":2}`)}))

	snap, err := repo.GetSnapshot(ctx, "g")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(snap.Data))
}

func TestMemoryGame_ReturnsDataCopy(t *testing.T) {
	repo := NewMemoryGame()
	ctx := context.Background()

	data := []byte(`{"v":1}`)
	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "g", Data: data}))
	data[2] = 'x'

	snap, err := repo.GetSnapshot(ctx, "g")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(snap.Data), "callers cannot mutate the stored bytes")

	snap.Data[2] = 'x'
	again, err := repo.GetSnapshot(ctx, "g")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(again.Data))
}

func TestMemoryGame_Delete(t *testing.T) {
	repo := NewMemoryGame()
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "g", Data: []byte(`{}`)}))
	require.NoError(t, repo.DeleteSnapshot(ctx, "g"))
	_, err := repo.GetSnapshot(ctx, "g")
	assert.ErrorIs(t, err, domain.ErrSaveNotFound)

	assert.NoError(t, repo.DeleteSnapshot(ctx, "g"), "deleting a missing save is not an error")
}

func TestMemoryGame_ListGameIDs(t *testing.T) {
	repo := NewMemoryGame()
	ctx := context.Background()

	ids, err := repo.ListGameIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "a", Data: []byte(`{}`)}))
	require.NoError(t, repo.SaveSnapshot(ctx, &Snapshot{GameID: "b", Data: []byte(`{}`)}))

	ids, err = repo.ListGameIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
