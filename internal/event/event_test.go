package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_DeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event
	bus.Subscribe(CraftCompleted, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	e := New(CraftCompleted, "game-1", CraftCompletedPayloadV1{RecipeID: "recipe_stone", Quantity: 2})
	require.NoError(t, bus.Publish(context.Background(), e))

	require.Len(t, got, 1)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
	assert.Equal(t, "game-1", got[0].GameID)
}

func TestMemoryBus_NoSubscribersIsFine(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), New(ToolBroke, "game-1", nil)))
}

func TestMemoryBus_OneFailingHandlerDoesNotStarveOthers(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(StorageFull, func(ctx context.Context, e Event) error {
		return errors.New("handler down")
	})
	bus.Subscribe(StorageFull, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), New(StorageFull, "game-1", nil))
	assert.Error(t, err, "failures are reported")
	assert.Equal(t, 1, calls, "the healthy handler still ran")
}

func TestMemoryBus_TypeIsolation(t *testing.T) {
	bus := NewMemoryBus()
	saved, broke := 0, 0
	bus.Subscribe(GameSaved, func(ctx context.Context, e Event) error { saved++; return nil })
	bus.Subscribe(ToolBroke, func(ctx context.Context, e Event) error { broke++; return nil })

	require.NoError(t, bus.Publish(context.Background(), New(GameSaved, "g", nil)))
	assert.Equal(t, 1, saved)
	assert.Equal(t, 0, broke)
}
