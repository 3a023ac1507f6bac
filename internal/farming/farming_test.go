package farming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

var plantedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func farmState(seeds int) *domain.GameState {
	gs := &domain.GameState{
		Inventory: container.SlotBounded{MaxSlots: 12},
		Farm:      NewFarm(1),
	}
	if seeds > 0 {
		gs.Inventory.Add(catalog.ItemWheatSeeds, seeds, container.Reject)
	}
	return gs
}

func TestSlotsForTier(t *testing.T) {
	assert.Equal(t, 4, SlotsForTier(1))
	assert.Equal(t, 6, SlotsForTier(2))
	assert.Equal(t, 8, SlotsForTier(3))
	assert.Equal(t, 4, SlotsForTier(0), "sub-1 tiers clamp")
}

func TestPlant(t *testing.T) {
	cat := catalog.Default()
	gs := farmState(2)

	require.NoError(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt))
	assert.Equal(t, 1, gs.Inventory.Quantity(catalog.ItemWheatSeeds), "planting consumes one seed")

	crop := gs.Farm.Slots[0]
	require.NotNil(t, crop)
	assert.Equal(t, catalog.ItemWheatSeeds, crop.SeedID)
	assert.Equal(t, clock.Millis(plantedAt), crop.PlantedAt)
	assert.Equal(t, int64(120000), crop.GrowthTime)
	assert.False(t, crop.Watered)

	assert.ErrorIs(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt), domain.ErrSlotOccupied)
	assert.ErrorIs(t, Plant(cat, gs, -1, catalog.ItemWheatSeeds, plantedAt), domain.ErrInvalidSlot)
	assert.ErrorIs(t, Plant(cat, gs, 4, catalog.ItemWheatSeeds, plantedAt), domain.ErrInvalidSlot)
	assert.ErrorIs(t, Plant(cat, gs, 1, catalog.ItemWheat, plantedAt), domain.ErrNotASeed)
	assert.ErrorIs(t, Plant(cat, gs, 1, "kelp_seeds", plantedAt), domain.ErrItemNotFound)

	// Last seed plants fine; then the inventory is out.
	require.NoError(t, Plant(cat, gs, 1, catalog.ItemWheatSeeds, plantedAt))
	assert.ErrorIs(t, Plant(cat, gs, 2, catalog.ItemWheatSeeds, plantedAt), domain.ErrInsufficientQuantity)
}

func TestProgress_IsPureFunctionOfElapsedTime(t *testing.T) {
	crop := &domain.PlantedCrop{
		PlantedAt:      clock.Millis(plantedAt),
		GrowthTime:     120000,
		MaxGrowthStage: 4,
	}

	assert.Equal(t, 0.0, Progress(crop, plantedAt))
	assert.InDelta(t, 0.25, Progress(crop, plantedAt.Add(30*time.Second)), 1e-9)
	assert.InDelta(t, 0.5, Progress(crop, plantedAt.Add(60*time.Second)), 1e-9)
	assert.Equal(t, 1.0, Progress(crop, plantedAt.Add(2*time.Minute)))
	assert.Equal(t, 1.0, Progress(crop, plantedAt.Add(2*time.Hour)), "progress caps at 1")
	assert.Equal(t, 0.0, Progress(crop, plantedAt.Add(-time.Minute)), "pre-plant reads clamp")
	assert.Equal(t, 0.0, Progress(nil, plantedAt))
}

func TestProgress_WateredDoublesSpeed(t *testing.T) {
	crop := &domain.PlantedCrop{
		PlantedAt:  clock.Millis(plantedAt),
		GrowthTime: 120000,
		Watered:    true,
	}
	assert.InDelta(t, 0.5, Progress(crop, plantedAt.Add(30*time.Second)), 1e-9)
	assert.Equal(t, 1.0, Progress(crop, plantedAt.Add(60*time.Second)))
}

func TestStage(t *testing.T) {
	crop := &domain.PlantedCrop{
		PlantedAt:      clock.Millis(plantedAt),
		GrowthTime:     120000,
		MaxGrowthStage: 4,
	}
	assert.Equal(t, 0, Stage(crop, plantedAt))
	assert.Equal(t, 1, Stage(crop, plantedAt.Add(30*time.Second)))
	assert.Equal(t, 2, Stage(crop, plantedAt.Add(60*time.Second)))
	assert.Equal(t, 4, Stage(crop, plantedAt.Add(3*time.Minute)))
}

func TestWater(t *testing.T) {
	cat := catalog.Default()
	gs := farmState(1)
	require.NoError(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt))

	assert.ErrorIs(t, Water(gs, 1), domain.ErrSlotVacant)
	assert.ErrorIs(t, Water(gs, 9), domain.ErrInvalidSlot)

	require.NoError(t, Water(gs, 0))
	assert.True(t, gs.Farm.Slots[0].Watered)
}

func TestHarvest(t *testing.T) {
	cat := catalog.Default()
	gs := farmState(1)
	require.NoError(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt))

	_, _, err := Harvest(cat, gs, 0, plantedAt.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrNotGrown)
	assert.NotNil(t, gs.Farm.Slots[0], "an unripe crop stays planted")

	itemID, qty, err := Harvest(cat, gs, 0, plantedAt.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemWheat, itemID)
	assert.Equal(t, 2, qty)
	assert.Equal(t, 2, gs.Inventory.Quantity(catalog.ItemWheat))
	assert.Nil(t, gs.Farm.Slots[0])

	_, _, err = Harvest(cat, gs, 0, plantedAt.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrSlotVacant)
}

func TestHarvest_FullInventoryKeepsCropPlanted(t *testing.T) {
	cat := catalog.Default()
	gs := farmState(1)
	require.NoError(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt))

	gs.Inventory.MaxSlots = 1
	gs.Inventory.Add(catalog.ItemCoal, 1, container.Reject)

	_, _, err := Harvest(cat, gs, 0, plantedAt.Add(3*time.Minute))
	assert.ErrorIs(t, err, domain.ErrInventoryFull)
	assert.NotNil(t, gs.Farm.Slots[0], "yield that cannot land keeps the crop in the ground")
}

func TestRefresh_UpdatesStoredStages(t *testing.T) {
	cat := catalog.Default()
	gs := farmState(1)
	require.NoError(t, Plant(cat, gs, 0, catalog.ItemWheatSeeds, plantedAt))

	Refresh(gs, plantedAt.Add(60*time.Second))
	assert.Equal(t, 2, gs.Farm.Slots[0].GrowthStage)
}
