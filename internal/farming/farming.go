// Package farming implements the farm plots. Growth is a pure function of
// elapsed time since planting - never an incrementally stored counter - so
// progress stays correct however long the client was closed. This is the
// deliberate opposite of the generator engine's eager lastTick checkpointing;
// the two strategies have different replay properties and both are kept.
package farming

import (
	"time"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

// wateredSpeedMultiplier doubles growth speed while a crop is watered.
const wateredSpeedMultiplier = 2.0

// baseSlots and slotsPerTier size the farm: tier 1 has 4 plots, each tier
// adds 2.
const (
	baseSlots    = 4
	slotsPerTier = 2
)

// SlotsForTier returns the plot count for a farm tier.
func SlotsForTier(tier int) int {
	if tier < 1 {
		tier = 1
	}
	return baseSlots + slotsPerTier*(tier-1)
}

// NewFarm returns an empty farm at the given tier.
func NewFarm(tier int) domain.Farm {
	return domain.Farm{Tier: tier, Slots: make([]*domain.PlantedCrop, SlotsForTier(tier))}
}

// Progress returns growth completion in [0,1] for the crop at the given time.
func Progress(crop *domain.PlantedCrop, now time.Time) float64 {
	if crop == nil || crop.GrowthTime <= 0 {
		return 0
	}
	elapsed := float64(clock.Millis(now) - crop.PlantedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if crop.Watered {
		elapsed *= wateredSpeedMultiplier
	}
	p := elapsed / float64(crop.GrowthTime)
	if p > 1 {
		p = 1
	}
	return p
}

// Stage returns the discrete growth stage at the given time.
func Stage(crop *domain.PlantedCrop, now time.Time) int {
	if crop == nil {
		return 0
	}
	stage := int(Progress(crop, now) * float64(crop.MaxGrowthStage))
	if stage > crop.MaxGrowthStage {
		stage = crop.MaxGrowthStage
	}
	return stage
}

// IsReady reports whether the crop is fully grown.
func IsReady(crop *domain.PlantedCrop, now time.Time) bool {
	return crop != nil && Progress(crop, now) >= 1
}

// Plant sows a seed from the inventory into the given empty slot.
func Plant(cat *catalog.Catalog, gs *domain.GameState, slot int, seedID string, now time.Time) error {
	if slot < 0 || slot >= len(gs.Farm.Slots) {
		return domain.ErrInvalidSlot
	}
	if gs.Farm.Slots[slot] != nil {
		return domain.ErrSlotOccupied
	}
	item, ok := cat.Item(seedID)
	if !ok {
		return domain.ErrItemNotFound
	}
	if item.Seed == nil {
		return domain.ErrNotASeed
	}
	if !gs.Inventory.Remove(seedID, 1) {
		return domain.ErrInsufficientQuantity
	}
	gs.Farm.Slots[slot] = &domain.PlantedCrop{
		SeedID:         seedID,
		PlantedAt:      clock.Millis(now),
		GrowthTime:     item.Seed.GrowthTime,
		MaxGrowthStage: item.Seed.GrowthStages,
	}
	return nil
}

// Water marks the crop in the slot as watered, doubling its growth speed from
// planting time onward (growth is recomputed, so watering retroactively
// speeds the whole grow - matching the reference behavior of a single
// watered-state multiplier).
func Water(gs *domain.GameState, slot int) error {
	if slot < 0 || slot >= len(gs.Farm.Slots) {
		return domain.ErrInvalidSlot
	}
	crop := gs.Farm.Slots[slot]
	if crop == nil {
		return domain.ErrSlotVacant
	}
	crop.Watered = true
	return nil
}

// Harvest clears a fully grown slot and deposits the yield into the
// inventory. A player action: the whole yield must fit or the harvest fails
// and the crop stays planted.
func Harvest(cat *catalog.Catalog, gs *domain.GameState, slot int, now time.Time) (string, int, error) {
	if slot < 0 || slot >= len(gs.Farm.Slots) {
		return "", 0, domain.ErrInvalidSlot
	}
	crop := gs.Farm.Slots[slot]
	if crop == nil {
		return "", 0, domain.ErrSlotVacant
	}
	if !IsReady(crop, now) {
		return "", 0, domain.ErrNotGrown
	}
	item, ok := cat.Item(crop.SeedID)
	if !ok || item.Seed == nil {
		return "", 0, domain.ErrItemNotFound
	}

	if gs.Inventory.Add(item.Seed.YieldItemID, item.Seed.YieldQty, container.Reject) == 0 {
		return "", 0, domain.ErrInventoryFull
	}
	gs.Farm.Slots[slot] = nil
	return item.Seed.YieldItemID, item.Seed.YieldQty, nil
}

// Refresh recomputes the stored growth stages for display. Purely cosmetic:
// harvest readiness never reads the stored stage.
func Refresh(gs *domain.GameState, now time.Time) {
	for _, crop := range gs.Farm.Slots {
		if crop != nil {
			crop.GrowthStage = Stage(crop, now)
		}
	}
}
