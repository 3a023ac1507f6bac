package game

import (
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/farming"
)

// PlantCrop sows a seed from the inventory into the given farm slot.
func (s *Store) PlantCrop(slot int, seedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := farming.Plant(s.cat, &s.state, slot, seedID, s.clk.Now()); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// WaterCrop waters the crop in the given slot, doubling its growth speed.
func (s *Store) WaterCrop(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := farming.Water(&s.state, slot); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// HarvestCrop harvests a fully grown slot into the inventory. The crop stays
// planted when the yield does not fit.
func (s *Store) HarvestCrop(slot int) (itemID string, qty int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	itemID, qty, err = farming.Harvest(s.cat, &s.state, slot, s.clk.Now())
	if err != nil {
		return "", 0, err
	}
	s.markDirty()
	return itemID, qty, nil
}

// CropProgress returns growth completion in [0,1] for the given slot.
func (s *Store) CropProgress(slot int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot >= len(s.state.Farm.Slots) {
		return 0, domain.ErrInvalidSlot
	}
	return farming.Progress(s.state.Farm.Slots[slot], s.clk.Now()), nil
}

// UpgradeFarm raises the farm tier, adding plots and keeping every planted
// crop in place.
func (s *Store) UpgradeFarm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cost := farmUpgradeCost(s.state.Farm.Tier)
	if s.state.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= cost
	s.state.Farm.Tier++
	grown := make([]*domain.PlantedCrop, farming.SlotsForTier(s.state.Farm.Tier))
	copy(grown, s.state.Farm.Slots)
	s.state.Farm.Slots = grown
	s.markDirty()
	return nil
}

func farmUpgradeCost(tier int) int {
	return farmUpgradeCostBase * tier
}
