package game

import (
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

func validEquipmentSlot(slot domain.EquipmentSlot) bool {
	for _, s := range domain.EquipmentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// EquipItem moves an item from the inventory into its equipment slot. An
// occupied slot swaps: the displaced item returns to the inventory, which
// always has room because the equip just freed at least the one unit removed.
func (s *Store) EquipItem(itemID string) error {
	item, ok := s.cat.Item(itemID)
	if !ok {
		return domain.ErrItemNotFound
	}
	if item.Tool == nil {
		return domain.ErrNotEquippable
	}
	slot := domain.EquipmentSlot(item.Tool.Slot)
	if !validEquipmentSlot(slot) {
		return domain.ErrWrongSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Inventory.Remove(itemID, 1) {
		return domain.ErrInsufficientQuantity
	}
	if prev := s.state.Equipment.Get(slot); prev != "" {
		if s.state.Inventory.Add(prev, 1, container.Reject) == 0 {
			// Put the attempted equip back; the swap could not complete.
			s.state.Inventory.Add(itemID, 1, container.Clamp)
			return domain.ErrInventoryFull
		}
	}
	s.state.Equipment.Set(slot, itemID)

	// First equip of a tool starts its durability tracking.
	if item.Tool.Durability > 0 {
		if _, tracked := s.state.Durability[itemID]; !tracked {
			if s.state.Durability == nil {
				s.state.Durability = make(map[string]int)
			}
			s.state.Durability[itemID] = item.Tool.Durability
		}
	}
	s.markDirty()
	return nil
}

// UnequipItem clears an equipment slot back into the inventory. Player
// action: a full inventory rejects the unequip and the item stays equipped.
func (s *Store) UnequipItem(slot domain.EquipmentSlot) error {
	if !validEquipmentSlot(slot) {
		return domain.ErrWrongSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	itemID := s.state.Equipment.Get(slot)
	if itemID == "" {
		return domain.ErrSlotEmpty
	}
	if s.state.Inventory.Add(itemID, 1, container.Reject) == 0 {
		return domain.ErrInventoryFull
	}
	s.state.Equipment.Set(slot, "")
	s.markDirty()
	return nil
}
