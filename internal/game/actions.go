package game

import (
	"context"
	"fmt"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/economy"
	"github.com/isleforge/isleforge/internal/metrics"
	"github.com/isleforge/isleforge/internal/progression"
)

// AddCoins grants coins and maintains the lifetime earned total.
func (s *Store) AddCoins(amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Player.Coins += amount
	s.state.Player.TotalCoinsEarned += amount
	s.markDirty()
}

// SpendCoins deducts coins, failing without change when short.
func (s *Store) SpendCoins(amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Player.Coins < amount {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= amount
	s.markDirty()
	return nil
}

// AddUniversalPoints grants the premium currency.
func (s *Store) AddUniversalPoints(amount float64) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Player.UniversalPoints += amount
	s.markDirty()
}

// AddXP grants experience, returning levels gained.
func (s *Store) AddXP(ctx context.Context, amount int) int {
	s.mu.Lock()
	gained := s.addXPLocked(amount)
	s.mu.Unlock()
	s.publishLevelUps(ctx, gained)
	return gained
}

// addXPLocked applies XP under the held lock. Callers publish level-up
// events after releasing the lock via publishLevelUps.
func (s *Store) addXPLocked(amount int) int {
	gained := progression.AddXP(&s.state.Player, amount)
	if gained > 0 {
		metrics.LevelUps.Add(float64(gained))
	}
	if amount > 0 {
		s.markDirty()
	}
	return gained
}

// AddItemToStorage deposits items into bulk storage under the given overflow
// policy and returns the accepted amount. System grants use Clamp; player
// transfers use Reject.
func (s *Store) AddItemToStorage(itemID string, qty int, policy container.Policy) (int, error) {
	if _, ok := s.cat.Item(itemID); !ok {
		return 0, domain.ErrItemNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	accepted := s.state.Storage.Add(itemID, qty, policy)
	if accepted == 0 && qty > 0 {
		return 0, domain.ErrStorageFull
	}
	s.markDirty()
	return accepted, nil
}

// AddItemToInventory grants items into the slot-bounded inventory,
// all-or-nothing.
func (s *Store) AddItemToInventory(itemID string, qty int) error {
	if _, ok := s.cat.Item(itemID); !ok {
		return domain.ErrItemNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Inventory.Add(itemID, qty, container.Reject) == 0 {
		return domain.ErrInventoryFull
	}
	s.markDirty()
	return nil
}

// RemoveItemFromStorage takes items out of bulk storage.
func (s *Store) RemoveItemFromStorage(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Storage.Remove(itemID, qty) {
		return domain.ErrInsufficientQuantity
	}
	s.session.storageFullNotified = false
	s.markDirty()
	return nil
}

// RemoveItemFromInventory takes items out of the inventory.
func (s *Store) RemoveItemFromInventory(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Inventory.Remove(itemID, qty) {
		return domain.ErrInsufficientQuantity
	}
	s.markDirty()
	return nil
}

// MoveToInventory moves items from bulk storage to the inventory. Player
// transfer: all-or-nothing.
func (s *Store) MoveToInventory(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := container.Move(&s.state.Storage, &s.state.Inventory, itemID, qty, container.Reject); !ok {
		if s.state.Storage.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrInventoryFull
	}
	s.session.storageFullNotified = false
	s.markDirty()
	return nil
}

// MoveToStorage moves items from the inventory to bulk storage. Player
// transfer: all-or-nothing.
func (s *Store) MoveToStorage(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := container.Move(&s.state.Inventory, &s.state.Storage, itemID, qty, container.Reject); !ok {
		if s.state.Inventory.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrStorageFull
	}
	s.markDirty()
	return nil
}

// MoveToStorageUnit moves items from the inventory into the selected storage
// unit.
func (s *Store) MoveToStorageUnit(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit := s.state.StorageSystem.Selected()
	if unit == nil {
		return domain.ErrInvalidSlot
	}
	if _, ok := container.Move(&s.state.Inventory, &unit.SlotBounded, itemID, qty, container.Reject); !ok {
		if s.state.Inventory.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrStorageFull
	}
	s.markDirty()
	return nil
}

// MoveFromStorageUnit moves items from the selected storage unit back to the
// inventory.
func (s *Store) MoveFromStorageUnit(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit := s.state.StorageSystem.Selected()
	if unit == nil {
		return domain.ErrInvalidSlot
	}
	if _, ok := container.Move(&unit.SlotBounded, &s.state.Inventory, itemID, qty, container.Reject); !ok {
		if unit.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrInventoryFull
	}
	s.markDirty()
	return nil
}

// SelectStorageUnit repoints the storage system at an existing unit.
func (s *Store) SelectStorageUnit(unitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.StorageSystem.Unit(unitID) == nil {
		return domain.ErrInvalidSlot
	}
	s.state.StorageSystem.SelectedUnitID = unitID
	s.markDirty()
	return nil
}

// BuyStorageUnit purchases an additional storage unit; each costs more than
// the last.
func (s *Store) BuyStorageUnit(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cost := storageUnitCostBase * (len(s.state.StorageSystem.Units))
	if s.state.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= cost
	id := fmt.Sprintf("unit_%d", len(s.state.StorageSystem.Units)+1)
	s.state.StorageSystem.Units = append(s.state.StorageSystem.Units, domain.StorageUnit{
		ID:          id,
		Name:        name,
		SlotBounded: container.SlotBounded{MaxSlots: DefaultStorageUnitSlots},
	})
	s.markDirty()
	return nil
}

// UpgradeStorage raises bulk storage capacity for a cost proportional to the
// current capacity.
func (s *Store) UpgradeStorage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cost := s.state.Storage.Capacity * storageUpgradeCostFactor
	if s.state.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= cost
	s.state.Storage.Capacity += storageUpgradeStep
	s.session.storageFullNotified = false
	s.markDirty()
	return nil
}

// SellItem sells from bulk storage at catalog price.
func (s *Store) SellItem(ctx context.Context, itemID string, qty int) (economy.SaleResult, error) {
	s.mu.Lock()
	res, err := economy.Sell(s.cat, &s.state, &s.state.Storage, itemID, qty)
	if err == nil {
		s.session.storageFullNotified = false
		s.markDirty()
		metrics.ItemsSold.WithLabelValues(itemID).Add(float64(qty))
	}
	s.mu.Unlock()
	return res, err
}

// SellItemFromInventory sells from the inventory at catalog price.
func (s *Store) SellItemFromInventory(ctx context.Context, itemID string, qty int) (economy.SaleResult, error) {
	s.mu.Lock()
	res, err := economy.Sell(s.cat, &s.state, &s.state.Inventory, itemID, qty)
	if err == nil {
		s.markDirty()
		metrics.ItemsSold.WithLabelValues(itemID).Add(float64(qty))
	}
	s.mu.Unlock()
	return res, err
}

// SellAllItems liquidates every stack in bulk storage.
func (s *Store) SellAllItems(ctx context.Context) (coins int, items int) {
	s.mu.Lock()
	coins, items = economy.SellAllStorage(s.cat, &s.state)
	if items > 0 {
		s.session.storageFullNotified = false
		s.markDirty()
	}
	s.mu.Unlock()
	return coins, items
}

// BuyFromVendor purchases from a vendor's stock for today, all-or-nothing
// into the inventory.
func (s *Store) BuyFromVendor(ctx context.Context, vendorID, itemID string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := economy.DayNumber(s.clk.Now())
	cost, err := economy.BuyFromVendor(s.cat, &s.state, vendorID, itemID, qty, day)
	if err != nil {
		return 0, err
	}
	s.markDirty()
	return cost, nil
}

// VendorStockToday returns the vendor's offered stock for the current day.
func (s *Store) VendorStockToday(vendorID string) ([]catalog.VendorStock, error) {
	v, ok := s.cat.Vendor(vendorID)
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	return economy.DailyStock(v, economy.DayNumber(s.clk.Now())), nil
}
