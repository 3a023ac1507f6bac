// Package economy implements selling, vendor purchases and the date-seeded
// vendor stock rotation.
package economy

import (
	"math/rand"
	"time"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

// SaleResult reports a completed sale.
type SaleResult struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Coins    int    `json:"coins"`
}

// creditSale pays out a sale and maintains the monotonic lifetime totals.
func creditSale(gs *domain.GameState, qty, coins int) {
	gs.Player.Coins += coins
	gs.Player.TotalCoinsEarned += coins
	gs.Player.TotalItemsSold += qty
}

// Sell sells qty of itemID out of the given container at catalog sell price.
func Sell(cat *catalog.Catalog, gs *domain.GameState, from container.Container, itemID string, qty int) (SaleResult, error) {
	if qty <= 0 {
		return SaleResult{}, domain.ErrInvalidQuantity
	}
	item, ok := cat.Item(itemID)
	if !ok {
		return SaleResult{}, domain.ErrItemNotFound
	}
	if !from.Remove(itemID, qty) {
		return SaleResult{}, domain.ErrInsufficientQuantity
	}
	coins := item.SellPrice * qty
	creditSale(gs, qty, coins)
	return SaleResult{ItemID: itemID, Quantity: qty, Coins: coins}, nil
}

// SellAllStorage sells every stack in bulk storage. Stacks whose item id is
// unknown to the catalog are skipped, not destroyed.
func SellAllStorage(cat *catalog.Catalog, gs *domain.GameState) (int, int) {
	totalCoins, totalItems := 0, 0
	kept := gs.Storage.Items[:0]
	for _, stack := range gs.Storage.Items {
		item, ok := cat.Item(stack.ItemID)
		if !ok {
			kept = append(kept, stack)
			continue
		}
		coins := item.SellPrice * stack.Quantity
		totalCoins += coins
		totalItems += stack.Quantity
		creditSale(gs, stack.Quantity, coins)
	}
	gs.Storage.Items = kept
	return totalCoins, totalItems
}

// DayNumber converts a time to the day index used to seed vendor rotation.
func DayNumber(t time.Time) int64 {
	return t.Unix() / 86400
}

// DailyStock returns the vendor's offered stock for the given day. Static
// vendors offer their whole list; rotating vendors offer a DailyCount-sized
// subset chosen by a PRNG seeded from the day number, so every client agrees
// on the day's stock without coordination.
func DailyStock(v *catalog.Vendor, day int64) []catalog.VendorStock {
	if !v.Rotating || v.DailyCount <= 0 || v.DailyCount >= len(v.Stock) {
		return v.Stock
	}
	rng := rand.New(rand.NewSource(day))
	perm := rng.Perm(len(v.Stock))
	out := make([]catalog.VendorStock, 0, v.DailyCount)
	for _, i := range perm[:v.DailyCount] {
		out = append(out, v.Stock[i])
	}
	return out
}

// BuyFromVendor purchases qty of itemID from the vendor's stock for the day.
// Player-initiated: the full quantity must fit in the inventory or the whole
// purchase is rejected, never truncated.
func BuyFromVendor(cat *catalog.Catalog, gs *domain.GameState, vendorID, itemID string, qty int, day int64) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	vendor, ok := cat.Vendor(vendorID)
	if !ok {
		return 0, domain.ErrVendorNotFound
	}

	var price int
	found := false
	for _, s := range DailyStock(vendor, day) {
		if s.ItemID == itemID {
			price, found = s.Price, true
			break
		}
	}
	if !found {
		return 0, domain.ErrItemNotFound
	}

	cost := price * qty
	if gs.Player.Coins < cost {
		return 0, domain.ErrInsufficientCoins
	}
	if gs.Inventory.Add(itemID, qty, container.Reject) == 0 {
		return 0, domain.ErrInventoryFull
	}
	gs.Player.Coins -= cost
	return cost, nil
}
