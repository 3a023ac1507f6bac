// Package mining implements manual block mining: weighted block selection,
// tier-gated yields, break-time computation and pickaxe durability.
package mining

import (
	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/progression"
)

// Result reports one completed mine.
type Result struct {
	BlockID      string `json:"blockId"`
	ItemID       string `json:"itemId"`
	Received     bool   `json:"received"` // tier gate passed, item awarded
	Stored       int    `json:"stored"`   // units that actually reached the inventory
	XP           int    `json:"xp"`
	LevelsGained int    `json:"levelsGained"`
	BreakTime    int64  `json:"breakTime"` // ms the break took
	ToolBroken   bool   `json:"toolBroken"`
}

// EquippedPickaxe returns the usable pickaxe in the main hand. A tool whose
// durability has hit zero stays equipped but is excluded here - broken tools
// do not mine.
func EquippedPickaxe(cat *catalog.Catalog, gs *domain.GameState) (string, *catalog.ToolDef, bool) {
	itemID := gs.Equipment.MainHand
	if itemID == "" {
		return "", nil, false
	}
	item, ok := cat.Item(itemID)
	if !ok || item.Tool == nil || item.Tool.MiningSpeed <= 0 {
		return "", nil, false
	}
	if uses, tracked := gs.Durability[itemID]; tracked && uses <= 0 {
		return "", nil, false
	}
	return itemID, item.Tool, true
}

// Mine breaks the given block with the equipped pickaxe.
//
// Below the block's minimum pickaxe tier the break takes 3x as long, still
// consumes durability and awards XP, but yields no item. Durability is spent
// on every qualifying mine; the tool breaking mid-result is reported, not an
// error. A full inventory forfeits the yield without failing the mine.
func Mine(cat *catalog.Catalog, gs *domain.GameState, blockID string) (Result, error) {
	block, ok := cat.Block(blockID)
	if !ok {
		return Result{}, domain.ErrBlockNotFound
	}
	pickID, tool, ok := EquippedPickaxe(cat, gs)
	if !ok {
		return Result{}, domain.ErrNoPickaxe
	}

	res := Result{
		BlockID:   block.ID,
		ItemID:    block.ItemID,
		Received:  progression.CanReceiveItem(block, tool.Tier),
		BreakTime: progression.MiningBreakTime(block, tool.Tier, tool.MiningSpeed),
	}

	if res.Received {
		res.Stored = gs.Inventory.Add(block.ItemID, 1, container.Clamp)
	}

	res.XP = block.XPReward
	res.LevelsGained = progression.AddXP(&gs.Player, block.XPReward)

	if gs.Durability == nil {
		gs.Durability = make(map[string]int)
	}
	uses, tracked := gs.Durability[pickID]
	if !tracked {
		item, _ := cat.Item(pickID)
		uses = item.Tool.Durability
	}
	uses--
	if uses < 0 {
		uses = 0
	}
	gs.Durability[pickID] = uses
	res.ToolBroken = uses == 0

	return res, nil
}
