// Package progression holds the pure formula layer: XP thresholds, generator
// tier curves, crafting cost and mining break time. Everything here is a
// function of its inputs; invalid game-balance inputs clamp instead of
// erroring because they are reachable through legitimate UI races.
package progression

import (
	"math"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/domain"
)

// Base XP needed to clear level 1; each level costs 1.5x the previous.
const (
	baseXP       = 100
	xpLevelRatio = 1.5
)

// Mining tuning constants.
const (
	// breakTimePenalty multiplies break time when the pickaxe tier is below
	// the block's minimum; the block is still minable for XP but yields no item.
	breakTimePenalty = 3.0
	// tierStepBonus is the break-time reduction per pickaxe tier above minimum.
	tierStepBonus = 0.15
	// minBreakTime is the floor regardless of bonuses.
	minBreakTime = 500 // ms
)

// craftingCostRatio prices a craft at half the market value of its result,
// keeping crafting structurally profitable.
const craftingCostRatio = 0.5

// XPForLevel returns the XP required to clear the given level.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(baseXP * math.Pow(xpLevelRatio, float64(level-1))))
}

// AddXP grants amount XP to the player, advancing through as many level
// boundaries as the amount crosses. Returns the number of levels gained.
// Negative amounts clamp to zero. Postcondition: xp < xpToNextLevel.
func AddXP(p *domain.PlayerStats, amount int) int {
	if amount < 0 {
		amount = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = XPForLevel(p.Level)
	}

	p.XP += amount
	levels := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		levels++
		p.XPToNextLevel = XPForLevel(p.Level)
	}
	return levels
}

// tierRecord returns the tier row for a 1-based tier, clamped into range.
func tierRecord(def *catalog.Generator, tier int) catalog.GeneratorTier {
	if tier < 1 {
		tier = 1
	}
	if tier > len(def.Tiers) {
		tier = len(def.Tiers)
	}
	return def.Tiers[tier-1]
}

// GeneratorOutput returns the per-cycle yield at the given tier.
func GeneratorOutput(def *catalog.Generator, tier int) int {
	return int(math.Floor(float64(def.BaseOutput) * tierRecord(def, tier).OutputMultiplier))
}

// GeneratorInterval returns the cycle length in ms at the given tier.
func GeneratorInterval(def *catalog.Generator, tier int) int64 {
	return int64(math.Floor(float64(def.BaseInterval) * tierRecord(def, tier).SpeedMultiplier))
}

// NextTierCost returns the coin cost to upgrade from currentTier to the next
// tier. ok is false at max tier.
func NextTierCost(def *catalog.Generator, currentTier int) (int, bool) {
	if currentTier < 1 || currentTier >= len(def.Tiers) {
		return 0, false
	}
	return def.Tiers[currentTier].UpgradeCost, true
}

// CraftingCost returns the coin cost for one craft of the recipe.
func CraftingCost(recipe *catalog.Recipe, resultItem *catalog.Item) int {
	if resultItem == nil {
		return 0
	}
	return int(math.Floor(float64(resultItem.SellPrice) * float64(recipe.ResultQuantity) * craftingCostRatio))
}

// MiningBreakTime returns the ms needed to break the block with the given
// pickaxe tier and mining speed stat. Below the block's minimum tier the time
// is penalized 3x; at or above, each tier step above minimum shaves 15%, then
// the speed stat divides the remainder. Floored at 500ms.
func MiningBreakTime(block *catalog.Block, pickaxeTier int, miningSpeed float64) int64 {
	t := float64(block.BreakTime)
	if pickaxeTier < block.MinPickaxeTier {
		t *= breakTimePenalty
	} else {
		steps := pickaxeTier - block.MinPickaxeTier
		bonus := 1.0 - tierStepBonus*float64(steps)
		if bonus < 0 {
			bonus = 0
		}
		t *= bonus
		if miningSpeed > 0 {
			t /= miningSpeed
		}
	}
	if t < minBreakTime {
		t = minBreakTime
	}
	return int64(math.Floor(t))
}

// CanReceiveItem reports whether mining the block with the given pickaxe tier
// yields the block's item. Below-minimum mining is allowed for XP but pays
// nothing.
func CanReceiveItem(block *catalog.Block, pickaxeTier int) bool {
	return pickaxeTier >= block.MinPickaxeTier
}

// SelectRandomBlock picks a block weighted by spawn chance. rand must return
// a float in [0,1). Float rounding can leave the roll past every weight; the
// first block is the fallback so the selection always terminates with a valid
// block.
func SelectRandomBlock(blocks []*catalog.Block, rand func() float64) *catalog.Block {
	if len(blocks) == 0 {
		return nil
	}
	total := 0.0
	for _, b := range blocks {
		total += b.SpawnChance
	}
	if total <= 0 {
		return blocks[0]
	}
	roll := rand() * total
	for _, b := range blocks {
		roll -= b.SpawnChance
		if roll < 0 {
			return b
		}
	}
	return blocks[0]
}
