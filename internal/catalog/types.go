package catalog

// ItemCategory groups items for vendor and UI filtering.
type ItemCategory string

const (
	CategoryResource ItemCategory = "resource"
	CategoryTool     ItemCategory = "tool"
	CategoryArmor    ItemCategory = "armor"
	CategorySeed     ItemCategory = "seed"
	CategoryCrop     ItemCategory = "crop"
	CategoryFood     ItemCategory = "food"
	CategoryMisc     ItemCategory = "misc"
)

// Ingredient is one recipe input.
type Ingredient struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Recipe describes how an item is crafted. Recipes come from two sources:
// embedded in the result item's definition, or the supplemental hardcoded
// list; on duplicate ids the item-embedded recipe wins.
type Recipe struct {
	ID             string       `json:"id"`
	ResultItemID   string       `json:"resultItemId"`
	ResultQuantity int          `json:"resultQuantity"`
	Ingredients    []Ingredient `json:"ingredients"`
	CraftTime      int64        `json:"craftTime"` // ms
	Category       ItemCategory `json:"category"`
}

// ToolDef is the equippable facet of an item: which slot it occupies, its
// tier for mining gates, durability budget and speed bonus.
type ToolDef struct {
	Slot        string  `json:"slot"` // matches domain.EquipmentSlot values
	Tier        int     `json:"tier"`
	Durability  int     `json:"durability"`
	MiningSpeed float64 `json:"miningSpeed"`
}

// SeedDef is the plantable facet of an item.
type SeedDef struct {
	GrowthTime   int64  `json:"growthTime"` // ms at unwatered speed
	GrowthStages int    `json:"growthStages"`
	YieldItemID  string `json:"yieldItemId"`
	YieldQty     int    `json:"yieldQty"`
}

// Item is one catalog entry. Tool, Seed and Recipe are optional facets.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    ItemCategory `json:"category"`
	SellPrice   int          `json:"sellPrice"`
	Tool        *ToolDef     `json:"tool,omitempty"`
	Seed        *SeedDef     `json:"seed,omitempty"`
	Recipe      *Recipe      `json:"recipe,omitempty"`
}

// GeneratorTier is one row of a generator's five-step upgrade curve.
// SpeedMultiplier is below 1 at higher tiers: tiering speeds production up.
// UpgradeCost is the coin price to reach this tier from the previous one.
type GeneratorTier struct {
	OutputMultiplier float64 `json:"outputMultiplier"`
	SpeedMultiplier  float64 `json:"speedMultiplier"`
	UpgradeCost      int     `json:"upgradeCost"`
}

// Generator is a passive producer definition.
type Generator struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BaseOutput   int             `json:"baseOutput"`
	BaseInterval int64           `json:"baseInterval"` // ms
	OutputItemID string          `json:"outputItemId"`
	UnlockCost   int             `json:"unlockCost"`
	Tiers        []GeneratorTier `json:"tiers"` // exactly 5, index 0 = tier 1
}

// Block is a mineable block definition. SpawnChance is a relative weight for
// the random selection, not a probability.
type Block struct {
	ID             string  `json:"id"`
	ItemID         string  `json:"itemId"`
	SpawnChance    float64 `json:"spawnChance"`
	BreakTime      int64   `json:"breakTime"` // ms at tier-1 baseline
	MinPickaxeTier int     `json:"minPickaxeTier"`
	XPReward       int     `json:"xpReward"`
}

// VendorStock is one purchasable line in a vendor's stock.
type VendorStock struct {
	ItemID string `json:"itemId"`
	Price  int    `json:"price"`
}

// Vendor sells items for coins. Rotating vendors offer a daily subset of
// their stock pool, chosen by a date-seeded pick.
type Vendor struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Rotating   bool          `json:"rotating"`
	DailyCount int           `json:"dailyCount,omitempty"` // stock lines offered per day when rotating
	Stock      []VendorStock `json:"stock"`
}

// Blueprint unlocks the ability to build a generator. Owning it is separate
// from building it: the build consumes Requirements with no further coin cost.
type Blueprint struct {
	ID           string       `json:"id"`
	GeneratorID  string       `json:"generatorId"`
	Cost         int          `json:"cost"`
	Requirements []Ingredient `json:"requirements"`
}

// BoosterEffect names what a booster multiplies while active.
type BoosterEffect string

const (
	BoostProduction BoosterEffect = "production"
	BoostXP         BoosterEffect = "xp"
)

// Booster is a timed multiplier purchased with universal points.
type Booster struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Effect     BoosterEffect `json:"effect"`
	Multiplier float64       `json:"multiplier"`
	Duration   int64         `json:"duration"` // ms
	CostUP     float64       `json:"costUP"`
}
