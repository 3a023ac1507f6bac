package catalog

// Well-known content ids referenced by code and tests.
const (
	ItemCobblestone = "cobblestone"
	ItemStone       = "stone"
	ItemCoal        = "coal"
	ItemIronOre     = "iron_ore"
	ItemIronIngot   = "iron_ingot"
	ItemGoldOre     = "gold_ore"
	ItemGoldIngot   = "gold_ingot"
	ItemDiamond     = "diamond"
	ItemOakLog      = "oak_log"
	ItemOakPlank    = "oak_plank"
	ItemStick       = "stick"
	ItemTorch       = "torch"
	ItemWheat       = "wheat"
	ItemWheatSeeds  = "wheat_seeds"
	ItemCarrot      = "carrot"
	ItemCarrotSeeds = "carrot_seeds"
	ItemBread       = "bread"

	ItemWoodenPickaxe  = "wooden_pickaxe"
	ItemStonePickaxe   = "stone_pickaxe"
	ItemIronPickaxe    = "iron_pickaxe"
	ItemIronHelmet     = "iron_helmet"
	ItemIronChestplate = "iron_chestplate"

	GeneratorCobblestone = "cobblestone_generator"
	GeneratorCoal        = "coal_generator"
	GeneratorOak         = "oak_generator"
	GeneratorIron        = "iron_generator"
	GeneratorGold        = "gold_generator"

	BlueprintGoldGenerator = "gold_generator_blueprint"

	VendorGeneralStore    = "general_store"
	VendorWanderingTrader = "wandering_trader"

	BoosterProduction = "production_booster"
	BoosterXP         = "xp_booster"
)

// standardTiers is the shared five-step upgrade curve used by most
// generators: yield climbs while the interval shrinks.
var standardTiers = []GeneratorTier{
	{OutputMultiplier: 1.0, SpeedMultiplier: 1.0, UpgradeCost: 0},
	{OutputMultiplier: 1.5, SpeedMultiplier: 0.9, UpgradeCost: 100},
	{OutputMultiplier: 2.0, SpeedMultiplier: 0.8, UpgradeCost: 500},
	{OutputMultiplier: 3.0, SpeedMultiplier: 0.65, UpgradeCost: 2000},
	{OutputMultiplier: 5.0, SpeedMultiplier: 0.5, UpgradeCost: 10000},
}

// Default returns the built-in content set. The JSON files under configs/
// mirror this data; deployments can override them, tests rely on these.
func Default() *Catalog {
	return New(defaultItems(), defaultGenerators(), defaultBlocks(),
		defaultVendors(), defaultBlueprints(), defaultBoosters(),
		SupplementalRecipes())
}

func defaultItems() []Item {
	return []Item{
		{ID: ItemCobblestone, Name: "Cobblestone", Category: CategoryResource, SellPrice: 2},
		{ID: ItemStone, Name: "Stone", Category: CategoryResource, SellPrice: 6,
			Recipe: &Recipe{ID: "recipe_stone", ResultQuantity: 1, CraftTime: 1500, Category: CategoryResource,
				Ingredients: []Ingredient{{ItemID: ItemCobblestone, Quantity: 2}}}},
		{ID: ItemCoal, Name: "Coal", Category: CategoryResource, SellPrice: 5},
		{ID: ItemIronOre, Name: "Iron Ore", Category: CategoryResource, SellPrice: 8},
		{ID: ItemIronIngot, Name: "Iron Ingot", Category: CategoryResource, SellPrice: 24,
			Recipe: &Recipe{ID: "recipe_iron_ingot", ResultQuantity: 1, CraftTime: 4000, Category: CategoryResource,
				Ingredients: []Ingredient{{ItemID: ItemIronOre, Quantity: 2}, {ItemID: ItemCoal, Quantity: 1}}}},
		{ID: ItemGoldOre, Name: "Gold Ore", Category: CategoryResource, SellPrice: 15},
		{ID: ItemGoldIngot, Name: "Gold Ingot", Category: CategoryResource, SellPrice: 44,
			Recipe: &Recipe{ID: "recipe_gold_ingot", ResultQuantity: 1, CraftTime: 5000, Category: CategoryResource,
				Ingredients: []Ingredient{{ItemID: ItemGoldOre, Quantity: 2}, {ItemID: ItemCoal, Quantity: 1}}}},
		{ID: ItemDiamond, Name: "Diamond", Category: CategoryResource, SellPrice: 100},
		{ID: ItemOakLog, Name: "Oak Log", Category: CategoryResource, SellPrice: 4},
		{ID: ItemOakPlank, Name: "Oak Plank", Category: CategoryResource, SellPrice: 2,
			Recipe: &Recipe{ID: "recipe_oak_plank", ResultQuantity: 4, CraftTime: 1000, Category: CategoryResource,
				Ingredients: []Ingredient{{ItemID: ItemOakLog, Quantity: 1}}}},
		{ID: ItemStick, Name: "Stick", Category: CategoryResource, SellPrice: 1,
			Recipe: &Recipe{ID: "recipe_stick", ResultQuantity: 2, CraftTime: 500, Category: CategoryResource,
				Ingredients: []Ingredient{{ItemID: ItemOakPlank, Quantity: 1}}}},

		{ID: ItemWoodenPickaxe, Name: "Wooden Pickaxe", Category: CategoryTool, SellPrice: 10,
			Tool: &ToolDef{Slot: "mainHand", Tier: 1, Durability: 60, MiningSpeed: 1.0},
			Recipe: &Recipe{ID: "recipe_wooden_pickaxe", ResultQuantity: 1, CraftTime: 2000, Category: CategoryTool,
				Ingredients: []Ingredient{{ItemID: ItemOakPlank, Quantity: 3}, {ItemID: ItemStick, Quantity: 2}}}},
		{ID: ItemStonePickaxe, Name: "Stone Pickaxe", Category: CategoryTool, SellPrice: 26,
			Tool: &ToolDef{Slot: "mainHand", Tier: 2, Durability: 130, MiningSpeed: 1.2},
			Recipe: &Recipe{ID: "recipe_stone_pickaxe", ResultQuantity: 1, CraftTime: 3000, Category: CategoryTool,
				Ingredients: []Ingredient{{ItemID: ItemStone, Quantity: 3}, {ItemID: ItemStick, Quantity: 2}}}},
		{ID: ItemIronPickaxe, Name: "Iron Pickaxe", Category: CategoryTool, SellPrice: 80,
			Tool: &ToolDef{Slot: "mainHand", Tier: 3, Durability: 250, MiningSpeed: 1.5},
			Recipe: &Recipe{ID: "recipe_iron_pickaxe", ResultQuantity: 1, CraftTime: 6000, Category: CategoryTool,
				Ingredients: []Ingredient{{ItemID: ItemIronIngot, Quantity: 3}, {ItemID: ItemStick, Quantity: 2}}}},
		{ID: ItemIronHelmet, Name: "Iron Helmet", Category: CategoryArmor, SellPrice: 90,
			Tool: &ToolDef{Slot: "helmet", Tier: 2, Durability: 200},
			Recipe: &Recipe{ID: "recipe_iron_helmet", ResultQuantity: 1, CraftTime: 6000, Category: CategoryArmor,
				Ingredients: []Ingredient{{ItemID: ItemIronIngot, Quantity: 5}}}},
		{ID: ItemIronChestplate, Name: "Iron Chestplate", Category: CategoryArmor, SellPrice: 140,
			Tool: &ToolDef{Slot: "chestplate", Tier: 2, Durability: 280},
			Recipe: &Recipe{ID: "recipe_iron_chestplate", ResultQuantity: 1, CraftTime: 8000, Category: CategoryArmor,
				Ingredients: []Ingredient{{ItemID: ItemIronIngot, Quantity: 8}}}},

		{ID: ItemWheatSeeds, Name: "Wheat Seeds", Category: CategorySeed, SellPrice: 2,
			Seed: &SeedDef{GrowthTime: 120000, GrowthStages: 4, YieldItemID: ItemWheat, YieldQty: 2}},
		{ID: ItemWheat, Name: "Wheat", Category: CategoryCrop, SellPrice: 6},
		{ID: ItemCarrotSeeds, Name: "Carrot Seeds", Category: CategorySeed, SellPrice: 3,
			Seed: &SeedDef{GrowthTime: 180000, GrowthStages: 5, YieldItemID: ItemCarrot, YieldQty: 3}},
		{ID: ItemCarrot, Name: "Carrot", Category: CategoryCrop, SellPrice: 7},
		{ID: ItemBread, Name: "Bread", Category: CategoryFood, SellPrice: 24},
		{ID: ItemTorch, Name: "Torch", Category: CategoryMisc, SellPrice: 2},
	}
}

func defaultGenerators() []Generator {
	return []Generator{
		{ID: GeneratorCobblestone, Name: "Cobblestone Generator", BaseOutput: 1, BaseInterval: 5000,
			OutputItemID: ItemCobblestone, UnlockCost: 0, Tiers: standardTiers},
		{ID: GeneratorCoal, Name: "Coal Generator", BaseOutput: 1, BaseInterval: 8000,
			OutputItemID: ItemCoal, UnlockCost: 500, Tiers: standardTiers},
		{ID: GeneratorOak, Name: "Oak Grove", BaseOutput: 2, BaseInterval: 10000,
			OutputItemID: ItemOakLog, UnlockCost: 1000, Tiers: standardTiers},
		{ID: GeneratorIron, Name: "Iron Mine", BaseOutput: 1, BaseInterval: 12000,
			OutputItemID: ItemIronOre, UnlockCost: 2500, Tiers: standardTiers},
		{ID: GeneratorGold, Name: "Gold Mine", BaseOutput: 1, BaseInterval: 15000,
			OutputItemID: ItemGoldOre, UnlockCost: 20000, Tiers: standardTiers},
	}
}

func defaultBlocks() []Block {
	return []Block{
		{ID: "block_cobblestone", ItemID: ItemCobblestone, SpawnChance: 50, BreakTime: 2000, MinPickaxeTier: 1, XPReward: 2},
		{ID: "block_coal", ItemID: ItemCoal, SpawnChance: 25, BreakTime: 3000, MinPickaxeTier: 1, XPReward: 4},
		{ID: "block_iron", ItemID: ItemIronOre, SpawnChance: 15, BreakTime: 4000, MinPickaxeTier: 2, XPReward: 8},
		{ID: "block_gold", ItemID: ItemGoldOre, SpawnChance: 7, BreakTime: 5000, MinPickaxeTier: 3, XPReward: 15},
		{ID: "block_diamond", ItemID: ItemDiamond, SpawnChance: 3, BreakTime: 8000, MinPickaxeTier: 4, XPReward: 40},
	}
}

func defaultVendors() []Vendor {
	return []Vendor{
		{ID: VendorGeneralStore, Name: "General Store", Stock: []VendorStock{
			{ItemID: ItemWheatSeeds, Price: 5},
			{ItemID: ItemCarrotSeeds, Price: 8},
			{ItemID: ItemWoodenPickaxe, Price: 25},
			{ItemID: ItemTorch, Price: 4},
		}},
		{ID: VendorWanderingTrader, Name: "Wandering Trader", Rotating: true, DailyCount: 3, Stock: []VendorStock{
			{ItemID: ItemIronIngot, Price: 60},
			{ItemID: ItemGoldIngot, Price: 110},
			{ItemID: ItemDiamond, Price: 240},
			{ItemID: ItemStonePickaxe, Price: 65},
			{ItemID: ItemIronPickaxe, Price: 200},
			{ItemID: ItemCoal, Price: 12},
		}},
	}
}

func defaultBlueprints() []Blueprint {
	return []Blueprint{
		{ID: BlueprintGoldGenerator, GeneratorID: GeneratorGold, Cost: 5000, Requirements: []Ingredient{
			{ItemID: ItemIronIngot, Quantity: 10},
			{ItemID: ItemGoldIngot, Quantity: 5},
			{ItemID: ItemStone, Quantity: 20},
		}},
	}
}

func defaultBoosters() []Booster {
	return []Booster{
		{ID: BoosterProduction, Name: "Production Surge", Effect: BoostProduction, Multiplier: 2.0, Duration: 600000, CostUP: 5},
		{ID: BoosterXP, Name: "Scholar's Draught", Effect: BoostXP, Multiplier: 2.0, Duration: 600000, CostUP: 3},
	}
}

// SupplementalRecipes is the hardcoded recipe list merged under the
// item-embedded recipes. The duplicate stone entry here is intentionally
// shadowed by the item-embedded one.
func SupplementalRecipes() []Recipe {
	return []Recipe{
		{ID: "recipe_torch", ResultItemID: ItemTorch, ResultQuantity: 4, CraftTime: 800, Category: CategoryMisc,
			Ingredients: []Ingredient{{ItemID: ItemCoal, Quantity: 1}, {ItemID: ItemStick, Quantity: 1}}},
		{ID: "recipe_bread", ResultItemID: ItemBread, ResultQuantity: 1, CraftTime: 3000, Category: CategoryFood,
			Ingredients: []Ingredient{{ItemID: ItemWheat, Quantity: 3}}},
		{ID: "recipe_stone", ResultItemID: ItemStone, ResultQuantity: 1, CraftTime: 9999, Category: CategoryMisc,
			Ingredients: []Ingredient{{ItemID: ItemCobblestone, Quantity: 99}}},
	}
}
