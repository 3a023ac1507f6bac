package game

// Fresh-game defaults.
const (
	DefaultInventorySlots   = 12
	DefaultStorageCapacity  = 50
	DefaultStorageUnitSlots = 8
	DefaultFarmTier         = 1
)

// Storage upgrade tuning: each upgrade adds a fixed capacity step at a cost
// proportional to current capacity.
const (
	storageUpgradeStep       = 50
	storageUpgradeCostFactor = 2
)

// Storage unit purchase tuning: each additional unit costs more than the last.
const storageUnitCostBase = 750

// Farm upgrade tuning: tier N to N+1 costs N times the base.
const farmUpgradeCostBase = 1500

// Log messages
const (
	LogMsgGameReset      = "Game state reset to defaults"
	LogMsgSnapshotLoaded = "Game state restored from snapshot"
	LogMsgBoosterExpired = "Booster expired"
)
