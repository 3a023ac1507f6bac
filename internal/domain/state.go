package domain

import "github.com/isleforge/isleforge/internal/container"

// MaxGeneratorTier is the upgrade ceiling for generators and tools.
const MaxGeneratorTier = 5

// OwnedGenerator is a generator the player has unlocked.
//
// LastTick advances only in whole-interval increments so the fractional
// remainder toward the next production cycle is banked between ticks.
type OwnedGenerator struct {
	GeneratorID string `json:"generatorId"`
	Tier        int    `json:"tier"`
	LastTick    int64  `json:"lastTick"` // ms since epoch
	IsActive    bool   `json:"isActive"`
}

// StorageUnit is one named slot-bounded compartment of the storage system.
type StorageUnit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	container.SlotBounded
}

// StorageSystem composes named storage units with a selection pointer.
// SelectedUnitID always references an existing unit.
type StorageSystem struct {
	Units          []StorageUnit `json:"units"`
	SelectedUnitID string        `json:"selectedUnitId"`
}

// Unit returns the unit with the given id, nil if absent.
func (s *StorageSystem) Unit(id string) *StorageUnit {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i]
		}
	}
	return nil
}

// Selected returns the currently selected unit, nil if the system is empty.
func (s *StorageSystem) Selected() *StorageUnit {
	return s.Unit(s.SelectedUnitID)
}

// BankTransactionType classifies bank ledger entries.
type BankTransactionType string

const (
	BankDeposit  BankTransactionType = "deposit"
	BankWithdraw BankTransactionType = "withdraw"
	BankInterest BankTransactionType = "interest"
)

// BankTransaction is one append-only ledger entry. Balance is the
// post-transaction snapshot.
type BankTransaction struct {
	ID        string              `json:"id"`
	Type      BankTransactionType `json:"type"`
	Amount    int                 `json:"amount"`
	Timestamp int64               `json:"timestamp"`
	Balance   int                 `json:"balance"`
}

// Bank holds coins outside the wallet. PeakBalance is the monotonic max the
// balance has ever reached.
type Bank struct {
	Balance      int               `json:"balance"`
	Capacity     int               `json:"capacity"`
	UpgradeLevel int               `json:"upgradeLevel"`
	PeakBalance  int               `json:"peakBalance"`
	Transactions []BankTransaction `json:"transactions"`
}

// Vault is a slot-bounded item container with paid slot upgrades.
type Vault struct {
	container.SlotBounded
	UpgradeLevel int `json:"upgradeLevel"`
}

// PlantedCrop is one occupied farm slot. Growth is never stored as a running
// counter; it is recomputed from PlantedAt on every read so progress stays
// correct however long the client was away.
type PlantedCrop struct {
	SeedID         string `json:"seedId"`
	PlantedAt      int64  `json:"plantedAt"`  // ms since epoch
	GrowthTime     int64  `json:"growthTime"` // ms at unwatered speed
	Watered        bool   `json:"watered"`
	GrowthStage    int    `json:"growthStage"`
	MaxGrowthStage int    `json:"maxGrowthStage"`
}

// Farm is a tiered row of plots; a nil slot is empty.
type Farm struct {
	Tier  int            `json:"tier"`
	Slots []*PlantedCrop `json:"slots"`
}

// GameState is the persisted aggregate. Every field here round-trips through
// the snapshot; transient session state lives elsewhere and never serializes.
type GameState struct {
	Player             PlayerStats               `json:"player"`
	Storage            container.QuantityBounded `json:"storage"`
	StorageSystem      StorageSystem             `json:"storageSystem"`
	Inventory          container.SlotBounded     `json:"inventory"`
	Equipment          Equipment                 `json:"equipment"`
	Durability         map[string]int            `json:"durability"`
	Generators         []OwnedGenerator          `json:"generators"`
	UnlockedGenerators []string                  `json:"unlockedGenerators"`
	OwnedBlueprints    []string                  `json:"ownedBlueprints"`
	BuiltGenerators    []string                  `json:"builtGenerators"`
	Bank               Bank                      `json:"bank"`
	Vault              Vault                     `json:"vault"`
	Farm               Farm                      `json:"farm"`
	LastSave           int64                     `json:"lastSave"`
	PlayTime           int64                     `json:"playTime"` // ms of accounted play
	Keybinds           map[string]string         `json:"keybinds"`
}

// Generator returns the owned generator with the given id, nil if absent.
func (g *GameState) Generator(generatorID string) *OwnedGenerator {
	for i := range g.Generators {
		if g.Generators[i].GeneratorID == generatorID {
			return &g.Generators[i]
		}
	}
	return nil
}

// HasUnlocked reports whether the generator id is in the unlocked set.
func (g *GameState) HasUnlocked(generatorID string) bool {
	return containsString(g.UnlockedGenerators, generatorID)
}

// OwnsBlueprint reports whether the blueprint id is owned.
func (g *GameState) OwnsBlueprint(blueprintID string) bool {
	return containsString(g.OwnedBlueprints, blueprintID)
}

// HasBuilt reports whether the generator id has been built from a blueprint.
func (g *GameState) HasBuilt(generatorID string) bool {
	return containsString(g.BuiltGenerators, generatorID)
}

// Clone returns a deep copy of the aggregate. Multi-step mutators work on a
// clone and swap it in on success so a failed step leaves the original intact.
func (g *GameState) Clone() GameState {
	out := *g
	out.Storage = g.Storage.Clone()
	out.Inventory = g.Inventory.Clone()
	out.StorageSystem = StorageSystem{
		Units:          make([]StorageUnit, len(g.StorageSystem.Units)),
		SelectedUnitID: g.StorageSystem.SelectedUnitID,
	}
	for i, u := range g.StorageSystem.Units {
		out.StorageSystem.Units[i] = StorageUnit{ID: u.ID, Name: u.Name, SlotBounded: u.SlotBounded.Clone()}
	}
	out.Durability = cloneIntMap(g.Durability)
	out.Generators = append([]OwnedGenerator(nil), g.Generators...)
	out.UnlockedGenerators = append([]string(nil), g.UnlockedGenerators...)
	out.OwnedBlueprints = append([]string(nil), g.OwnedBlueprints...)
	out.BuiltGenerators = append([]string(nil), g.BuiltGenerators...)
	out.Bank.Transactions = append([]BankTransaction(nil), g.Bank.Transactions...)
	out.Vault = Vault{SlotBounded: g.Vault.SlotBounded.Clone(), UpgradeLevel: g.Vault.UpgradeLevel}
	out.Farm.Slots = make([]*PlantedCrop, len(g.Farm.Slots))
	for i, c := range g.Farm.Slots {
		if c != nil {
			crop := *c
			out.Farm.Slots[i] = &crop
		}
	}
	out.Keybinds = cloneStringMap(g.Keybinds)
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
