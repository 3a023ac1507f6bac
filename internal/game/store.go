// Package game holds the game state store: the aggregate root owning the
// whole persisted state plus the mutator surface the HTTP layer and the
// periodic jobs drive. Every mutator runs under the store mutex and either
// fully succeeds or leaves the aggregate untouched; multi-step mutations work
// on a clone of the state and swap it in on success.
package game

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	forgebank "github.com/isleforge/isleforge/internal/bank"
	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/farming"
	"github.com/isleforge/isleforge/internal/progression"
)

// ActiveBooster is a running timed multiplier. Boosters are session state:
// they do not round-trip through snapshots.
type ActiveBooster struct {
	BoosterID  string
	Effect     catalog.BoosterEffect
	Multiplier float64
	ExpiresAt  int64 // ms since epoch
}

// session is the transient, never-persisted half of the aggregate.
type session struct {
	activeBoosters      []ActiveBooster
	storageFullNotified bool
	lastPlaytimeMark    int64 // ms; anchors PlayTime accumulation
	dirty               bool
}

// Store is one player's game session.
type Store struct {
	mu  sync.Mutex
	id  string
	cat *catalog.Catalog
	clk clock.Clock
	bus event.Bus
	rng *rand.Rand

	state   domain.GameState
	session session
}

// New creates a store with a fresh default game state.
func New(id string, cat *catalog.Catalog, clk clock.Clock, bus event.Bus, rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Store{id: id, cat: cat, clk: clk, bus: bus, rng: rng}
	s.state = defaultState(clk.Now())
	return s
}

// ID returns the save id this session is keyed by.
func (s *Store) ID() string { return s.id }

// defaultState is the fresh-game aggregate: one active cobblestone generator,
// a wooden pickaxe already equipped, empty everything else.
func defaultState(now time.Time) domain.GameState {
	nowMs := clock.Millis(now)
	return domain.GameState{
		Player: domain.PlayerStats{
			Level:         1,
			XPToNextLevel: progression.XPForLevel(1),
		},
		Storage:   container.QuantityBounded{Capacity: DefaultStorageCapacity},
		Inventory: container.SlotBounded{MaxSlots: DefaultInventorySlots},
		StorageSystem: domain.StorageSystem{
			Units: []domain.StorageUnit{{
				ID:          "unit_1",
				Name:        "Storage Unit 1",
				SlotBounded: container.SlotBounded{MaxSlots: DefaultStorageUnitSlots},
			}},
			SelectedUnitID: "unit_1",
		},
		Equipment: domain.Equipment{MainHand: catalog.ItemWoodenPickaxe},
		Durability: map[string]int{
			catalog.ItemWoodenPickaxe: 60,
		},
		Generators: []domain.OwnedGenerator{{
			GeneratorID: catalog.GeneratorCobblestone,
			Tier:        1,
			LastTick:    nowMs,
			IsActive:    true,
		}},
		UnlockedGenerators: []string{catalog.GeneratorCobblestone},
		Bank:               forgebank.NewBank(),
		Vault:              forgebank.NewVault(),
		Farm:               farming.NewFarm(DefaultFarmTier),
		Keybinds: map[string]string{
			"mine":      "Space",
			"inventory": "E",
			"crafting":  "C",
		},
	}
}

// State returns a deep copy of the current persisted state.
func (s *Store) State() domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Snapshot serializes the persisted aggregate. Transient session state
// (boosters, notification flags) is excluded by construction.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.state)
}

// Restore replaces the aggregate with a previously serialized snapshot.
func (s *Store) Restore(data []byte) error {
	var st domain.GameState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	normalize(&st)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.session = session{}
	return nil
}

// normalize repairs a snapshot into invariant-holding shape: stale pointers
// and derived fields are recomputed rather than trusted.
func normalize(st *domain.GameState) {
	if st.Player.Level < 1 {
		st.Player.Level = 1
	}
	if st.Player.XPToNextLevel <= 0 {
		st.Player.XPToNextLevel = progression.XPForLevel(st.Player.Level)
	}
	if st.StorageSystem.Selected() == nil && len(st.StorageSystem.Units) > 0 {
		st.StorageSystem.SelectedUnitID = st.StorageSystem.Units[0].ID
	}
	if st.Durability == nil {
		st.Durability = make(map[string]int)
	}
	if st.Keybinds == nil {
		st.Keybinds = make(map[string]string)
	}
}

// Reset replaces the aggregate with a fresh default game atomically.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = defaultState(s.clk.Now())
	s.session = session{}
	s.markDirty()
}

// MarkSaved stamps LastSave after a successful persistence write.
func (s *Store) MarkSaved(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastSave = clock.Millis(now)
	s.session.dirty = false
}

// Dirty reports whether the state changed since the last save.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.dirty
}

func (s *Store) markDirty() { s.session.dirty = true }

func (s *Store) nowMs() int64 { return clock.Millis(s.clk.Now()) }

// publish fires an event if a bus is attached. Mutators publish after state
// is committed; a slow or failing subscriber never rolls a mutation back.
func (s *Store) publish(ctx context.Context, t event.Type, payload interface{}) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, event.New(t, s.id, payload))
}

// publishLevelUps emits one event per mutation that gained levels.
func (s *Store) publishLevelUps(ctx context.Context, gained int) {
	if gained <= 0 {
		return
	}
	s.publish(ctx, event.PlayerLeveledUp, event.LevelUpPayloadV1{
		OldLevel: s.state.Player.Level - gained,
		NewLevel: s.state.Player.Level,
	})
}

// productionMultiplier returns the combined active production booster factor.
func (s *Store) productionMultiplier(nowMs int64) float64 {
	return s.boosterMultiplier(catalog.BoostProduction, nowMs)
}

// xpMultiplier returns the combined active XP booster factor.
func (s *Store) xpMultiplier(nowMs int64) float64 {
	return s.boosterMultiplier(catalog.BoostXP, nowMs)
}

func (s *Store) boosterMultiplier(effect catalog.BoosterEffect, nowMs int64) float64 {
	mult := 1.0
	for _, b := range s.session.activeBoosters {
		if b.Effect == effect && b.ExpiresAt > nowMs {
			mult *= b.Multiplier
		}
	}
	return mult
}
