package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/progression"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newState returns a state with one tier-1 cobblestone generator
// (5000ms interval, 1 per cycle) last ticked at epoch.
func newState(capacity int) *domain.GameState {
	return &domain.GameState{
		Player:  domain.PlayerStats{Level: 1, XPToNextLevel: progression.XPForLevel(1)},
		Storage: container.QuantityBounded{Capacity: capacity},
		Generators: []domain.OwnedGenerator{{
			GeneratorID: catalog.GeneratorCobblestone,
			Tier:        1,
			LastTick:    clock.Millis(epoch),
			IsActive:    true,
		}},
	}
}

func TestTick_WholeCyclesOnly(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)

	res := Tick(cat, gs, epoch.Add(12*time.Second), Options{})

	assert.Equal(t, 2, res.Cycles[catalog.GeneratorCobblestone])
	assert.Equal(t, 2, res.Deposited[catalog.ItemCobblestone])
	assert.Equal(t, 2, gs.Storage.Quantity(catalog.ItemCobblestone))
	assert.Equal(t, 2, res.XPGained)
	assert.False(t, res.StorageFull)

	// lastTick advances by whole cycles; the 2000ms remainder stays banked.
	assert.Equal(t, clock.Millis(epoch)+10000, gs.Generators[0].LastTick)
}

func TestTick_BankedRemainderCompletesNextPass(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)

	Tick(cat, gs, epoch.Add(12*time.Second), Options{})

	// 12s + 3s = 15s total: the banked 2s plus 3s completes the third cycle.
	res := Tick(cat, gs, epoch.Add(15*time.Second), Options{})
	assert.Equal(t, 1, res.Cycles[catalog.GeneratorCobblestone])
	assert.Equal(t, 3, gs.Storage.Quantity(catalog.ItemCobblestone))
	assert.Equal(t, clock.Millis(epoch)+15000, gs.Generators[0].LastTick)
}

func TestTick_RepeatAtSameInstantIsNoOp(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)
	now := epoch.Add(12 * time.Second)

	Tick(cat, gs, now, Options{})
	res := Tick(cat, gs, now, Options{})

	assert.False(t, res.DidWork())
	assert.Equal(t, 2, gs.Storage.Quantity(catalog.ItemCobblestone))
}

func TestTick_SubIntervalElapsedProducesNothing(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)

	res := Tick(cat, gs, epoch.Add(4900*time.Millisecond), Options{})
	assert.False(t, res.DidWork())
	assert.Equal(t, clock.Millis(epoch), gs.Generators[0].LastTick, "partial progress stays banked in lastTick")
}

func TestTick_OfflineCatchUpInOnePass(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100000)

	// Two days away: 34560 cycles in a single pass.
	res := Tick(cat, gs, epoch.Add(48*time.Hour), Options{})
	assert.Equal(t, 34560, res.Cycles[catalog.GeneratorCobblestone])
	assert.Equal(t, 34560, gs.Storage.Quantity(catalog.ItemCobblestone))
	assert.Greater(t, res.LevelsGained, 0)
}

func TestTick_FullStorageClampsAndForfeits(t *testing.T) {
	cat := catalog.Default()
	gs := newState(5)
	gs.Storage.Add(catalog.ItemCobblestone, 3, container.Reject)

	// 10 cycles produce 10 units; only 2 fit.
	res := Tick(cat, gs, epoch.Add(50*time.Second), Options{})
	assert.True(t, res.StorageFull)
	assert.Equal(t, 8, res.Forfeited)
	assert.Equal(t, 2, res.Deposited[catalog.ItemCobblestone])
	assert.Equal(t, 5, gs.Storage.Quantity(catalog.ItemCobblestone))

	// XP still accrues for forfeited production: the generator ran.
	assert.Equal(t, 10, res.XPGained)
	// The generator does not stall; lastTick keeps advancing.
	assert.Equal(t, clock.Millis(epoch)+50000, gs.Generators[0].LastTick)
}

func TestTick_InactiveGeneratorSkipped(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)
	gs.Generators[0].IsActive = false

	res := Tick(cat, gs, epoch.Add(1*time.Hour), Options{})
	assert.False(t, res.DidWork())
	assert.Equal(t, clock.Millis(epoch), gs.Generators[0].LastTick)
}

func TestTick_ClockSkewNeverProducesNegativeCycles(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)
	gs.Generators[0].LastTick = clock.Millis(epoch.Add(time.Hour))

	res := Tick(cat, gs, epoch, Options{})
	assert.False(t, res.DidWork())
	assert.Equal(t, 0, gs.Storage.Quantity(catalog.ItemCobblestone))
}

func TestTick_HigherTierUsesCurve(t *testing.T) {
	cat := catalog.Default()
	gs := newState(1000)
	gs.Generators[0].Tier = 3 // 2x output, 0.8x interval: 2 per 4000ms

	res := Tick(cat, gs, epoch.Add(8*time.Second), Options{})
	assert.Equal(t, 2, res.Cycles[catalog.GeneratorCobblestone])
	assert.Equal(t, 4, gs.Storage.Quantity(catalog.ItemCobblestone))
	assert.Equal(t, 6, res.XPGained, "XP is tier x cycles")
}

func TestTick_Multipliers(t *testing.T) {
	cat := catalog.Default()
	gs := newState(1000)

	res := Tick(cat, gs, epoch.Add(10*time.Second), Options{
		OutputMultiplier: 2.0,
		XPMultiplier:     3.0,
	})
	assert.Equal(t, 4, res.Deposited[catalog.ItemCobblestone], "2 cycles x 1 output x 2.0")
	assert.Equal(t, 6, res.XPGained, "2 xp x 3.0")
}

func TestTick_MultipleGeneratorsLevelUpOnce(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100000)
	gs.Generators = append(gs.Generators, domain.OwnedGenerator{
		GeneratorID: catalog.GeneratorCoal,
		Tier:        5,
		LastTick:    clock.Millis(epoch),
		IsActive:    true,
	})

	// XP from both generators applies as one grant, crossing levels correctly.
	res := Tick(cat, gs, epoch.Add(30*time.Minute), Options{})
	require.Greater(t, res.LevelsGained, 0)
	assert.Less(t, gs.Player.XP, gs.Player.XPToNextLevel)
	assert.Equal(t, 1+res.LevelsGained, gs.Player.Level)
}

func TestTick_UnknownGeneratorIgnored(t *testing.T) {
	cat := catalog.Default()
	gs := newState(100)
	gs.Generators = append(gs.Generators, domain.OwnedGenerator{
		GeneratorID: "retired_generator",
		Tier:        1,
		LastTick:    clock.Millis(epoch),
		IsActive:    true,
	})

	res := Tick(cat, gs, epoch.Add(10*time.Second), Options{})
	assert.NotContains(t, res.Cycles, "retired_generator")
	assert.Equal(t, 2, res.Cycles[catalog.GeneratorCobblestone])
}
