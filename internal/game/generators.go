package game

import (
	"context"

	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/generator"
	"github.com/isleforge/isleforge/internal/metrics"
	"github.com/isleforge/isleforge/internal/progression"
)

// UnlockGenerator pays the catalog unlock cost and starts the generator.
func (s *Store) UnlockGenerator(generatorID string) error {
	return s.unlock(generatorID, true)
}

// UnlockGeneratorFree starts the generator without a coin cost. Used by
// blueprint builds and grants.
func (s *Store) UnlockGeneratorFree(generatorID string) error {
	return s.unlock(generatorID, false)
}

func (s *Store) unlock(generatorID string, paid bool) error {
	def, ok := s.cat.Generator(generatorID)
	if !ok {
		return domain.ErrGeneratorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.HasUnlocked(generatorID) {
		return domain.ErrAlreadyUnlocked
	}
	if paid {
		if s.state.Player.Coins < def.UnlockCost {
			return domain.ErrInsufficientCoins
		}
		s.state.Player.Coins -= def.UnlockCost
	}
	s.state.UnlockedGenerators = append(s.state.UnlockedGenerators, generatorID)
	s.state.Generators = append(s.state.Generators, domain.OwnedGenerator{
		GeneratorID: generatorID,
		Tier:        1,
		LastTick:    clock.Millis(s.clk.Now()),
		IsActive:    true,
	})
	s.markDirty()
	return nil
}

// UpgradeGenerator raises the generator one tier for its catalog upgrade
// cost.
func (s *Store) UpgradeGenerator(generatorID string) error {
	def, ok := s.cat.Generator(generatorID)
	if !ok {
		return domain.ErrGeneratorNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	gen := s.state.Generator(generatorID)
	if gen == nil {
		return domain.ErrGeneratorLocked
	}
	cost, ok := progression.NextTierCost(def, gen.Tier)
	if !ok {
		return domain.ErrGeneratorMaxTier
	}
	if s.state.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= cost
	gen.Tier++
	s.markDirty()
	return nil
}

// SetGeneratorActive pauses or resumes a generator. Resuming resets lastTick
// to now so the pause gap never converts into phantom production.
func (s *Store) SetGeneratorActive(generatorID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen := s.state.Generator(generatorID)
	if gen == nil {
		return domain.ErrGeneratorLocked
	}
	if gen.IsActive == active {
		return nil
	}
	if active {
		gen.LastTick = clock.Millis(s.clk.Now())
	}
	gen.IsActive = active
	s.markDirty()
	return nil
}

// TickGenerators runs one tick engine pass at the clock's current time and
// accrues play time. Safe to call at any frequency; an early repeat call is a
// no-op.
func (s *Store) TickGenerators(ctx context.Context) generator.Result {
	now := s.clk.Now()
	nowMs := clock.Millis(now)

	s.mu.Lock()
	res := generator.Tick(s.cat, &s.state, now, generator.Options{
		OutputMultiplier: s.productionMultiplier(nowMs),
		XPMultiplier:     s.xpMultiplier(nowMs),
	})

	if s.session.lastPlaytimeMark > 0 && nowMs > s.session.lastPlaytimeMark {
		s.state.PlayTime += nowMs - s.session.lastPlaytimeMark
	}
	s.session.lastPlaytimeMark = nowMs

	metrics.TickPasses.Inc()
	for id, cycles := range res.Cycles {
		metrics.CyclesProduced.WithLabelValues(id).Add(float64(cycles))
	}
	if res.Forfeited > 0 {
		metrics.UnitsForfeited.Add(float64(res.Forfeited))
	}
	if res.LevelsGained > 0 {
		metrics.LevelUps.Add(float64(res.LevelsGained))
	}

	notifyFull := false
	if res.StorageFull {
		// Notify once per full episode, not once per 100ms pass.
		if !s.session.storageFullNotified {
			s.session.storageFullNotified = true
			notifyFull = true
		}
	} else if s.state.Storage.Free() > 0 {
		s.session.storageFullNotified = false
	}
	if res.DidWork() {
		s.markDirty()
	}
	s.mu.Unlock()

	if notifyFull {
		s.publish(ctx, event.StorageFull, event.StorageFullPayloadV1{ForfeitedUnits: res.Forfeited})
	}
	s.publishLevelUps(ctx, res.LevelsGained)
	return res
}

// BuyBlueprint purchases blueprint ownership for coins. Owning is not
// building; the generator stays locked until BuildBlueprint.
func (s *Store) BuyBlueprint(blueprintID string) error {
	bp, ok := s.cat.Blueprint(blueprintID)
	if !ok {
		return domain.ErrBlueprintNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.OwnsBlueprint(blueprintID) {
		return domain.ErrAlreadyUnlocked
	}
	if s.state.Player.Coins < bp.Cost {
		return domain.ErrInsufficientCoins
	}
	s.state.Player.Coins -= bp.Cost
	s.state.OwnedBlueprints = append(s.state.OwnedBlueprints, blueprintID)
	s.markDirty()
	return nil
}

// BuildBlueprint consumes the blueprint's required materials from bulk
// storage and unlocks its generator. A blueprint builds exactly once.
func (s *Store) BuildBlueprint(ctx context.Context, blueprintID string) error {
	bp, ok := s.cat.Blueprint(blueprintID)
	if !ok {
		return domain.ErrBlueprintNotFound
	}
	s.mu.Lock()
	if !s.state.OwnsBlueprint(blueprintID) {
		s.mu.Unlock()
		return domain.ErrBlueprintNotOwned
	}
	if s.state.HasBuilt(bp.GeneratorID) {
		s.mu.Unlock()
		return domain.ErrAlreadyBuilt
	}
	if s.state.HasUnlocked(bp.GeneratorID) {
		s.mu.Unlock()
		return domain.ErrAlreadyUnlocked
	}
	for _, req := range bp.Requirements {
		if s.state.Storage.Quantity(req.ItemID) < req.Quantity {
			s.mu.Unlock()
			return domain.ErrMissingIngredients
		}
	}
	// All requirements verified above; removal cannot fail mid-way.
	for _, req := range bp.Requirements {
		s.state.Storage.Remove(req.ItemID, req.Quantity)
	}
	s.state.BuiltGenerators = append(s.state.BuiltGenerators, bp.GeneratorID)
	s.state.UnlockedGenerators = append(s.state.UnlockedGenerators, bp.GeneratorID)
	s.state.Generators = append(s.state.Generators, domain.OwnedGenerator{
		GeneratorID: bp.GeneratorID,
		Tier:        1,
		LastTick:    clock.Millis(s.clk.Now()),
		IsActive:    true,
	})
	s.session.storageFullNotified = false
	s.markDirty()
	s.mu.Unlock()

	s.publish(ctx, event.GeneratorBuilt, event.GeneratorBuiltPayloadV1{
		BlueprintID: blueprintID,
		GeneratorID: bp.GeneratorID,
	})
	return nil
}
