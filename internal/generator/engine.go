// Package generator implements the tick engine that advances owned
// generators by elapsed wall-clock time. One pass computes completed
// production cycles per generator, deposits output into storage and awards
// XP; it is correct for any elapsed gap, from a 100ms timer tick to days of
// offline catch-up, without simulating intermediate ticks.
package generator

import (
	"time"

	"github.com/isleforge/isleforge/internal/catalog"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/progression"
)

// Options tunes a tick pass. Multipliers default to 1 when zero.
type Options struct {
	OutputMultiplier float64 // active production booster
	XPMultiplier     float64 // active XP booster
}

// Result reports what a tick pass did.
type Result struct {
	Cycles       map[string]int // generator id -> completed cycles
	Deposited    map[string]int // item id -> units actually stored
	Forfeited    int            // units produced but dropped by a full storage
	XPGained     int
	LevelsGained int
	StorageFull  bool // storage could not take everything this pass
}

// DidWork reports whether the pass produced anything.
func (r Result) DidWork() bool { return len(r.Cycles) > 0 }

// Tick advances every active owned generator to now.
//
// Per generator: cycles = floor(elapsed/interval); lastTick advances by
// cycles*interval, never to now, so the fractional remainder stays banked for
// the next pass. Output deposits with clamp semantics - a nearly-full storage
// banks what it can and the rest is forfeited rather than stalling the
// generator. XP (tier x cycles) accumulates across all generators and is
// applied in a single AddXP call so one pass crossing several level
// boundaries levels up correctly. Calling Tick twice with the same now is a
// no-op the second time.
func Tick(cat *catalog.Catalog, gs *domain.GameState, now time.Time, opts Options) Result {
	res := Result{
		Cycles:    make(map[string]int),
		Deposited: make(map[string]int),
	}
	outMult := opts.OutputMultiplier
	if outMult <= 0 {
		outMult = 1
	}
	xpMult := opts.XPMultiplier
	if xpMult <= 0 {
		xpMult = 1
	}

	nowMs := clock.Millis(now)
	totalXP := 0

	for i := range gs.Generators {
		gen := &gs.Generators[i]
		if !gen.IsActive {
			continue
		}
		def, ok := cat.Generator(gen.GeneratorID)
		if !ok {
			continue
		}

		interval := progression.GeneratorInterval(def, gen.Tier)
		if interval <= 0 {
			continue
		}
		elapsed := nowMs - gen.LastTick
		if elapsed < 0 {
			// Clock skew; never produce negative cycles.
			elapsed = 0
		}
		if elapsed < interval {
			continue
		}

		cycles := int(elapsed / interval)
		output := int(float64(progression.GeneratorOutput(def, gen.Tier)*cycles) * outMult)

		accepted := gs.Storage.Add(def.OutputItemID, output, container.Clamp)
		if accepted < output {
			res.StorageFull = true
			res.Forfeited += output - accepted
		}
		if accepted > 0 {
			res.Deposited[def.OutputItemID] += accepted
		}

		gen.LastTick += int64(cycles) * interval
		res.Cycles[gen.GeneratorID] = cycles
		totalXP += gen.Tier * cycles
	}

	if totalXP > 0 {
		res.XPGained = int(float64(totalXP) * xpMult)
		res.LevelsGained = progression.AddXP(&gs.Player, res.XPGained)
	}
	return res
}
