package game

import (
	"context"

	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/farming"
)

// BuyBooster spends universal points on a timed multiplier. Boosters are
// session-scoped: they expire in real time and are not part of the persisted
// snapshot, so a restart forfeits the remainder.
func (s *Store) BuyBooster(boosterID string) error {
	def, ok := s.cat.Booster(boosterID)
	if !ok {
		return domain.ErrItemNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Player.UniversalPoints < def.CostUP {
		return domain.ErrInsufficientPoints
	}
	s.state.Player.UniversalPoints -= def.CostUP
	nowMs := s.nowMs()
	s.session.activeBoosters = append(s.session.activeBoosters, ActiveBooster{
		BoosterID:  def.ID,
		Effect:     def.Effect,
		Multiplier: def.Multiplier,
		ExpiresAt:  nowMs + def.Duration,
	})
	s.markDirty()
	return nil
}

// ActiveBoosters returns the boosters still running.
func (s *Store) ActiveBoosters() []ActiveBooster {
	s.mu.Lock()
	defer s.mu.Unlock()
	nowMs := s.nowMs()
	out := make([]ActiveBooster, 0, len(s.session.activeBoosters))
	for _, b := range s.session.activeBoosters {
		if b.ExpiresAt > nowMs {
			out = append(out, b)
		}
	}
	return out
}

// TickSession is the slow periodic pass: it drops expired boosters and
// refreshes the cosmetic farm growth stages. It never advances stored
// progression counters.
func (s *Store) TickSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nowMs := s.nowMs()
	kept := s.session.activeBoosters[:0]
	for _, b := range s.session.activeBoosters {
		if b.ExpiresAt > nowMs {
			kept = append(kept, b)
		}
	}
	s.session.activeBoosters = kept
	farming.Refresh(&s.state, s.clk.Now())
}
