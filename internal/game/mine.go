package game

import (
	"context"

	"github.com/isleforge/isleforge/internal/domain"
	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/metrics"
	"github.com/isleforge/isleforge/internal/mining"
	"github.com/isleforge/isleforge/internal/progression"
)

// MineBlock breaks the given block with the equipped pickaxe. Yield deposits
// into the inventory with clamp semantics; a full inventory forfeits the item
// but the mine, its XP and its durability cost still happen.
func (s *Store) MineBlock(ctx context.Context, blockID string) (mining.Result, error) {
	s.mu.Lock()
	pickID := s.state.Equipment.MainHand
	res, err := mining.Mine(s.cat, &s.state, blockID)
	if err != nil {
		s.mu.Unlock()
		return res, err
	}
	if res.LevelsGained > 0 {
		metrics.LevelUps.Add(float64(res.LevelsGained))
	}
	s.markDirty()
	s.mu.Unlock()

	if res.ToolBroken {
		s.publish(ctx, event.ToolBroke, event.ToolBrokePayloadV1{ItemID: pickID})
	}
	s.publishLevelUps(ctx, res.LevelsGained)
	return res, nil
}

// RollBlock picks the next block to present, weighted by spawn chance.
func (s *Store) RollBlock() (string, error) {
	blocks := s.cat.Blocks()
	if len(blocks) == 0 {
		return "", domain.ErrBlockNotFound
	}
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()
	block := progression.SelectRandomBlock(blocks, func() float64 { return roll })
	return block.ID, nil
}
