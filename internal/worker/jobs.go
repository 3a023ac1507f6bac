package worker

import (
	"context"

	"github.com/isleforge/isleforge/internal/game"
	"github.com/isleforge/isleforge/internal/session"
)

// GeneratorTickJob runs a generator tick pass over every resident session.
// The engine banks partial cycles, so a dropped or late pass costs nothing.
type GeneratorTickJob struct {
	Sessions *session.Manager
}

// Process runs the pass.
func (j *GeneratorTickJob) Process(ctx context.Context) error {
	j.Sessions.ForEach(func(s *game.Store) {
		s.TickGenerators(ctx)
	})
	return nil
}

// SessionTickJob is the slow pass: booster expiry and cosmetic farm stage
// refresh per resident session.
type SessionTickJob struct {
	Sessions *session.Manager
}

// Process runs the pass.
func (j *SessionTickJob) Process(ctx context.Context) error {
	j.Sessions.ForEach(func(s *game.Store) {
		s.TickSession(ctx)
	})
	return nil
}

// BankInterestJob credits one interest accrual per resident session.
type BankInterestJob struct {
	Sessions *session.Manager
}

// Process runs the accrual.
func (j *BankInterestJob) Process(ctx context.Context) error {
	j.Sessions.ForEach(func(s *game.Store) {
		s.ApplyBankInterest(ctx)
	})
	return nil
}

// AutosaveJob flushes dirty sessions to the repository. Failures are logged
// inside the manager and never stop gameplay.
type AutosaveJob struct {
	Sessions *session.Manager
}

// Process runs the sweep.
func (j *AutosaveJob) Process(ctx context.Context) error {
	j.Sessions.SaveDirty(ctx)
	return nil
}
