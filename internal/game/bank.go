package game

import (
	"context"

	forgebank "github.com/isleforge/isleforge/internal/bank"
	"github.com/isleforge/isleforge/internal/event"
)

// DepositToBank moves coins from the wallet into the bank.
func (s *Store) DepositToBank(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.Deposit(&s.state, amount, s.clk.Now()); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// WithdrawFromBank moves coins from the bank back to the wallet.
func (s *Store) WithdrawFromBank(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.Withdraw(&s.state, amount, s.clk.Now()); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// ApplyBankInterest credits one interest accrual on the standing balance.
// Called by the scheduler, not the player.
func (s *Store) ApplyBankInterest(ctx context.Context) int {
	s.mu.Lock()
	credit := forgebank.ApplyInterest(&s.state, forgebank.InterestRate, s.clk.Now())
	if credit > 0 {
		s.markDirty()
	}
	s.mu.Unlock()

	if credit > 0 {
		s.publish(ctx, event.BankInterestPaid, event.InterestPaidPayloadV1{Amount: credit})
	}
	return credit
}

// UpgradeBank doubles bank capacity for coins.
func (s *Store) UpgradeBank() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.Upgrade(&s.state); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// UpgradeVault adds vault slots for coins.
func (s *Store) UpgradeVault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.UpgradeVault(&s.state); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// DepositToVault moves items from the inventory into the vault.
func (s *Store) DepositToVault(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.DepositToVault(&s.state, itemID, qty); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// WithdrawFromVault moves items from the vault back to the inventory.
func (s *Store) WithdrawFromVault(itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := forgebank.WithdrawFromVault(&s.state, itemID, qty); err != nil {
		return err
	}
	s.markDirty()
	return nil
}
