// Package bank implements the coin bank (capacity-bounded balance with an
// append-only transaction ledger) and the vault (slot-bounded item cold
// storage), both with paid upgrades.
package bank

import (
	"time"

	"github.com/google/uuid"

	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/container"
	"github.com/isleforge/isleforge/internal/domain"
)

// Bank and vault tuning.
const (
	BaseCapacity    = 10000
	upgradeCostBase = 1000 // doubles each level, capacity doubles too

	// InterestRate is applied per accrual pass on the standing balance.
	InterestRate = 0.01

	VaultBaseSlots    = 6
	vaultUpgradeSlots = 3
	vaultUpgradeBase  = 2500
)

// NewBank returns an empty level-0 bank.
func NewBank() domain.Bank {
	return domain.Bank{Capacity: BaseCapacity}
}

// NewVault returns an empty level-0 vault.
func NewVault() domain.Vault {
	return domain.Vault{SlotBounded: container.SlotBounded{MaxSlots: VaultBaseSlots}}
}

func record(b *domain.Bank, t domain.BankTransactionType, amount int, now time.Time) {
	b.Transactions = append(b.Transactions, domain.BankTransaction{
		ID:        uuid.NewString(),
		Type:      t,
		Amount:    amount,
		Timestamp: clock.Millis(now),
		Balance:   b.Balance,
	})
	if b.Balance > b.PeakBalance {
		b.PeakBalance = b.Balance
	}
}

// Deposit moves coins from the wallet into the bank. Player-initiated, so a
// deposit the capacity cannot fully hold is rejected, not clamped.
func Deposit(gs *domain.GameState, amount int, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	if gs.Player.Coins < amount {
		return domain.ErrInsufficientCoins
	}
	if gs.Bank.Balance+amount > gs.Bank.Capacity {
		return domain.ErrBankFull
	}
	gs.Player.Coins -= amount
	gs.Bank.Balance += amount
	record(&gs.Bank, domain.BankDeposit, amount, now)
	return nil
}

// Withdraw moves coins from the bank back to the wallet.
func Withdraw(gs *domain.GameState, amount int, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	if gs.Bank.Balance < amount {
		return domain.ErrInsufficientBalance
	}
	gs.Bank.Balance -= amount
	gs.Player.Coins += amount
	record(&gs.Bank, domain.BankWithdraw, amount, now)
	return nil
}

// ApplyInterest credits rate on the standing balance, clamped to capacity.
// Passive accrual: a full bank simply earns what fits. Returns the credited
// amount; zero-credit passes append no ledger entry.
func ApplyInterest(gs *domain.GameState, rate float64, now time.Time) int {
	credit := int(float64(gs.Bank.Balance) * rate)
	if room := gs.Bank.Capacity - gs.Bank.Balance; credit > room {
		credit = room
	}
	if credit <= 0 {
		return 0
	}
	gs.Bank.Balance += credit
	record(&gs.Bank, domain.BankInterest, credit, now)
	return credit
}

// UpgradeCost returns the coin price of the next bank upgrade.
func UpgradeCost(upgradeLevel int) int {
	return upgradeCostBase << upgradeLevel
}

// Upgrade doubles the bank capacity for a coin cost that doubles per level.
func Upgrade(gs *domain.GameState) error {
	cost := UpgradeCost(gs.Bank.UpgradeLevel)
	if gs.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	gs.Player.Coins -= cost
	gs.Bank.UpgradeLevel++
	gs.Bank.Capacity *= 2
	return nil
}

// VaultUpgradeCost returns the coin price of the next vault upgrade.
func VaultUpgradeCost(upgradeLevel int) int {
	return vaultUpgradeBase * (upgradeLevel + 1)
}

// UpgradeVault adds slots to the vault for a linearly growing coin cost.
func UpgradeVault(gs *domain.GameState) error {
	cost := VaultUpgradeCost(gs.Vault.UpgradeLevel)
	if gs.Player.Coins < cost {
		return domain.ErrInsufficientCoins
	}
	gs.Player.Coins -= cost
	gs.Vault.UpgradeLevel++
	gs.Vault.MaxSlots += vaultUpgradeSlots
	return nil
}

// DepositToVault moves items from the inventory into the vault. Player
// transfer: all-or-nothing.
func DepositToVault(gs *domain.GameState, itemID string, qty int) error {
	if _, ok := container.Move(&gs.Inventory, &gs.Vault.SlotBounded, itemID, qty, container.Reject); !ok {
		if gs.Inventory.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrVaultFull
	}
	return nil
}

// WithdrawFromVault moves items from the vault back to the inventory.
func WithdrawFromVault(gs *domain.GameState, itemID string, qty int) error {
	if _, ok := container.Move(&gs.Vault.SlotBounded, &gs.Inventory, itemID, qty, container.Reject); !ok {
		if gs.Vault.Quantity(itemID) < qty {
			return domain.ErrInsufficientQuantity
		}
		return domain.ErrInventoryFull
	}
	return nil
}
