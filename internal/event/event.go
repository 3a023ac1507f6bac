// Package event carries gameplay notifications from the state engine to
// whoever cares (metrics, the notification layer, tests) without the engine
// knowing about them.
package event

import (
	"context"
	"fmt"
	"sync"
)

// EventSchemaVersion tags every published event.
const EventSchemaVersion = "1.0"

// Type represents the type of an event.
type Type string

// Gameplay event types.
const (
	PlayerLeveledUp  Type = "player.leveled_up"
	StorageFull      Type = "storage.full"
	CraftCompleted   Type = "craft.completed"
	GeneratorBuilt   Type = "generator.built"
	ToolBroke        Type = "tool.broke"
	BankInterestPaid Type = "bank.interest_paid"
	GameSaved        Type = "game.saved"
)

// Event is a generic event in the system.
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	GameID  string      `json:"gameId"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// LevelUpPayloadV1 reports a level gain.
type LevelUpPayloadV1 struct {
	OldLevel int `json:"oldLevel"`
	NewLevel int `json:"newLevel"`
}

// StorageFullPayloadV1 reports forfeited passive production.
type StorageFullPayloadV1 struct {
	ForfeitedUnits int `json:"forfeitedUnits"`
}

// CraftCompletedPayloadV1 reports a finished craft batch.
type CraftCompletedPayloadV1 struct {
	RecipeID string `json:"recipeId"`
	Quantity int    `json:"quantity"`
}

// GeneratorBuiltPayloadV1 reports a blueprint build.
type GeneratorBuiltPayloadV1 struct {
	BlueprintID string `json:"blueprintId"`
	GeneratorID string `json:"generatorId"`
}

// ToolBrokePayloadV1 reports a tool hitting zero durability.
type ToolBrokePayloadV1 struct {
	ItemID string `json:"itemId"`
}

// InterestPaidPayloadV1 reports a bank interest accrual.
type InterestPaidPayloadV1 struct {
	Amount int `json:"amount"`
}

// New builds an event with the current schema version.
func New(t Type, gameID string, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, GameID: gameID, Payload: payload}
}

// Handler is a function that handles an event.
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory synchronous Bus.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a MemoryBus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish delivers the event to every subscriber synchronously. Handler
// errors are collected, not short-circuited, so one broken subscriber cannot
// starve the rest.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()
	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers a handler for an event type.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
