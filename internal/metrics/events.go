package metrics

import (
	"context"

	"github.com/isleforge/isleforge/internal/event"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.PlayerLeveledUp,
		event.StorageFull,
		event.CraftCompleted,
		event.GeneratorBuilt,
		event.ToolBroke,
		event.BankInterestPaid,
		event.GameSaved,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent counts the event. Gameplay counters (sales, crafts, level-ups)
// are recorded at the source so this only tracks bus throughput.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()
	return nil
}
