package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/isleforge/isleforge/internal/logger"
)

// Retry configuration defaults.
const (
	RetryMaxAttempts   = 5
	RetryInitialDelay  = 2 * time.Second
	deadLetterFileMode = 0644
)

// deadLetterSchemaVersion is bumped when DeadLetterEntry changes shape.
const deadLetterSchemaVersion = "1.0"

// DeadLetterEntry records an event that could not be delivered after all retries.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSONL file.
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// NewDeadLetterWriter opens (or creates) the dead-letter file at path.
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, deadLetterFileMode)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends a failed event to the dead-letter file.
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	entry := DeadLetterEntry{
		SchemaVersion: deadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the dead-letter file.
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

// CalculateRetryDelay implements exponential backoff: 2s, 4s, 8s, 16s, 32s.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter
// queue. Publish never returns a delivery error to the caller; a failed event
// is retried asynchronously and dead-lettered when retries are exhausted.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	wg   sync.WaitGroup
	done chan struct{}
}

// NewResilientPublisher creates a ResilientPublisher writing undeliverable
// events to the dead-letter file at deadLetterPath.
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
		done:       make(chan struct{}),
	}, nil
}

// Publish attempts delivery once and hands failures to a background retry
// loop. The caller is decoupled from the retry mechanism and always gets nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	if err := p.inner.Publish(ctx, event); err == nil {
		return nil
	} else {
		logger.Warn("Event publish failed, scheduling retries",
			"event_type", event.Type,
			"error", err,
			"max_retries", p.maxRetries)
	}

	p.wg.Add(1)
	go p.retryLoop(event)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// The originating request context may already be cancelled.
	ctx := context.Background()

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		select {
		case <-p.done:
			p.writeDeadLetter(event, attempt-1, lastErr)
			return
		case <-time.After(CalculateRetryDelay(p.retryDelay, attempt)):
		}

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info("Event retry succeeded", "event_type", event.Type, "attempt", attempt)
			return
		}
		logger.Warn("Event retry failed", "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	p.writeDeadLetter(event, p.maxRetries, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error("Failed to write to dead letter", "event_type", event.Type, "error", err)
		return
	}
	logger.Warn("Event dead-lettered", "event_type", event.Type, "attempts", attempts)
}

// Subscribe delegates to the inner bus.
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops retry loops, waits for them to settle, and closes the
// dead-letter file. Pending retries are dead-lettered rather than dropped.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	close(p.done)

	settled := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(settled)
	}()

	select {
	case <-settled:
	case <-ctx.Done():
		logger.Warn("Resilient publisher shutdown timed out")
		return ctx.Err()
	}

	return p.deadLetter.Close()
}
