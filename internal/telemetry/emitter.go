// Package telemetry emits console session-lifecycle events (login, logout,
// forced expiry) to a configured sink. Emission is always best-effort: the
// console must behave identically with telemetry disabled.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"ddg-console/internal/telemetry/domain"
)

// emitTimeout is the max time allowed for a single async emit.
const emitTimeout = 5 * time.Second

// EventEmitter sends one console event to a sink (OTel logs, Loki, or both).
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.ConsoleEvent) error
}

// NewEvent returns a ConsoleEvent with id, source, and timestamp filled in.
func NewEvent(eventType string, userID int64, detail string) *domain.ConsoleEvent {
	return &domain.ConsoleEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		EventType: eventType,
		Source:    "ddg-console",
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// EmitAsync runs Emit in a goroutine with a short timeout so the caller is
// not blocked. emitter and event may be nil; EmitAsync then returns without
// starting a goroutine. The goroutine uses context.Background() with
// emitTimeout so command completion does not abort an in-flight emit.
func EmitAsync(emitter EventEmitter, event *domain.ConsoleEvent) {
	if emitter == nil || event == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(ctx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}

// Multi fans one event out to several emitters, returning the first error.
type Multi []EventEmitter

// Emit sends the event to every emitter. Later emitters still run when an
// earlier one fails.
func (m Multi) Emit(ctx context.Context, event *domain.ConsoleEvent) error {
	var first error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
