package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ddg-console/internal/telemetry/domain"
)

// mockEventEmitter implements EventEmitter for tests.
type mockEventEmitter struct {
	mu      sync.Mutex
	events  []*domain.ConsoleEvent
	emitErr error
}

func (m *mockEventEmitter) Emit(ctx context.Context, event *domain.ConsoleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.emitErr
}

func (m *mockEventEmitter) getEvents() []*domain.ConsoleEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

func TestNewEvent_FillsEnvelope(t *testing.T) {
	ev := NewEvent(domain.EventLoginSuccess, 7, "detail")
	if ev.ID == "" {
		t.Error("event id should be set")
	}
	if ev.Source != "ddg-console" {
		t.Errorf("source = %q, want ddg-console", ev.Source)
	}
	if ev.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
	if ev.EventType != domain.EventLoginSuccess || ev.UserID != 7 {
		t.Errorf("event = %+v, want login_success for user 7", ev)
	}
}

func TestEmitAsync_NilEmitterAndEvent(t *testing.T) {
	// Should not panic and not start goroutines.
	EmitAsync(nil, NewEvent(domain.EventLogout, 0, ""))
	EmitAsync(&mockEventEmitter{}, nil)
}

func TestEmitAsync_DeliversEvent(t *testing.T) {
	m := &mockEventEmitter{}
	EmitAsync(m, NewEvent(domain.EventLogout, 3, ""))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(m.getEvents()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("async emit never delivered the event")
}

func TestMulti_FansOutAndKeepsFirstError(t *testing.T) {
	failing := &mockEventEmitter{emitErr: errors.New("sink down")}
	ok := &mockEventEmitter{}

	err := Multi{failing, nil, ok}.Emit(context.Background(), NewEvent(domain.EventUnauthorized, 1, ""))
	if err == nil || err.Error() != "sink down" {
		t.Errorf("err = %v, want the first sink error", err)
	}
	if len(ok.getEvents()) != 1 {
		t.Error("later emitter skipped after an earlier failure")
	}
}
