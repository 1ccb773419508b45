package worker

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/emsdev/ems-service/internal/events"
)

type recordingNotifier struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingNotifier) EventTypes() []events.EventType {
	return []events.EventType{events.EventEmployeeCreated, events.EventPaymentCreated}
}

func (r *recordingNotifier) Handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, e.EntityID)
	return nil
}

func TestNotificationWorker_DeliversInOrder(t *testing.T) {
	n := &recordingNotifier{}
	d := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(n, 8, zap.NewNop())
	w.Subscribe(d)
	w.Start(context.Background())

	ctx := context.Background()
	for _, id := range []string{"e-1", "e-2"} {
		if err := d.Publish(ctx, events.New(events.EventEmployeeCreated, "c-1", "u-1", id, nil)); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	_ = d.Publish(ctx, events.New(events.EventTaskAssigned, "c-1", "u-1", "ignored", nil))
	_ = d.Publish(ctx, events.New(events.EventPaymentCreated, "c-1", "u-1", "p-1", nil))
	w.Stop()

	if len(n.seen) != 3 || n.seen[0] != "e-1" || n.seen[1] != "e-2" || n.seen[2] != "p-1" {
		t.Fatalf("unexpected deliveries %v", n.seen)
	}

	// publishing after Stop is a no-op, not a panic
	if err := d.Publish(ctx, events.New(events.EventEmployeeCreated, "c-1", "u-1", "late", nil)); err != nil {
		t.Fatalf("publish after stop: %v", err)
	}
	w.Stop()
}

func TestNotificationWorker_DropsWhenFull(t *testing.T) {
	n := &recordingNotifier{}
	d := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(n, 1, zap.NewNop())
	w.Subscribe(d)

	ctx := context.Background()
	for _, id := range []string{"e-1", "e-2", "e-3"} {
		if err := d.Publish(ctx, events.New(events.EventEmployeeCreated, "c-1", "u-1", id, nil)); err != nil {
			t.Fatalf("publisher must not see queue pressure: %v", err)
		}
	}
	if got := w.Dropped(); got != 2 {
		t.Fatalf("expected 2 dropped events, got %d", got)
	}

	w.Start(ctx)
	w.Stop()
	if len(n.seen) != 1 || n.seen[0] != "e-1" {
		t.Fatalf("queued event should still be delivered, got %v", n.seen)
	}
}
