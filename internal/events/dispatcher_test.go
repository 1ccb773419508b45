package events

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestDispatcher_PublishRunsAllHandlers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventEmployeeCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.EntityID)
		return errors.New("boom")
	})
	d.Subscribe(EventEmployeeCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventPaymentCreated, func(context.Context, Event) error {
		t.Fatalf("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), New(EventEmployeeCreated, "c-1", "u-1", "e-1", nil))
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected joined handler error, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "first:e-1" || calls[1] != "second:e-1" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestDispatcher_ConcurrentSubscribe(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Subscribe(EventTaskStatusChanged, func(context.Context, Event) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if err := d.Publish(context.Background(), New(EventTaskStatusChanged, "c-1", "", "t-1", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if count != 20 {
		t.Fatalf("expected 20 handler calls, got %d", count)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	e := New(EventPackageSubscribed, "c-1", "u-1", "p-1", PaymentPayload{Key: "PAY-1"})
	if e.ID == "" || e.Timestamp.IsZero() || e.Type != EventPackageSubscribed {
		t.Fatalf("unexpected event %+v", e)
	}
}
