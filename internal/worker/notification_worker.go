package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/emsdev/ems-service/internal/events"
)

const defaultQueueSize = 256

// Notifier delivers a single event.
type Notifier interface {
	EventTypes() []events.EventType
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker moves notification delivery off the request path.
// Published events are queued; a background goroutine hands them to the notifier.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
	dropped atomic.Int64
}

// NewNotificationWorker builds a worker with a queue of queueSize events.
func NewNotificationWorker(notifier Notifier, queueSize int, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, queueSize),
		done:     make(chan struct{}),
	}
}

// Subscribe registers the worker for every event the notifier handles.
func (w *NotificationWorker) Subscribe(d events.Dispatcher) {
	for _, t := range w.notifier.EventTypes() {
		d.Subscribe(t, w.enqueue)
	}
}

// Start runs the delivery loop until Stop.
func (w *NotificationWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for event := range w.queue {
			if err := w.notifier.Handle(ctx, event); err != nil {
				w.logger.Warn("notification failed",
					zap.String("event_type", string(event.Type)),
					zap.String("entity_id", event.EntityID),
					zap.Error(err))
			}
		}
	}()
}

// Stop refuses new events, drains the queue and waits for the loop to exit.
// Start must have been called.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}

// Dropped reports how many events were discarded because the queue was full.
func (w *NotificationWorker) Dropped() int64 {
	return w.dropped.Load()
}

// enqueue never blocks the publisher.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.dropped.Add(1)
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID))
	}
	return nil
}
