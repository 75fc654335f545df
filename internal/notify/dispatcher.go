// Package notify delivers user notifications asynchronously so that a slow or
// failing transport never holds up the operation that produced them.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// Sink delivers a single notification.
type Sink interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Dispatcher queues notifications in memory and hands them to a Sink from a
// fixed pool of workers. Delivery is best-effort: failures are logged and the
// notification is dropped.
type Dispatcher struct {
	sink  Sink
	queue chan domain.Notification
	log   *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts workers goroutines draining a queue of queueSize.
func NewDispatcher(log *slog.Logger, sink Sink, queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan domain.Notification, queueSize),
		log:   log.With("component", "notify"),
	}

	d.wg.Add(workers)
	for range workers {
		go d.work()
	}
	return d
}

// Notify enqueues notifications without blocking. When the queue is full or
// the dispatcher is closed the notification is dropped with a warning.
func (d *Dispatcher) Notify(ctx context.Context, notes ...domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, n := range notes {
		if d.closed {
			d.log.WarnContext(ctx, "notification dropped: dispatcher closed",
				slog.String("user_id", n.UserID.String()),
				slog.String("entity_id", n.EntityID),
			)
			continue
		}
		select {
		case d.queue <- n:
		default:
			d.log.WarnContext(ctx, "notification dropped: queue full",
				slog.String("user_id", n.UserID.String()),
				slog.String("entity_id", n.EntityID),
			)
		}
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for n := range d.queue {
		if err := d.sink.Send(context.Background(), n); err != nil {
			d.log.Warn("notification delivery failed",
				slog.String("user_id", n.UserID.String()),
				slog.String("entity_type", n.EntityType),
				slog.String("entity_id", n.EntityID),
				slog.String("error", err.Error()),
			)
		}
	}
}
