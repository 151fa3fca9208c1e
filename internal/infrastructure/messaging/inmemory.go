package messaging

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/microshop/backend/internal/infrastructure/scheduler"
	"github.com/microshop/backend/internal/messaging"
)

// InMemoryBus is a broker adapter for single-process runs and tests.
//
// Messages are JSON-encoded and decoded exactly as they would be on a real
// broker, so the wire contract is exercised even in-process. Delivery is
// serialized per routing key (one delivery at a time per queue) and a
// handler error is logged and dropped, mirroring at-least-once consumers
// that never propagate failures past the handler boundary.
type InMemoryBus struct {
	*dispatcher
	sched   *scheduler.DelayScheduler
	logger  *zap.Logger
	running atomic.Bool

	mu     sync.Mutex
	queues map[string]*sync.Mutex // per-routing-key delivery lock
}

// NewInMemoryBus creates an in-memory bus. The scheduler realizes the
// per-message visibility delay.
func NewInMemoryBus(sched *scheduler.DelayScheduler, logger *zap.Logger) *InMemoryBus {
	return &InMemoryBus{
		dispatcher: newDispatcher(logger),
		sched:      sched,
		logger:     logger,
		queues:     make(map[string]*sync.Mutex),
	}
}

// Publish delivers the message to the handler bound to its routing key
func (b *InMemoryBus) Publish(ctx context.Context, msg messaging.Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}
	b.deliver(ctx, msg.RoutingKey(), payload)
	return nil
}

// PublishAfter delivers the message once the visibility delay has elapsed
func (b *InMemoryBus) PublishAfter(ctx context.Context, msg messaging.Message, delay time.Duration) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}

	routingKey := msg.RoutingKey()
	b.sched.Schedule(delay, func(ctx context.Context) {
		b.deliver(ctx, routingKey, payload)
	})
	return nil
}

// Start marks the bus as running
func (b *InMemoryBus) Start(_ context.Context) error {
	b.running.Store(true)
	b.logger.Info("in-memory bus started")
	return nil
}

// Stop discards delayed messages whose delay has not elapsed and waits,
// bounded by ctx, for deliveries already in flight
func (b *InMemoryBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	if err := b.sched.Stop(ctx); err != nil {
		return err
	}
	b.logger.Info("in-memory bus stopped")
	return nil
}

func (b *InMemoryBus) deliver(ctx context.Context, routingKey string, payload []byte) {
	lock := b.queueLock(routingKey)
	lock.Lock()
	defer lock.Unlock()

	if err := b.dispatch(ctx, routingKey, payload); err != nil {
		// At-least-once consumers never fail past the handler; a real
		// broker would redeliver, here the error is surfaced in the log.
		b.logger.Error("message handler failed",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}

func (b *InMemoryBus) queueLock(routingKey string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	lock, ok := b.queues[routingKey]
	if !ok {
		lock = &sync.Mutex{}
		b.queues[routingKey] = lock
	}
	return lock
}

var _ messaging.Bus = (*InMemoryBus)(nil)
