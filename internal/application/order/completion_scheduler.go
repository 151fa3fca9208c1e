package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// DefaultCompletionDelay is how long a placed order stays in Processing
// before the completion message becomes visible.
const DefaultCompletionDelay = 10 * time.Second

// CompletionScheduler subscribes to OrderCreated and publishes the delayed
// CompleteOrder message. The delay is a fixed simulation of fulfilment time,
// not derived from order contents.
type CompletionScheduler struct {
	publisher messaging.Publisher
	delay     time.Duration
	logger    *zap.Logger
}

// NewCompletionScheduler creates a new CompletionScheduler.
// A non-positive delay falls back to DefaultCompletionDelay.
func NewCompletionScheduler(publisher messaging.Publisher, delay time.Duration, logger *zap.Logger) *CompletionScheduler {
	if delay <= 0 {
		delay = DefaultCompletionDelay
	}
	return &CompletionScheduler{
		publisher: publisher,
		delay:     delay,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (s *CompletionScheduler) EventTypes() []string {
	return []string{order.EventTypeOrderCreated}
}

// Handle schedules completion for a newly created order
func (s *CompletionScheduler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderCreated, event.EventType())
	}

	msg := messaging.CompleteOrder{OrderID: created.OrderID.String()}
	if err := s.publisher.PublishAfter(ctx, msg, s.delay); err != nil {
		return fmt.Errorf("failed to schedule order completion: %w", err)
	}

	s.logger.Info("order completion scheduled",
		zap.String("order_id", created.OrderID.String()),
		zap.Duration("delay", s.delay),
	)
	return nil
}

var _ shared.EventHandler = (*CompletionScheduler)(nil)
