package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/messaging"
)

func TestCompletionScheduler(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules the delayed completion message", func(t *testing.T) {
		publisher := new(MockPublisher)
		o, err := order.NewOrder("Alice", 2, uuid.New())
		require.NoError(t, err)

		expected := messaging.CompleteOrder{OrderID: o.ID.String()}
		publisher.On("PublishAfter", ctx, expected, 10*time.Second).Return(nil)

		scheduler := NewCompletionScheduler(publisher, 10*time.Second, zap.NewNop())
		err = scheduler.Handle(ctx, order.NewOrderCreatedEvent(o))

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("falls back to the default delay", func(t *testing.T) {
		scheduler := NewCompletionScheduler(new(MockPublisher), 0, zap.NewNop())
		assert.Equal(t, DefaultCompletionDelay, scheduler.delay)
	})

	t.Run("rejects an unexpected event type", func(t *testing.T) {
		publisher := new(MockPublisher)
		o, err := order.NewOrder("Alice", 2, uuid.New())
		require.NoError(t, err)

		scheduler := NewCompletionScheduler(publisher, time.Second, zap.NewNop())
		err = scheduler.Handle(ctx, order.NewOrderCompletedEvent(o))

		assert.Error(t, err)
	})

	t.Run("subscribes only to order creation", func(t *testing.T) {
		scheduler := NewCompletionScheduler(new(MockPublisher), time.Second, zap.NewNop())
		assert.Equal(t, []string{order.EventTypeOrderCreated}, scheduler.EventTypes())
	})
}
