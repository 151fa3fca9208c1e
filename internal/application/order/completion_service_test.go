package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

func TestCompletionService_HandleCompleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("completes a processing order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o, err := order.NewOrder("Alice", 2, uuid.New())
		require.NoError(t, err)

		orders.On("FindByID", ctx, o.ID).Return(o, nil)
		orders.On("Save", ctx, o).Return(nil)

		svc := NewCompletionService(orders, zap.NewNop())
		err = svc.HandleCompleteOrder(ctx, messaging.CompleteOrder{OrderID: o.ID.String()})

		require.NoError(t, err)
		assert.True(t, o.IsCompleted())
		orders.AssertExpectations(t)
	})

	t.Run("drops a completion for an unknown order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		svc := NewCompletionService(orders, zap.NewNop())
		err := svc.HandleCompleteOrder(ctx, messaging.CompleteOrder{OrderID: uuid.New().String()})

		// Dropped, not requeued: the handler reports success.
		assert.NoError(t, err)
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("redelivery of a completion is a no-op", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o, err := order.NewOrder("Alice", 2, uuid.New())
		require.NoError(t, err)
		require.NoError(t, o.Complete())

		orders.On("FindByID", ctx, o.ID).Return(o, nil)

		svc := NewCompletionService(orders, zap.NewNop())
		err = svc.HandleCompleteOrder(ctx, messaging.CompleteOrder{OrderID: o.ID.String()})

		require.NoError(t, err)
		assert.True(t, o.IsCompleted())
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("drops a completion with a malformed order id", func(t *testing.T) {
		orders := new(MockOrderRepository)

		svc := NewCompletionService(orders, zap.NewNop())
		err := svc.HandleCompleteOrder(ctx, messaging.CompleteOrder{OrderID: "not-a-uuid"})

		assert.NoError(t, err)
		orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
