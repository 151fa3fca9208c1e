package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// CompletionService consumes CompleteOrder messages and finalizes orders.
//
// The transition is Processing to Completed and nothing else. Deliveries are
// at-least-once, so any delivery that finds the order already out of
// Processing is acknowledged as a no-op rather than retried.
type CompletionService struct {
	orders order.OrderRepository
	logger *zap.Logger
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(orders order.OrderRepository, logger *zap.Logger) *CompletionService {
	return &CompletionService{
		orders: orders,
		logger: logger,
	}
}

// HandleCompleteOrder transitions the referenced order to Completed.
// A missing order is logged and dropped; the message is never requeued.
func (s *CompletionService) HandleCompleteOrder(ctx context.Context, msg messaging.CompleteOrder) error {
	orderID, err := uuid.Parse(msg.OrderID)
	if err != nil {
		s.logger.Warn("dropping completion for malformed order id",
			zap.String("order_id", msg.OrderID),
			zap.Error(err),
		)
		return nil
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("dropping completion for unknown order",
				zap.String("order_id", msg.OrderID),
			)
			return nil
		}
		return err
	}

	if !o.IsProcessing() {
		s.logger.Info("order already finalized, completion is a no-op",
			zap.String("order_id", o.ID.String()),
			zap.String("status", o.Status.String()),
		)
		return nil
	}

	if err := o.Complete(); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	o.ClearDomainEvents()

	s.logger.Info("order completed",
		zap.String("order_id", o.ID.String()),
	)
	return nil
}

var _ messaging.CompleteOrderHandler = (*CompletionService)(nil)
