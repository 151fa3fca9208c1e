package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/product"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// InventoryService consumes OrderPlaced messages and applies the
// authoritative stock decrement.
//
// A decrement that cannot be applied, because the product is unknown or the
// stock is insufficient, is logged and dropped. The order that triggered it
// is not touched; orders complete on schedule regardless of the decrement
// outcome.
type InventoryService struct {
	products  product.ProductRepository
	publisher messaging.Publisher
	logger    *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(products product.ProductRepository, publisher messaging.Publisher, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// HandleOrderPlaced decrements authoritative stock for the placed order and
// publishes the resulting absolute quantity.
func (s *InventoryService) HandleOrderPlaced(ctx context.Context, msg messaging.OrderPlaced) error {
	productID, err := uuid.Parse(msg.ProductID)
	if err != nil {
		s.logger.Warn("dropping stock decrement with malformed product id",
			zap.String("order_id", msg.OrderID),
			zap.String("product_id", msg.ProductID),
			zap.Error(err),
		)
		return nil
	}

	remaining, err := s.products.DecrementQuantity(ctx, productID, msg.QuantityOrdered)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			s.logger.Warn("dropping stock decrement for unknown product",
				zap.String("order_id", msg.OrderID),
				zap.String("product_id", msg.ProductID),
			)
			return nil
		case errors.Is(err, shared.ErrInsufficientStock):
			s.logger.Warn("dropping stock decrement, insufficient stock",
				zap.String("order_id", msg.OrderID),
				zap.String("product_id", msg.ProductID),
				zap.Int("quantity_ordered", msg.QuantityOrdered),
			)
			return nil
		default:
			return err
		}
	}

	update := messaging.ProductQuantityUpdated{
		ProductID: msg.ProductID,
		Quantity:  remaining,
	}
	if err := s.publisher.Publish(ctx, update); err != nil {
		return err
	}

	s.logger.Info("stock decremented",
		zap.String("order_id", msg.OrderID),
		zap.String("product_id", msg.ProductID),
		zap.Int("quantity_ordered", msg.QuantityOrdered),
		zap.Int("remaining", remaining),
	)
	return nil
}

var _ messaging.OrderPlacedHandler = (*InventoryService)(nil)
