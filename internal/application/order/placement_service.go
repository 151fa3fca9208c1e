package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// PlacementService coordinates order placement.
//
// Placement validates against the local product replica only, never against
// the Product service. The replica can be stale, so passing the pre-flight
// stock check does not guarantee the authoritative decrement will succeed;
// the order is committed and completes on schedule either way.
type PlacementService struct {
	orders    order.OrderRepository
	replicas  order.ReplicaProductRepository
	publisher messaging.Publisher
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(
	orders order.OrderRepository,
	replicas order.ReplicaProductRepository,
	publisher messaging.Publisher,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PlacementService {
	return &PlacementService{
		orders:    orders,
		replicas:  replicas,
		publisher: publisher,
		events:    events,
		logger:    logger,
	}
}

// PlaceOrder validates the request against the replica, persists the order
// in Processing status and publishes OrderPlaced. The order commit strictly
// precedes the publish; consumers observing OrderPlaced can rely on the
// order row existing.
func (s *PlacementService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if req.ProductID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID must be a valid UUID")
	}

	replica, err := s.replicas.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !replica.HasStockFor(req.QuantityOrdered) {
		return nil, shared.ErrInsufficientStock
	}

	o, err := order.NewOrder(req.CustomerName, req.QuantityOrdered, productID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, messaging.OrderPlaced{
		OrderID:         o.ID.String(),
		ProductID:       o.ProductID.String(),
		QuantityOrdered: o.QuantityOrdered,
	}); err != nil {
		// The order row is already committed. Failing the request here
		// would leave a Processing order the caller believes was rejected,
		// so log and return the placed order.
		s.logger.Error("failed to publish OrderPlaced",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, o.GetDomainEvents()...); err != nil {
			s.logger.Error("failed to publish domain events",
				zap.String("order_id", o.ID.String()),
				zap.Error(err),
			)
		}
		o.ClearDomainEvents()
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("product_id", o.ProductID.String()),
		zap.Int("quantity_ordered", o.QuantityOrdered),
	)

	return ToOrderResponse(o, replica), nil
}

// GetOrder returns an order by id together with its replica snapshot
func (s *PlacementService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	replica, err := s.replicas.FindByID(ctx, o.ProductID)
	if err != nil {
		// The replica can have been upserted after the order was placed
		// and is informational in reads; missing is not an error.
		replica = nil
	}
	return ToOrderResponse(o, replica), nil
}
