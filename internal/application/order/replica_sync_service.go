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

// ReplicaSyncService keeps the Order domain's product replica converging
// toward the authoritative copy by applying inbound product messages.
//
// ProductUpserted is find-or-create: a snapshot for an unknown product seeds
// the replica. ProductQuantityUpdated is find-or-ignore: a quantity update
// for an unknown product is dropped, because the full snapshot that creates
// the row travels on a different queue and may arrive later.
type ReplicaSyncService struct {
	replicas order.ReplicaProductRepository
	logger   *zap.Logger
}

// NewReplicaSyncService creates a new ReplicaSyncService
func NewReplicaSyncService(replicas order.ReplicaProductRepository, logger *zap.Logger) *ReplicaSyncService {
	return &ReplicaSyncService{
		replicas: replicas,
		logger:   logger,
	}
}

// HandleProductQuantityUpdated overwrites the replica's quantity with the
// absolute value from the message. Unknown products are dropped.
func (s *ReplicaSyncService) HandleProductQuantityUpdated(ctx context.Context, msg messaging.ProductQuantityUpdated) error {
	productID, err := uuid.Parse(msg.ProductID)
	if err != nil {
		s.logger.Warn("dropping quantity update with malformed product id",
			zap.String("product_id", msg.ProductID),
			zap.Error(err),
		)
		return nil
	}

	replica, err := s.replicas.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("dropping quantity update for unknown replica product",
				zap.String("product_id", msg.ProductID),
			)
			return nil
		}
		return err
	}

	replica.ApplyQuantity(msg.Quantity)
	if err := s.replicas.Save(ctx, replica); err != nil {
		return err
	}

	s.logger.Info("replica quantity updated",
		zap.String("product_id", msg.ProductID),
		zap.Int("quantity", msg.Quantity),
	)
	return nil
}

// HandleProductUpserted applies a full product snapshot to the replica,
// creating the row when the product is not known yet.
func (s *ReplicaSyncService) HandleProductUpserted(ctx context.Context, msg messaging.ProductUpserted) error {
	productID, err := uuid.Parse(msg.ID)
	if err != nil {
		s.logger.Warn("dropping product snapshot with malformed id",
			zap.String("product_id", msg.ID),
			zap.Error(err),
		)
		return nil
	}

	replica, err := s.replicas.FindByID(ctx, productID)
	switch {
	case err == nil:
		replica.ApplySnapshot(msg.Name, msg.Price, msg.Quantity)
	case errors.Is(err, shared.ErrNotFound):
		replica, err = order.NewReplicaProduct(productID, msg.Name, msg.Price, msg.Quantity)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := s.replicas.Save(ctx, replica); err != nil {
		return err
	}

	s.logger.Info("replica product synced",
		zap.String("product_id", msg.ID),
		zap.String("name", msg.Name),
		zap.Int("quantity", msg.Quantity),
	)
	return nil
}

var (
	_ messaging.ProductQuantityUpdatedHandler = (*ReplicaSyncService)(nil)
	_ messaging.ProductUpsertedHandler        = (*ReplicaSyncService)(nil)
)
