package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/product"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// UpsertService coordinates authoritative product writes.
//
// Every successful create or update publishes a full ProductUpserted
// snapshot so downstream replicas converge on the complete current state,
// not just the changed fields. The commit strictly precedes the publish.
type UpsertService struct {
	products  product.ProductRepository
	publisher messaging.Publisher
	logger    *zap.Logger
}

// NewUpsertService creates a new UpsertService
func NewUpsertService(products product.ProductRepository, publisher messaging.Publisher, logger *zap.Logger) *UpsertService {
	return &UpsertService{
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateProduct persists a new product and publishes its snapshot
func (s *UpsertService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := product.NewProduct(req.Name, priceOrZero(req.Price), quantityOrZero(req.Quantity))
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.publishSnapshot(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	return ToProductResponse(p), nil
}

// UpdateProduct replaces the product's fields and publishes its snapshot
func (s *UpsertService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, priceOrZero(req.Price), quantityOrZero(req.Quantity)); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.publishSnapshot(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	return ToProductResponse(p), nil
}

// GetProduct returns a product by id
func (s *UpsertService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// publishSnapshot publishes the full current state of the product.
// A product without an identifier cannot be announced; that is a defect in
// the caller, not a recoverable condition.
func (s *UpsertService) publishSnapshot(ctx context.Context, p *product.Product) error {
	if !p.HasIdentifier() {
		return fmt.Errorf("%w: product has no identifier", shared.ErrInvariantViolation)
	}

	msg := messaging.ProductUpserted{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish product snapshot: %w", err)
	}
	return nil
}
