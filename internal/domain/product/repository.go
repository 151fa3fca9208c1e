package product

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for the authoritative
// product store. Written only by the upsert coordinator and the inventory
// decrement processor.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error
	// DecrementQuantity atomically subtracts amount from the product's
	// quantity if and only if enough stock is available, and returns the
	// remaining quantity. A single conditional UPDATE, so concurrent
	// decrements against the same row cannot lose updates.
	// Returns shared.ErrNotFound if the product does not exist and
	// shared.ErrInsufficientStock if quantity < amount.
	DecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (remaining int, err error)
}
