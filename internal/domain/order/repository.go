package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders.
// Orders are written only by the placement coordinator (create) and the
// completion processor (status transition); there is no deletion path.
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error
}

// ReplicaProductRepository defines the persistence interface for the
// Order domain's product replica. Only the replica sync writes it.
type ReplicaProductRepository interface {
	// FindByID finds a replica product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReplicaProduct, error)
	// Save creates or updates a replica product
	Save(ctx context.Context, p *ReplicaProduct) error
}
