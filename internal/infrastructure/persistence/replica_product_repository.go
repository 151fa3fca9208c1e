package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
)

// GormReplicaProductRepository implements order.ReplicaProductRepository
// using GORM. It backs the Order domain's product replica table.
type GormReplicaProductRepository struct {
	db *gorm.DB
}

// NewGormReplicaProductRepository creates a new GormReplicaProductRepository
func NewGormReplicaProductRepository(db *gorm.DB) *GormReplicaProductRepository {
	return &GormReplicaProductRepository{db: db}
}

// FindByID finds a replica product by its ID
func (r *GormReplicaProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ReplicaProduct, error) {
	var p order.ReplicaProduct
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save creates or updates a replica product
func (r *GormReplicaProductRepository) Save(ctx context.Context, p *order.ReplicaProduct) error {
	return r.db.WithContext(ctx).Save(p).Error
}

var _ order.ReplicaProductRepository = (*GormReplicaProductRepository)(nil)
