package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/microshop/backend/internal/domain/product"
	"github.com/microshop/backend/internal/domain/shared"
)

// GormProductRepository implements product.ProductRepository using GORM.
// It backs the authoritative product store in the Product service.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *product.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// DecrementQuantity subtracts amount from the product's quantity with a
// single conditional UPDATE, so concurrent decrements against the same row
// serialize in the database instead of racing read-modify-write in Go.
func (r *GormProductRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	var remaining int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&product.Product{}).
			Where("id = ? AND quantity >= ?", id, amount).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", amount))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Distinguish a missing row from insufficient stock.
			var count int64
			if err := tx.Model(&product.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrInsufficientStock
		}

		return tx.Model(&product.Product{}).
			Where("id = ?", id).
			Select("quantity").
			Scan(&remaining).Error
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

var _ product.ProductRepository = (*GormProductRepository)(nil)
