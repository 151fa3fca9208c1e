package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microshop/backend/internal/domain/product"
)

// CreateProductRequest represents a request to create a new product.
// Price and quantity are optional and default to zero.
type CreateProductRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

// UpdateProductRequest represents a request to replace a product's fields
type UpdateProductRequest struct {
	Name     string           `json:"name" binding:"required,min=1,max=200"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// ToProductResponse converts a product aggregate to a response DTO
func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func priceOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func quantityOrZero(q *int) int {
	if q == nil {
		return 0
	}
	return *q
}
