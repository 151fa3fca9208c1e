package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microshop/backend/internal/domain/shared"
)

// Product is the authoritative product aggregate, owned by the Product
// service. It is the single source of truth for stock: quantity is mutated
// subtractively by the inventory decrement processor and replaced wholesale
// by upserts. The Order service holds a separate, structurally identical
// replica type that this package knows nothing about.
type Product struct {
	shared.BaseAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, quantity int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price.Round(2),
		Quantity:          quantity,
	}, nil
}

// Update replaces the product's fields with the supplied values
func (p *Product) Update(name string, price decimal.Decimal, quantity int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	p.Name = name
	p.Price = price.Round(2)
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Decrement subtracts the given amount from the available quantity.
// Fails with ErrInsufficientStock when the amount exceeds what is on hand.
func (p *Product) Decrement(amount int) error {
	if amount <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement amount must be positive")
	}
	if p.Quantity < amount {
		return shared.ErrInsufficientStock
	}

	p.Quantity -= amount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// HasIdentifier reports whether the product has been assigned an ID.
// Identifiers are assigned at creation, so a missing one is a defect.
func (p *Product) HasIdentifier() bool {
	return p.ID != uuid.Nil
}
