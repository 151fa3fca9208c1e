package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microshop/backend/internal/domain/shared"
)

// ReplicaProduct is the Order domain's read-only copy of a product.
//
// It is a deliberately distinct type from the Product service's
// authoritative aggregate: the two copies share no code and converge only
// through ProductUpserted / ProductQuantityUpdated messages. Local business
// logic never writes it; only the replica sync applies inbound snapshots.
// It may lag the authoritative copy by at least one message round-trip.
type ReplicaProduct struct {
	shared.BaseEntity
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ReplicaProduct) TableName() string {
	return "products"
}

// NewReplicaProduct creates a replica record from a full product snapshot
func NewReplicaProduct(id uuid.UUID, name string, price decimal.Decimal, quantity int) (*ReplicaProduct, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	now := time.Now()
	return &ReplicaProduct{
		BaseEntity: shared.BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:       name,
		Price:      price.Round(2),
		Quantity:   quantity,
	}, nil
}

// ApplySnapshot overwrites name, price and quantity from a ProductUpserted
// snapshot. Last writer wins by arrival order.
func (p *ReplicaProduct) ApplySnapshot(name string, price decimal.Decimal, quantity int) {
	p.Name = name
	p.Price = price.Round(2)
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
}

// ApplyQuantity overwrites only the quantity from a ProductQuantityUpdated
// message. The value is absolute, so re-applying the same message is a no-op.
func (p *ReplicaProduct) ApplyQuantity(quantity int) {
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
}

// HasStockFor reports whether the replica currently shows enough quantity
// for the requested amount. This is a non-authoritative pre-flight gate:
// the replica may be stale and the authoritative check can still fail later.
func (p *ReplicaProduct) HasStockFor(quantity int) bool {
	return quantity <= p.Quantity
}
