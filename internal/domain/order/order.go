package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/microshop/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that admit no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The only transitions are Processing→Completed and Processing→Cancelled;
// nothing in the modeled flow ever cancels an order, the state is reserved.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s != OrderStatusProcessing {
		return false
	}
	return target == OrderStatusCompleted || target == OrderStatusCancelled
}

// Order is the aggregate root for a customer order.
//
// An order is created in Processing and is mutated exactly once, by the
// completion processor. There is no deletion path.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName    string      `gorm:"type:varchar(200);not null"`
	QuantityOrdered int         `gorm:"not null"`
	ProductID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'PROCESSING'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in Processing status
func NewOrder(customerName string, quantityOrdered int, productID uuid.UUID) (*Order, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(customerName) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if quantityOrdered <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity ordered must be positive")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		QuantityOrdered:   quantityOrdered,
		ProductID:         productID,
		Status:            OrderStatusProcessing,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// Complete transitions the order from Processing to Completed
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return fmt.Errorf("%w: order in status %s cannot be completed", shared.ErrInvalidState, o.Status)
	}

	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// IsProcessing returns true while the order awaits completion
func (o *Order) IsProcessing() bool {
	return o.Status == OrderStatusProcessing
}

// IsCompleted returns true once the order reached its terminal Completed state
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
