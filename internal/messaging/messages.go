// Package messaging defines the integration message contracts shared by the
// Order and Product services and the ports used to publish and consume them.
// These messages are the only coupling between the two domains.
package messaging

import "github.com/shopspring/decimal"

// Routing keys, one queue per key on the broker side
const (
	RoutingKeyOrderPlaced            = "order.placed"
	RoutingKeyOrderCompletion        = "order.completion"
	RoutingKeyProductQuantityUpdated = "product.quantity.updated"
	RoutingKeyProductUpserted        = "product.upserted"
)

// Message is implemented by every integration message
type Message interface {
	RoutingKey() string
}

// OrderPlaced is published by the Order service after an order has been
// committed, and consumed by the Product service to decrement stock.
type OrderPlaced struct {
	OrderID         string `json:"orderId"`
	ProductID       string `json:"productId"`
	QuantityOrdered int    `json:"quantityOrdered"`
}

func (OrderPlaced) RoutingKey() string { return RoutingKeyOrderPlaced }

// CompleteOrder is published by the Order service with a visibility delay
// and consumed by the Order service itself to finalize the order.
type CompleteOrder struct {
	OrderID string `json:"orderId"`
}

func (CompleteOrder) RoutingKey() string { return RoutingKeyOrderCompletion }

// ProductQuantityUpdated carries the absolute post-decrement quantity of the
// authoritative product copy. Absolute, not a delta, so re-applying it on
// the replica is naturally idempotent.
type ProductQuantityUpdated struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (ProductQuantityUpdated) RoutingKey() string { return RoutingKeyProductQuantityUpdated }

// ProductUpserted carries a full snapshot of a product after a create or
// update in the Product service. Missing optional fields are zero-valued,
// never null.
type ProductUpserted struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (ProductUpserted) RoutingKey() string { return RoutingKeyProductUpserted }
