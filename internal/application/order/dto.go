package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/microshop/backend/internal/domain/order"
)

// PlaceOrderRequest represents a request to place a new order
type PlaceOrderRequest struct {
	CustomerName    string `json:"customerName" binding:"required,min=1,max=200"`
	QuantityOrdered int    `json:"quantityOrdered" binding:"required,gt=0"`
	ProductID       string `json:"productId" binding:"required"`
}

// ProductSnapshotResponse is the replica product as seen at order time
type ProductSnapshotResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	CustomerName    string                   `json:"customerName"`
	QuantityOrdered int                      `json:"quantityOrdered"`
	Status          string                   `json:"status"`
	Product         *ProductSnapshotResponse `json:"product,omitempty"`
	CreatedAt       string                   `json:"createdAt"`
	UpdatedAt       string                   `json:"updatedAt"`
}

// ToOrderResponse converts an order and an optional replica snapshot to a response DTO
func ToOrderResponse(o *order.Order, p *order.ReplicaProduct) *OrderResponse {
	resp := &OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		QuantityOrdered: o.QuantityOrdered,
		Status:          o.Status.String(),
		CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p != nil {
		resp.Product = &ProductSnapshotResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		}
	}
	return resp
}
