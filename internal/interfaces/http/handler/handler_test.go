package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/product"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory repository fakes. Handlers go through the full application
// service, so these stand in for storage only.

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

type stubReplicaRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*order.ReplicaProduct
}

func newStubReplicaRepo() *stubReplicaRepo {
	return &stubReplicaRepo{products: make(map[uuid.UUID]*order.ReplicaProduct)}
}

func (r *stubReplicaRepo) FindByID(_ context.Context, id uuid.UUID) (*order.ReplicaProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *stubReplicaRepo) Save(_ context.Context, p *order.ReplicaProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*product.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*product.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DecrementQuantity(_ context.Context, id uuid.UUID, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, shared.ErrNotFound
	}
	if p.Quantity < amount {
		return 0, shared.ErrInsufficientStock
	}
	p.Quantity -= amount
	return p.Quantity, nil
}

// noopPublisher swallows published messages
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, messaging.Message) error { return nil }
func (noopPublisher) PublishAfter(context.Context, messaging.Message, time.Duration) error {
	return nil
}
