package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockReplicaProductRepository is a mock implementation of ReplicaProductRepository
type MockReplicaProductRepository struct {
	mock.Mock
}

func (m *MockReplicaProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ReplicaProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ReplicaProduct), args.Error(1)
}

func (m *MockReplicaProductRepository) Save(ctx context.Context, p *order.ReplicaProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockPublisher is a mock implementation of messaging.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msg messaging.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockPublisher) PublishAfter(ctx context.Context, msg messaging.Message, delay time.Duration) error {
	args := m.Called(ctx, msg, delay)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
