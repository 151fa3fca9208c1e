package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/domain/product"
	"github.com/microshop/backend/internal/domain/shared"
	"github.com/microshop/backend/internal/messaging"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
func intPtr(i int) *int                             { return &i }

func TestUpsertService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the product and publishes a full snapshot", func(t *testing.T) {
		products := new(MockProductRepository)
		publisher := new(MockPublisher)

		products.On("Save", ctx, mock.AnythingOfType("*product.Product")).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(msg messaging.Message) bool {
			snapshot, ok := msg.(messaging.ProductUpserted)
			return ok && snapshot.Name == "Widget" && snapshot.Quantity == 10 && snapshot.ID != ""
		})).Return(nil)

		svc := NewUpsertService(products, publisher, zap.NewNop())
		resp, err := svc.CreateProduct(ctx, CreateProductRequest{
			Name:     "Widget",
			Price:    decimalPtr(decimal.NewFromFloat(9.99)),
			Quantity: intPtr(10),
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "Widget", resp.Name)
		products.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("missing optional fields default to zero values", func(t *testing.T) {
		products := new(MockProductRepository)
		publisher := new(MockPublisher)

		products.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(msg messaging.Message) bool {
			snapshot, ok := msg.(messaging.ProductUpserted)
			return ok && snapshot.Price.IsZero() && snapshot.Quantity == 0
		})).Return(nil)

		svc := NewUpsertService(products, publisher, zap.NewNop())
		resp, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Widget"})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Quantity)
		assert.True(t, resp.Price.IsZero())
		publisher.AssertExpectations(t)
	})

	t.Run("rejects invalid input without publishing", func(t *testing.T) {
		products := new(MockProductRepository)
		publisher := new(MockPublisher)

		svc := NewUpsertService(products, publisher, zap.NewNop())
		_, err := svc.CreateProduct(ctx, CreateProductRequest{Name: ""})

		assert.Error(t, err)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestUpsertService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the product fields and publishes the new snapshot", func(t *testing.T) {
		products := new(MockProductRepository)
		publisher := new(MockPublisher)

		p, err := product.NewProduct("Widget", decimal.NewFromFloat(9.99), 10)
		require.NoError(t, err)

		products.On("FindByID", ctx, p.ID).Return(p, nil)
		products.On("Save", ctx, p).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(msg messaging.Message) bool {
			snapshot, ok := msg.(messaging.ProductUpserted)
			return ok && snapshot.ID == p.ID.String() && snapshot.Name == "Widget v2" && snapshot.Quantity == 3
		})).Return(nil)

		svc := NewUpsertService(products, publisher, zap.NewNop())
		resp, err := svc.UpdateProduct(ctx, p.ID, UpdateProductRequest{
			Name:     "Widget v2",
			Price:    decimalPtr(decimal.NewFromFloat(12.50)),
			Quantity: intPtr(3),
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget v2", resp.Name)
		assert.Equal(t, 3, resp.Quantity)
		publisher.AssertExpectations(t)
	})

	t.Run("returns ErrNotFound for an unknown product", func(t *testing.T) {
		products := new(MockProductRepository)
		products.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		svc := NewUpsertService(products, new(MockPublisher), zap.NewNop())
		_, err := svc.UpdateProduct(ctx, uuid.New(), UpdateProductRequest{Name: "Widget"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
