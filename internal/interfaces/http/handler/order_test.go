package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderapp "github.com/microshop/backend/internal/application/order"
	"github.com/microshop/backend/internal/domain/order"
	"github.com/microshop/backend/internal/interfaces/http/dto"
)

func newOrderTestRouter(t *testing.T) (*gin.Engine, *stubOrderRepo, *stubReplicaRepo) {
	t.Helper()
	orders := newStubOrderRepo()
	replicas := newStubReplicaRepo()

	svc := orderapp.NewPlacementService(orders, replicas, noopPublisher{}, nil, zap.NewNop())
	h := NewOrderHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r, orders, replicas
}

func seedReplica(t *testing.T, replicas *stubReplicaRepo, quantity int) uuid.UUID {
	t.Helper()
	p, err := order.NewReplicaProduct(uuid.New(), "Widget", decimal.NewFromFloat(9.99), quantity)
	require.NoError(t, err)
	replicas.products[p.ID] = p
	return p.ID
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("places an order", func(t *testing.T) {
		r, _, replicas := newOrderTestRouter(t)
		productID := seedReplica(t, replicas, 10)

		w := postJSON(r, "/api/v1/orders", gin.H{
			"customerName":    "Alice",
			"quantityOrdered": 3,
			"productId":       productID.String(),
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("rejects a body without productId", func(t *testing.T) {
		r, _, _ := newOrderTestRouter(t)

		w := postJSON(r, "/api/v1/orders", gin.H{
			"customerName":    "Alice",
			"quantityOrdered": 3,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		r, _, _ := newOrderTestRouter(t)

		w := postJSON(r, "/api/v1/orders", gin.H{
			"customerName":    "Alice",
			"quantityOrdered": 3,
			"productId":       uuid.New().String(),
		})

		require.Equal(t, http.StatusNotFound, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("returns 422 when the replica shows insufficient stock", func(t *testing.T) {
		r, _, replicas := newOrderTestRouter(t)
		productID := seedReplica(t, replicas, 1)

		w := postJSON(r, "/api/v1/orders", gin.H{
			"customerName":    "Alice",
			"quantityOrdered": 3,
			"productId":       productID.String(),
		})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("returns an existing order", func(t *testing.T) {
		r, orders, replicas := newOrderTestRouter(t)
		productID := seedReplica(t, replicas, 10)

		o, err := order.NewOrder("Alice", 2, productID)
		require.NoError(t, err)
		orders.orders[o.ID] = o

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+o.ID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a malformed order id", func(t *testing.T) {
		r, _, _ := newOrderTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown order", func(t *testing.T) {
		r, _, _ := newOrderTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
