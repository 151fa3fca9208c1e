package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/microshop/backend/internal/messaging"
)

// dispatcher decodes payloads by routing key and invokes the typed handler
// bound to that key. Shared by every bus adapter so the JSON contract and
// the one-handler-per-queue rule live in exactly one place.
type dispatcher struct {
	mu     sync.RWMutex
	logger *zap.Logger

	orderPlaced     messaging.OrderPlacedHandler
	completeOrder   messaging.CompleteOrderHandler
	quantityUpdated messaging.ProductQuantityUpdatedHandler
	upserted        messaging.ProductUpsertedHandler
}

func newDispatcher(logger *zap.Logger) *dispatcher {
	return &dispatcher{logger: logger}
}

func (d *dispatcher) SubscribeOrderPlaced(h messaging.OrderPlacedHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orderPlaced = h
}

func (d *dispatcher) SubscribeCompleteOrder(h messaging.CompleteOrderHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.completeOrder = h
}

func (d *dispatcher) SubscribeProductQuantityUpdated(h messaging.ProductQuantityUpdatedHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quantityUpdated = h
}

func (d *dispatcher) SubscribeProductUpserted(h messaging.ProductUpsertedHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.upserted = h
}

// routingKeys returns the keys that currently have a handler bound
func (d *dispatcher) routingKeys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var keys []string
	if d.orderPlaced != nil {
		keys = append(keys, messaging.RoutingKeyOrderPlaced)
	}
	if d.completeOrder != nil {
		keys = append(keys, messaging.RoutingKeyOrderCompletion)
	}
	if d.quantityUpdated != nil {
		keys = append(keys, messaging.RoutingKeyProductQuantityUpdated)
	}
	if d.upserted != nil {
		keys = append(keys, messaging.RoutingKeyProductUpserted)
	}
	return keys
}

// dispatch decodes and hands one delivery to the bound handler.
// An unparseable payload or a missing handler is logged and dropped.
func (d *dispatcher) dispatch(ctx context.Context, routingKey string, payload []byte) error {
	d.mu.RLock()
	orderPlaced := d.orderPlaced
	completeOrder := d.completeOrder
	quantityUpdated := d.quantityUpdated
	upserted := d.upserted
	d.mu.RUnlock()

	switch routingKey {
	case messaging.RoutingKeyOrderPlaced:
		if orderPlaced == nil {
			return d.dropUnbound(routingKey)
		}
		var msg messaging.OrderPlaced
		if err := json.Unmarshal(payload, &msg); err != nil {
			return d.dropMalformed(routingKey, err)
		}
		return orderPlaced.HandleOrderPlaced(ctx, msg)

	case messaging.RoutingKeyOrderCompletion:
		if completeOrder == nil {
			return d.dropUnbound(routingKey)
		}
		var msg messaging.CompleteOrder
		if err := json.Unmarshal(payload, &msg); err != nil {
			return d.dropMalformed(routingKey, err)
		}
		return completeOrder.HandleCompleteOrder(ctx, msg)

	case messaging.RoutingKeyProductQuantityUpdated:
		if quantityUpdated == nil {
			return d.dropUnbound(routingKey)
		}
		var msg messaging.ProductQuantityUpdated
		if err := json.Unmarshal(payload, &msg); err != nil {
			return d.dropMalformed(routingKey, err)
		}
		return quantityUpdated.HandleProductQuantityUpdated(ctx, msg)

	case messaging.RoutingKeyProductUpserted:
		if upserted == nil {
			return d.dropUnbound(routingKey)
		}
		var msg messaging.ProductUpserted
		if err := json.Unmarshal(payload, &msg); err != nil {
			return d.dropMalformed(routingKey, err)
		}
		return upserted.HandleProductUpserted(ctx, msg)

	default:
		return fmt.Errorf("no route for routing key %q", routingKey)
	}
}

func (d *dispatcher) dropUnbound(routingKey string) error {
	d.logger.Warn("no handler bound for routing key, dropping message",
		zap.String("routing_key", routingKey),
	)
	return nil
}

func (d *dispatcher) dropMalformed(routingKey string, err error) error {
	d.logger.Warn("malformed message payload, dropping",
		zap.String("routing_key", routingKey),
		zap.Error(err),
	)
	return nil
}

// encode serializes a message for the wire
func encode(msg messaging.Message) ([]byte, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %w", msg.RoutingKey(), err)
	}
	return payload, nil
}
