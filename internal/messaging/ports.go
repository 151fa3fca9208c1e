package messaging

import (
	"context"
	"time"
)

// Publisher publishes integration messages to the broker.
//
// Delivery is at-least-once: consumers must tolerate duplicates and must not
// depend on arrival order across routing keys.
type Publisher interface {
	// Publish sends a message on the queue bound to its routing key.
	Publish(ctx context.Context, msg Message) error
	// PublishAfter sends a message that only becomes visible to consumers
	// after the given delay.
	PublishAfter(ctx context.Context, msg Message, delay time.Duration) error
}

// One strongly-typed handler interface per message shape. A consumer binds
// exactly one handler to each routing key it subscribes to; there is no
// generic handle-anything entry point.

// OrderPlacedHandler consumes OrderPlaced messages
type OrderPlacedHandler interface {
	HandleOrderPlaced(ctx context.Context, msg OrderPlaced) error
}

// CompleteOrderHandler consumes CompleteOrder messages
type CompleteOrderHandler interface {
	HandleCompleteOrder(ctx context.Context, msg CompleteOrder) error
}

// ProductQuantityUpdatedHandler consumes ProductQuantityUpdated messages
type ProductQuantityUpdatedHandler interface {
	HandleProductQuantityUpdated(ctx context.Context, msg ProductQuantityUpdated) error
}

// ProductUpsertedHandler consumes ProductUpserted messages
type ProductUpsertedHandler interface {
	HandleProductUpserted(ctx context.Context, msg ProductUpserted) error
}

// Subscriber wires typed handlers onto broker queues. Implementations run
// one delivery at a time per handler; multiple subscriber instances bound
// to the same queue may run concurrently.
type Subscriber interface {
	SubscribeOrderPlaced(h OrderPlacedHandler)
	SubscribeCompleteOrder(h CompleteOrderHandler)
	SubscribeProductQuantityUpdated(h ProductQuantityUpdatedHandler)
	SubscribeProductUpserted(h ProductUpsertedHandler)
}

// Bus is a broker connection that can both publish and subscribe
type Bus interface {
	Publisher
	Subscriber
	// Start begins delivering messages to subscribed handlers
	Start(ctx context.Context) error
	// Stop drains in-flight deliveries and shuts the bus down
	Stop(ctx context.Context) error
}
