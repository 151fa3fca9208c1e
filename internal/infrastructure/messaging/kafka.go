package messaging

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/microshop/backend/internal/infrastructure/scheduler"
	"github.com/microshop/backend/internal/messaging"
)

// KafkaBus is the broker adapter for cross-service deployment. Each routing
// key maps to a topic of the same name; one consumer-group reader per bound
// routing key delivers messages to the typed handler.
//
// Kafka has no native per-message visibility delay, so PublishAfter holds
// the message back with the scheduler and writes it once the delay has
// elapsed. The delay is lost if this process dies before publishing.
type KafkaBus struct {
	*dispatcher
	brokers []string
	groupID string
	writer  *kafka.Writer
	sched   *scheduler.DelayScheduler
	logger  *zap.Logger

	mu      sync.Mutex
	readers []*kafka.Reader
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewKafkaBus creates a Kafka-backed bus
func NewKafkaBus(brokers []string, groupID string, sched *scheduler.DelayScheduler, logger *zap.Logger) *KafkaBus {
	return &KafkaBus{
		dispatcher: newDispatcher(logger),
		brokers:    brokers,
		groupID:    groupID,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		sched:  sched,
		logger: logger,
	}
}

// Publish writes the message to the topic named after its routing key.
// The aggregate id is not available here, so ordering per entity relies on
// the topic having a single partition, which matches the one-queue-per-
// routing-key broker model.
func (b *KafkaBus) Publish(ctx context.Context, msg messaging.Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}

	return b.writer.WriteMessages(ctx, kafka.Message{
		Topic: msg.RoutingKey(),
		Value: payload,
	})
}

// PublishAfter holds the message back and publishes once the delay elapses
func (b *KafkaBus) PublishAfter(_ context.Context, msg messaging.Message, delay time.Duration) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}

	routingKey := msg.RoutingKey()
	b.sched.Schedule(delay, func(ctx context.Context) {
		err := b.writer.WriteMessages(ctx, kafka.Message{
			Topic: routingKey,
			Value: payload,
		})
		if err != nil {
			b.logger.Error("delayed publish failed",
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
		}
	})
	return nil
}

// Start launches one read loop per routing key that has a handler bound
func (b *KafkaBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return errors.New("kafka bus already started")
	}

	ctx, b.cancel = context.WithCancel(ctx)

	for _, routingKey := range b.routingKeys() {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: b.brokers,
			GroupID: b.groupID,
			Topic:   routingKey,
		})
		b.readers = append(b.readers, reader)

		b.wg.Add(1)
		go b.readLoop(ctx, reader, routingKey)
	}

	b.logger.Info("kafka bus started",
		zap.Strings("brokers", b.brokers),
		zap.String("group_id", b.groupID),
	)
	return nil
}

// Stop cancels the read loops and closes readers and writer
func (b *KafkaBus) Stop(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.wg.Wait()

	var errs []error
	for _, reader := range b.readers {
		if err := reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.readers = nil

	if err := b.writer.Close(); err != nil {
		errs = append(errs, err)
	}

	b.logger.Info("kafka bus stopped")
	return errors.Join(errs...)
}

func (b *KafkaBus) readLoop(ctx context.Context, reader *kafka.Reader, routingKey string) {
	defer b.wg.Done()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			b.logger.Error("error reading from kafka",
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
			continue
		}

		if err := b.dispatch(ctx, routingKey, m.Value); err != nil {
			// Log and move on: the offset is already committed, failed
			// deliveries are not retried at the application level.
			b.logger.Error("message handler failed",
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
		}
	}
}

var _ messaging.Bus = (*KafkaBus)(nil)
