package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Consumer wraps a kafka-go reader bound to one consumer group. Offsets are
// committed only after the handler returns nil.
type Consumer struct {
	reader  *kafkago.Reader
	handler MessageHandler
	closed  bool
	mu      sync.RWMutex
}

// NewConsumer creates a consumer group reader for the configured brokers.
func NewConsumer(cfg config.KafkaConfig, topic, groupID string, handler MessageHandler) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafkago.FirstOffset,
		Logger:      kafkago.LoggerFunc(func(msg string, args ...any) {}),
	})

	return &Consumer{reader: reader, handler: handler}, nil
}

// Start consumes messages until the context is canceled. Handler failures
// are surfaced through the returned error only on cancellation; a failed
// message stays uncommitted for redelivery.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			time.Sleep(time.Second)
			continue
		}

		msg := convertMessage(kafkaMsg)
		if err := c.handler(ctx, msg); err != nil {
			continue
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
		}
	}
}

func convertMessage(kafkaMsg kafkago.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}

// Close releases the reader.
func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}
