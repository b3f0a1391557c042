package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// MessageWriter is the subset of kafka.Writer the producer needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer handles publishing watchlist events to Kafka
type Producer struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return NewProducerWithWriter(writer, topic)
}

// NewProducerWithWriter creates a producer over an existing writer
func NewProducerWithWriter(writer MessageWriter, topic string) *Producer {
	return &Producer{
		writer: writer,
		topic:  topic,
		now:    time.Now,
	}
}

// PublishWatchlistAdded publishes a watchlist added event
func (p *Producer) PublishWatchlistAdded(ctx context.Context, stock *models.Stock) error {
	event := models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistAdded,
		Stock:     stock,
		Symbol:    stock.Symbol,
		Timestamp: p.now(),
	}
	return p.publish(ctx, stock.Symbol, event)
}

// PublishWatchlistRemoved publishes a watchlist removed event
func (p *Producer) PublishWatchlistRemoved(ctx context.Context, symbol string) error {
	event := models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistRemoved,
		Symbol:    symbol,
		Timestamp: p.now(),
	}
	return p.publish(ctx, symbol, event)
}

// Events for one symbol share a key so they land on one partition in order
func (p *Producer) publish(ctx context.Context, key string, event models.WatchlistEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
