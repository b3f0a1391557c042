package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// EventRepository records consumed events for the audit trail
type EventRepository interface {
	RecordWatchlistEvent(ctx context.Context, e *models.WatchlistEvent) error
	WatchlistEventExists(ctx context.Context, id string) (bool, error)
}

// EventHandler receives each new watchlist event
type EventHandler func(event models.WatchlistEvent)

// Consumer reads watchlist events and forwards them to a handler. Every
// dashboard instance runs one, so changes made on any instance reach all
// connected clients.
type Consumer struct {
	reader  *kafka.Reader
	repo    EventRepository
	handler EventHandler
	logger  *slog.Logger
}

// NewConsumer creates a new Kafka consumer for watchlist events. repo may be nil.
func NewConsumer(brokers []string, topic, groupID string, repo EventRepository, handler EventHandler, logger *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return newConsumer(reader, repo, handler, logger)
}

func newConsumer(reader *kafka.Reader, repo EventRepository, handler EventHandler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		reader:  reader,
		repo:    repo,
		handler: handler,
		logger:  logger,
	}
}

// Start consumes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer", "topic", c.reader.Config().Topic)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				c.logger.Error("error reading message", "error", err)
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error("error processing message", "error", err,
					"partition", msg.Partition, "offset", msg.Offset)
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	c.logger.Debug("received message",
		"partition", msg.Partition, "offset", msg.Offset, "key", string(msg.Key))

	var event models.WatchlistEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal watchlist event: %w", err)
	}

	if event.EventType != models.EventWatchlistAdded && event.EventType != models.EventWatchlistRemoved {
		c.logger.Debug("ignoring event type", "event_type", event.EventType)
		return nil
	}
	if event.Symbol == "" {
		return fmt.Errorf("watchlist event %s has no symbol", event.ID)
	}

	if c.repo != nil && event.ID != "" {
		exists, err := c.repo.WatchlistEventExists(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("failed to check for duplicate event: %w", err)
		}
		if exists {
			c.logger.Debug("event already processed, skipping", "id", event.ID)
			return nil
		}
		if err := c.repo.RecordWatchlistEvent(ctx, &event); err != nil {
			return fmt.Errorf("failed to record event: %w", err)
		}
	}

	if c.handler != nil {
		c.handler(event)
	}
	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
