package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// eventRecorder stores watchlist events for the audit trail
type eventRecorder interface {
	RecordWatchlistEvent(ctx context.Context, e *models.WatchlistEvent) error
}

// broadcaster fans events out to live clients
type broadcaster interface {
	Broadcast(event models.WatchlistEvent)
}

// auditedPublisher records each event and then broadcasts it. It stands in for
// the Kafka consumer's audit step when Kafka is off.
type auditedPublisher struct {
	repo eventRecorder
	hub  broadcaster
	now  func() time.Time
}

func newAuditedPublisher(repo eventRecorder, hub broadcaster) *auditedPublisher {
	return &auditedPublisher{repo: repo, hub: hub, now: time.Now}
}

// PublishWatchlistAdded records and broadcasts an added event
func (p *auditedPublisher) PublishWatchlistAdded(ctx context.Context, stock *models.Stock) error {
	return p.publish(ctx, models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistAdded,
		Stock:     stock,
		Symbol:    stock.Symbol,
		Timestamp: p.now(),
	})
}

// PublishWatchlistRemoved records and broadcasts a removed event
func (p *auditedPublisher) PublishWatchlistRemoved(ctx context.Context, symbol string) error {
	return p.publish(ctx, models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistRemoved,
		Symbol:    symbol,
		Timestamp: p.now(),
	})
}

// publish broadcasts even when recording fails
func (p *auditedPublisher) publish(ctx context.Context, event models.WatchlistEvent) error {
	err := p.repo.RecordWatchlistEvent(ctx, &event)
	p.hub.Broadcast(event)
	if err != nil {
		return fmt.Errorf("failed to record watchlist event: %w", err)
	}
	return nil
}
