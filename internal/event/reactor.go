package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/indexer"
	pkgkafka "github.com/barkeep-app/search/pkg/kafka"
)

// Kafka topics and event types for cocktail mutations in the primary store.
var (
	TopicCocktailCreated = pkgkafka.Topic("cocktail", "created")
	TopicCocktailUpdated = pkgkafka.Topic("cocktail", "updated")
	TopicCocktailDeleted = pkgkafka.Topic("cocktail", "deleted")
)

// Topics lists every topic the reactor subscribes to.
func Topics() []string {
	return []string{TopicCocktailCreated, TopicCocktailUpdated, TopicCocktailDeleted}
}

// ChangeData carries the before/after snapshots of a cocktail mutation.
// A created event has only After, a deleted event only Before, an update
// both. The reactor keys off the event type; snapshots supply the data.
type ChangeData struct {
	Before *domain.Cocktail `json:"before,omitempty"`
	After  *domain.Cocktail `json:"after,omitempty"`
}

// Reactor consumes cocktail mutation events and keeps the search index in
// step with the primary store. It holds no retry logic of its own: the
// at-least-once delivery of the event stream is the retry mechanism, and
// the full-replace upsert makes reprocessing an event harmless.
type Reactor struct {
	indexer *indexer.Indexer
	logger  *slog.Logger
}

// NewReactor creates a reactor over the indexing pipeline.
func NewReactor(ix *indexer.Indexer, logger *slog.Logger) *Reactor {
	return &Reactor{
		indexer: ix,
		logger:  logger,
	}
}

// Handle processes a Kafka event based on its type.
func (r *Reactor) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicCocktailCreated, TopicCocktailUpdated:
		return r.handleUpserted(ctx, event)
	case TopicCocktailDeleted:
		return r.handleDeleted(ctx, event)
	default:
		r.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleUpserted re-projects and upserts the cocktail from the after snapshot.
func (r *Reactor) handleUpserted(ctx context.Context, event *pkgkafka.Event) error {
	var data ChangeData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if data.After == nil {
		return fmt.Errorf("%s event %s has no after snapshot", event.EventType, event.EventID)
	}

	if err := r.indexer.Sync(ctx, data.After); err != nil {
		return fmt.Errorf("sync cocktail from %s event: %w", event.EventType, err)
	}

	r.logger.InfoContext(ctx, "cocktail indexed from change event",
		slog.String("cocktail_id", data.After.ID),
		slog.String("event_type", event.EventType),
	)
	return nil
}

// handleDeleted removes the cocktail named by the before snapshot.
func (r *Reactor) handleDeleted(ctx context.Context, event *pkgkafka.Event) error {
	var data ChangeData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal cocktail.deleted data: %w", err)
	}
	if data.Before == nil {
		return fmt.Errorf("cocktail.deleted event %s has no before snapshot", event.EventID)
	}

	if err := r.indexer.Remove(ctx, data.Before.ID); err != nil {
		return fmt.Errorf("remove cocktail from deleted event: %w", err)
	}

	r.logger.InfoContext(ctx, "cocktail removed from index",
		slog.String("cocktail_id", data.Before.ID),
	)
	return nil
}
