package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine"
	"github.com/barkeep-app/search/internal/indexer"
	"github.com/barkeep-app/search/internal/store"
)

// Defaults for the reindex batch loop. The pause between batches bounds
// load on both the primary store and the search engine.
const (
	DefaultReindexBatchSize = 10
	DefaultReindexPause     = time.Second
)

// ReindexResult reports the outcome of a full reindex run.
type ReindexResult struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// ReindexOption customizes the reindexer, mainly for tests.
type ReindexOption func(*Reindexer)

// WithBatchSize overrides the scan batch size.
func WithBatchSize(n int) ReindexOption {
	return func(r *Reindexer) { r.batchSize = n }
}

// WithBatchPause overrides the pause between batches.
func WithBatchPause(d time.Duration) ReindexOption {
	return func(r *Reindexer) { r.pause = d }
}

// Reindexer rebuilds the entire search index from the primary store. It is
// an operator-invoked recovery tool, not a hot path: the index is dropped
// outright first, accepting a brief availability gap.
type Reindexer struct {
	cocktails store.CocktailStore
	indexer   *indexer.Indexer
	engine    engine.SearchEngine
	batchSize int
	pause     time.Duration
	logger    *slog.Logger
}

// NewReindexer creates a reindexer over the cocktail store and the
// indexing pipeline.
func NewReindexer(cocktails store.CocktailStore, ix *indexer.Indexer, eng engine.SearchEngine, logger *slog.Logger, opts ...ReindexOption) *Reindexer {
	r := &Reindexer{
		cocktails: cocktails,
		indexer:   ix,
		engine:    eng,
		batchSize: DefaultReindexBatchSize,
		pause:     DefaultReindexPause,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReindexAll drops the index and rebuilds it by cursor-paginating the full
// cocktail collection through the resolve, project, upsert pipeline.
//
// A failure on a single document increments the error counter and the run
// continues. A failed batch fetch aborts the whole run: per-document
// failure is tolerable, store-level failure is not.
func (r *Reindexer) ReindexAll(ctx context.Context) (*ReindexResult, error) {
	start := time.Now()

	if err := r.engine.DeleteIndex(ctx, domain.CollectionCocktails); err != nil {
		return nil, fmt.Errorf("reindex: drop index: %w", err)
	}

	result := &ReindexResult{}
	var cursor *store.Cursor

	for {
		page, err := r.cocktails.List(ctx, r.batchSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("reindex: fetch batch: %w", err)
		}

		for i := range page.Cocktails {
			cocktail := &page.Cocktails[i]
			if err := r.indexer.Sync(ctx, cocktail); err != nil {
				result.Errors++
				r.logger.ErrorContext(ctx, "reindex: cocktail failed",
					slog.String("cocktail_id", cocktail.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			result.Processed++
		}

		if !page.HasMore {
			break
		}
		cursor = page.Next

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("reindex: %w", ctx.Err())
		case <-time.After(r.pause):
		}
	}

	r.logger.InfoContext(ctx, "reindex completed",
		slog.Int("processed", result.Processed),
		slog.Int("errors", result.Errors),
		slog.Duration("took", time.Since(start)),
	)
	return result, nil
}
