package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine"
	"github.com/barkeep-app/search/internal/projector"
	"github.com/barkeep-app/search/internal/relation"
)

// Indexer runs the resolve, project, upsert pipeline for one cocktail.
// Both the change-event reactor and the bulk reindexer feed through it, so
// event-driven and batch indexing always produce the same document shape.
type Indexer struct {
	resolver *relation.Resolver
	engine   engine.SearchEngine
	logger   *slog.Logger
}

// New creates an indexer over the given resolver and search engine.
func New(resolver *relation.Resolver, eng engine.SearchEngine, logger *slog.Logger) *Indexer {
	return &Indexer{
		resolver: resolver,
		engine:   eng,
		logger:   logger,
	}
}

// Sync projects the cocktail with its current relations and fully replaces
// its search document. Ingredient and equipment references resolve
// concurrently; they are independent reads.
func (ix *Indexer) Sync(ctx context.Context, cocktail *domain.Cocktail) error {
	var (
		ingredients []domain.Ingredient
		equipments  []domain.Equipment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ingredients, err = ix.resolver.Ingredients(gctx, cocktail.Ingredients)
		return err
	})
	g.Go(func() error {
		var err error
		equipments, err = ix.resolver.Equipments(gctx, cocktail.Equipments)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("resolve relations for %s: %w", cocktail.ID, err)
	}

	doc := projector.Project(cocktail, ingredients, equipments)
	if err := ix.engine.Index(ctx, domain.CollectionCocktails, doc); err != nil {
		return fmt.Errorf("index cocktail %s: %w", cocktail.ID, err)
	}

	ix.logger.DebugContext(ctx, "cocktail synced to index",
		slog.String("cocktail_id", cocktail.ID),
		slog.Int("ingredients", len(doc.Ingredients)),
		slog.Int("equipments", len(doc.Equipments)),
	)
	return nil
}

// Remove deletes the cocktail's search document. Unknown IDs are a no-op.
func (ix *Indexer) Remove(ctx context.Context, id string) error {
	if err := ix.engine.Delete(ctx, domain.CollectionCocktails, id); err != nil {
		return fmt.Errorf("remove cocktail %s from index: %w", id, err)
	}

	ix.logger.DebugContext(ctx, "cocktail removed from index",
		slog.String("cocktail_id", id),
	)
	return nil
}
