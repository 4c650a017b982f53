package engine

import (
	"context"

	"github.com/barkeep-app/search/internal/domain"
)

// SearchEngine defines the operations the indexing pipeline and the search
// facade need from a search backend. Implementations own the mapping from a
// collection name to a concrete, stage-qualified index.
type SearchEngine interface {
	// Index fully replaces the document at doc.ID in the collection's index.
	// Repeating the same call leaves the index in the same observable state.
	Index(ctx context.Context, collection string, doc *domain.CocktailDocument) error

	// Delete removes a document by ID. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, collection, id string) error

	// DeleteIndex destroys the collection's entire index. Safe to call when
	// the index does not exist. Used by the bulk reindexer before a rebuild.
	DeleteIndex(ctx context.Context, collection string) error

	// Search executes a search request and returns one page of matches
	// with an exact total count.
	Search(ctx context.Context, collection string, req *domain.SearchRequest) (*domain.SearchResult, error)
}
