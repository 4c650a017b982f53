package store

import (
	"context"
	"time"

	"github.com/barkeep-app/search/internal/domain"
)

// Cursor identifies the last-seen document in a paginated full scan.
// Ordering is creation time ascending with document ID as tiebreak, so a
// scan visits each document once even as the collection grows.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// CocktailPage is one batch of a cursor-paginated scan over cocktails.
type CocktailPage struct {
	Cocktails []domain.Cocktail
	HasMore   bool
	Next      *Cursor
}

// CocktailStore reads cocktails from the primary store.
type CocktailStore interface {
	// GetByID returns the cocktail with the given ID.
	GetByID(ctx context.Context, id string) (*domain.Cocktail, error)

	// List returns up to batchSize cocktails after the given cursor,
	// ordered by creation time ascending. A nil cursor starts from the
	// beginning.
	List(ctx context.Context, batchSize int, after *Cursor) (*CocktailPage, error)
}

// IngredientStore bulk-reads ingredients from the primary store.
// Unknown IDs are omitted from the result, not reported as errors.
type IngredientStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Ingredient, error)
}

// EquipmentStore bulk-reads equipment from the primary store.
// Unknown IDs are omitted from the result, not reported as errors.
type EquipmentStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error)
}
