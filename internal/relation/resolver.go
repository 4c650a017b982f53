package relation

import (
	"context"
	"strings"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/store"
)

// Resolver turns a cocktail's raw cross-reference strings into the current
// related documents. References arrive either as path-like strings
// ("ingredients/vodka") or bare IDs; blanks are dropped and IDs that no
// longer exist are silently omitted.
type Resolver struct {
	ingredients store.IngredientStore
	equipments  store.EquipmentStore
}

// NewResolver creates a resolver over the two relation stores.
func NewResolver(ingredients store.IngredientStore, equipments store.EquipmentStore) *Resolver {
	return &Resolver{
		ingredients: ingredients,
		equipments:  equipments,
	}
}

// Ingredients resolves ingredient references to their current documents.
// An empty reference list returns nil without touching the store.
func (r *Resolver) Ingredients(ctx context.Context, refs []string) ([]domain.Ingredient, error) {
	ids := normalizeRefs(domain.CollectionIngredients, refs)
	if len(ids) == 0 {
		return nil, nil
	}
	return r.ingredients.GetByIDs(ctx, ids)
}

// Equipments resolves equipment references to their current documents.
// An empty reference list returns nil without touching the store.
func (r *Resolver) Equipments(ctx context.Context, refs []string) ([]domain.Equipment, error) {
	ids := normalizeRefs(domain.CollectionEquipment, refs)
	if len(ids) == 0 {
		return nil, nil
	}
	return r.equipments.GetByIDs(ctx, ids)
}

// normalizeRefs strips the collection path prefix from each reference and
// drops blank entries. Duplicates pass through; the $in fetch dedups them.
func normalizeRefs(collection string, refs []string) []string {
	prefix := collection + "/"
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ref), prefix))
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
