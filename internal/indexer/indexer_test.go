package indexer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine/memory"
	"github.com/barkeep-app/search/internal/relation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubIngredientStore struct {
	byID map[string]domain.Ingredient
	err  error
}

func (s *stubIngredientStore) GetByIDs(_ context.Context, ids []string) ([]domain.Ingredient, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Ingredient
	for _, id := range ids {
		if ing, ok := s.byID[id]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

type stubEquipmentStore struct {
	byID map[string]domain.Equipment
}

func (s *stubEquipmentStore) GetByIDs(_ context.Context, ids []string) ([]domain.Equipment, error) {
	var out []domain.Equipment
	for _, id := range ids {
		if eq, ok := s.byID[id]; ok {
			out = append(out, eq)
		}
	}
	return out, nil
}

func testCocktail() *domain.Cocktail {
	abv := 22.0
	return &domain.Cocktail{
		ID:          "gimlet",
		Title:       domain.I18nString{"en": "Gimlet"},
		Description: domain.I18nString{"en": "Gin and lime cordial"},
		Categories:  []string{domain.CategoryClassic},
		Ingredients: []string{"ingredients/gin", "ingredients/lime-cordial"},
		Equipments:  []string{"equipment/mixing-glass"},
		ABV:         &abv,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func newTestIndexer(ingredients *stubIngredientStore, equipments *stubEquipmentStore, eng *memory.Engine) *Indexer {
	resolver := relation.NewResolver(ingredients, equipments)
	return New(resolver, eng, testLogger())
}

func TestSync_IndexesProjectedDocument(t *testing.T) {
	ingredients := &stubIngredientStore{byID: map[string]domain.Ingredient{
		"gin":          {ID: "gin", Title: domain.I18nString{"en": "Gin"}, Category: "spirit"},
		"lime-cordial": {ID: "lime-cordial", Title: domain.I18nString{"en": "Lime cordial"}},
	}}
	equipments := &stubEquipmentStore{byID: map[string]domain.Equipment{
		"mixing-glass": {ID: "mixing-glass", Title: domain.I18nString{"en": "Mixing glass"}},
	}}
	eng := memory.New()
	ix := newTestIndexer(ingredients, equipments, eng)

	require.NoError(t, ix.Sync(t.Context(), testCocktail()))

	result, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Query: "gimlet", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)

	doc := result.Items[0]
	assert.Equal(t, "gimlet", doc.ID)
	assert.Equal(t, 22.0, doc.ABV)
	require.Len(t, doc.Ingredients, 2)
	assert.Equal(t, "gin", doc.Ingredients[0].ID)
	require.Len(t, doc.Equipments, 1)
	assert.Equal(t, "mixing-glass", doc.Equipments[0].ID)
}

func TestSync_MissingRelationOmitted(t *testing.T) {
	ingredients := &stubIngredientStore{byID: map[string]domain.Ingredient{
		"gin": {ID: "gin", Title: domain.I18nString{"en": "Gin"}},
	}}
	equipments := &stubEquipmentStore{}
	eng := memory.New()
	ix := newTestIndexer(ingredients, equipments, eng)

	require.NoError(t, ix.Sync(t.Context(), testCocktail()))

	result, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Query: "gimlet", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Len(t, result.Items[0].Ingredients, 1, "the deleted cordial is silently dropped")
	assert.Empty(t, result.Items[0].Equipments)
}

func TestSync_ResolveFailurePropagates(t *testing.T) {
	ingredients := &stubIngredientStore{err: errors.New("store unavailable")}
	eng := memory.New()
	ix := newTestIndexer(ingredients, &stubEquipmentStore{}, eng)

	err := ix.Sync(t.Context(), testCocktail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve relations")

	// Nothing was indexed.
	result, searchErr := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, searchErr)
	assert.Zero(t, result.Total)
}

func TestSync_Idempotent(t *testing.T) {
	ingredients := &stubIngredientStore{byID: map[string]domain.Ingredient{}}
	eng := memory.New()
	ix := newTestIndexer(ingredients, &stubEquipmentStore{}, eng)

	cocktail := testCocktail()
	require.NoError(t, ix.Sync(t.Context(), cocktail))
	require.NoError(t, ix.Sync(t.Context(), cocktail))

	result, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Query: "gimlet", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestRemove_DeletesDocument(t *testing.T) {
	eng := memory.New()
	ix := newTestIndexer(&stubIngredientStore{}, &stubEquipmentStore{}, eng)

	cocktail := testCocktail()
	cocktail.Ingredients = nil
	cocktail.Equipments = nil
	require.NoError(t, ix.Sync(t.Context(), cocktail))
	require.NoError(t, ix.Remove(t.Context(), "gimlet"))

	result, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestRemove_UnknownID_NoOp(t *testing.T) {
	eng := memory.New()
	ix := newTestIndexer(&stubIngredientStore{}, &stubEquipmentStore{}, eng)

	assert.NoError(t, ix.Remove(t.Context(), "never-indexed"))
}
