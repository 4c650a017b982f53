package relation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkeep-app/search/internal/domain"
)

// fakeIngredientStore records calls and serves a fixed set of ingredients.
type fakeIngredientStore struct {
	calls     int
	requested []string
	byID      map[string]domain.Ingredient
}

func (f *fakeIngredientStore) GetByIDs(_ context.Context, ids []string) ([]domain.Ingredient, error) {
	f.calls++
	f.requested = append(f.requested, ids...)
	var out []domain.Ingredient
	for _, id := range ids {
		if ing, ok := f.byID[id]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

type fakeEquipmentStore struct {
	calls int
	byID  map[string]domain.Equipment
}

func (f *fakeEquipmentStore) GetByIDs(_ context.Context, ids []string) ([]domain.Equipment, error) {
	f.calls++
	var out []domain.Equipment
	for _, id := range ids {
		if eq, ok := f.byID[id]; ok {
			out = append(out, eq)
		}
	}
	return out, nil
}

func TestIngredients_StripsPathPrefix(t *testing.T) {
	ingredients := &fakeIngredientStore{byID: map[string]domain.Ingredient{
		"vodka": {ID: "vodka", Title: domain.I18nString{"en": "Vodka"}},
		"lime":  {ID: "lime", Title: domain.I18nString{"en": "Lime"}},
	}}
	r := NewResolver(ingredients, &fakeEquipmentStore{})

	got, err := r.Ingredients(t.Context(), []string{"ingredients/vodka", "lime"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "vodka", got[0].ID)
	assert.Equal(t, "lime", got[1].ID)
	assert.Equal(t, []string{"vodka", "lime"}, ingredients.requested)
}

func TestIngredients_EmptyInput_NoFetch(t *testing.T) {
	ingredients := &fakeIngredientStore{}
	r := NewResolver(ingredients, &fakeEquipmentStore{})

	got, err := r.Ingredients(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, ingredients.calls, "empty reference list must not hit the store")
}

func TestIngredients_BlankEntriesDropped(t *testing.T) {
	ingredients := &fakeIngredientStore{byID: map[string]domain.Ingredient{
		"mint": {ID: "mint"},
	}}
	r := NewResolver(ingredients, &fakeEquipmentStore{})

	got, err := r.Ingredients(t.Context(), []string{"", "   ", "ingredients/mint", "ingredients/"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mint", got[0].ID)
	assert.Equal(t, []string{"mint"}, ingredients.requested)
}

func TestIngredients_AllBlank_NoFetch(t *testing.T) {
	ingredients := &fakeIngredientStore{}
	r := NewResolver(ingredients, &fakeEquipmentStore{})

	got, err := r.Ingredients(t.Context(), []string{"", "  "})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, ingredients.calls)
}

func TestIngredients_MissingIDOmitted(t *testing.T) {
	ingredients := &fakeIngredientStore{byID: map[string]domain.Ingredient{}}
	r := NewResolver(ingredients, &fakeEquipmentStore{})

	got, err := r.Ingredients(t.Context(), []string{"ingredients/does-not-exist"})
	require.NoError(t, err)
	assert.Empty(t, got, "a reference to a deleted ingredient is not an error")
}

func TestEquipments_StripsPathPrefix(t *testing.T) {
	equipments := &fakeEquipmentStore{byID: map[string]domain.Equipment{
		"shaker": {ID: "shaker", Title: domain.I18nString{"en": "Shaker"}},
	}}
	r := NewResolver(&fakeIngredientStore{}, equipments)

	got, err := r.Equipments(t.Context(), []string{"equipment/shaker"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "shaker", got[0].ID)
}

func TestEquipments_EmptyInput_NoFetch(t *testing.T) {
	equipments := &fakeEquipmentStore{}
	r := NewResolver(&fakeIngredientStore{}, equipments)

	got, err := r.Equipments(t.Context(), []string{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, equipments.calls)
}

func TestNormalizeRefs_DuplicatesPassThrough(t *testing.T) {
	ids := normalizeRefs("ingredients", []string{"ingredients/vodka", "vodka"})
	assert.Equal(t, []string{"vodka", "vodka"}, ids)
}
