package projector

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkeep-app/search/internal/domain"
)

func fixtureCocktail() *domain.Cocktail {
	abv := 24.5
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Cocktail{
		ID: "mojito",
		Title: domain.I18nString{
			"en": "Mojito",
			"uk": "Мохіто",
		},
		Description: domain.I18nString{
			"en": "A refreshing Cuban highball",
			"uk": "Освіжаючий кубинський хайбол",
		},
		Categories:  []string{domain.CategoryClassic, domain.CategoryHighball},
		Ingredients: []string{"ingredients/white-rum", "ingredients/mint"},
		Equipments:  []string{"equipment/muddler"},
		ABV:         &abv,
		Steps: domain.I18nStringList{
			"en": {"Muddle mint with sugar", "Add rum and ice", "Top with soda"},
		},
		Image:     "cocktails/mojito.jpg",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func fixtureRelations() ([]domain.Ingredient, []domain.Equipment) {
	ingredients := []domain.Ingredient{
		{
			ID:        "white-rum",
			Title:     domain.I18nString{"en": "White rum", "uk": "Білий ром"},
			Category:  "spirit",
			Image:     "ingredients/white-rum.jpg",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    "mint",
			Title: domain.I18nString{"en": "Mint", "uk": "М'ята"},
		},
	}
	equipments := []domain.Equipment{
		{
			ID:        "muddler",
			Title:     domain.I18nString{"en": "Muddler", "uk": "Мадлер"},
			UpdatedAt: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	return ingredients, equipments
}

func TestProject_Deterministic(t *testing.T) {
	cocktail := fixtureCocktail()
	ingredients, equipments := fixtureRelations()

	first := Project(cocktail, ingredients, equipments)
	second := Project(cocktail, ingredients, equipments)

	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestProject_CopiesLocaleFieldsVerbatim(t *testing.T) {
	cocktail := fixtureCocktail()
	doc := Project(cocktail, nil, nil)

	assert.Equal(t, cocktail.Title, doc.Title)
	assert.Equal(t, cocktail.Description, doc.Description)
	assert.Equal(t, cocktail.Categories, doc.Categories)
	assert.Equal(t, cocktail.Image, doc.Image)
	assert.Equal(t, cocktail.CreatedAt, doc.CreatedAt)
	assert.Equal(t, cocktail.UpdatedAt, doc.UpdatedAt)
}

func TestProject_MissingABVDefaultsToZero(t *testing.T) {
	cocktail := fixtureCocktail()
	cocktail.ABV = nil

	doc := Project(cocktail, nil, nil)
	assert.Zero(t, doc.ABV)
}

func TestProject_ABVCarriedWhenPresent(t *testing.T) {
	cocktail := fixtureCocktail()
	doc := Project(cocktail, nil, nil)
	assert.Equal(t, 24.5, doc.ABV)
}

func TestProject_StepsNotIndexed(t *testing.T) {
	cocktail := fixtureCocktail()
	doc := Project(cocktail, nil, nil)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Muddle mint")
}

func TestProject_EmbedsRelationSummaries(t *testing.T) {
	cocktail := fixtureCocktail()
	ingredients, equipments := fixtureRelations()

	doc := Project(cocktail, ingredients, equipments)

	require.Len(t, doc.Ingredients, 2)
	assert.Equal(t, "white-rum", doc.Ingredients[0].ID)
	assert.Equal(t, "spirit", doc.Ingredients[0].Category)
	assert.Equal(t, domain.I18nString{"en": "White rum", "uk": "Білий ром"}, doc.Ingredients[0].Title)

	require.Len(t, doc.Equipments, 1)
	assert.Equal(t, "muddler", doc.Equipments[0].ID)
	assert.Equal(t, domain.I18nString{"en": "Muddler", "uk": "Мадлер"}, doc.Equipments[0].Title)
}

func TestProject_RelationTimestampsDropped(t *testing.T) {
	cocktail := fixtureCocktail()
	ingredients, equipments := fixtureRelations()

	doc := Project(cocktail, ingredients, equipments)

	data, err := json.Marshal(doc.Ingredients)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "2024-01-01")

	data, err = json.Marshal(doc.Equipments)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "2024-02-02")
}

func TestProject_NoRelations_EmptySlices(t *testing.T) {
	cocktail := fixtureCocktail()
	doc := Project(cocktail, nil, nil)

	assert.NotNil(t, doc.Ingredients)
	assert.Empty(t, doc.Ingredients)
	assert.NotNil(t, doc.Equipments)
	assert.Empty(t, doc.Equipments)
}

func TestProject_NilCategoriesBecomeEmpty(t *testing.T) {
	cocktail := fixtureCocktail()
	cocktail.Categories = nil

	doc := Project(cocktail, nil, nil)
	assert.NotNil(t, doc.Categories)
	assert.Empty(t, doc.Categories)
}
