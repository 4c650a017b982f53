package projector

import (
	"github.com/barkeep-app/search/internal/domain"
)

// Project flattens a cocktail and its resolved relations into a search
// document. It is a pure function: the same cocktail and relation snapshot
// always yields an identical document, which keeps reindexing idempotent.
//
// Locale-keyed fields are copied verbatim. Preparation steps and relation
// timestamps are dropped; a missing ABV becomes 0.
func Project(cocktail *domain.Cocktail, ingredients []domain.Ingredient, equipments []domain.Equipment) *domain.CocktailDocument {
	doc := &domain.CocktailDocument{
		ID:          cocktail.ID,
		Title:       cocktail.Title,
		Description: cocktail.Description,
		Categories:  cocktail.Categories,
		Image:       cocktail.Image,
		Ingredients: make([]domain.IngredientSummary, 0, len(ingredients)),
		Equipments:  make([]domain.EquipmentSummary, 0, len(equipments)),
		CreatedAt:   cocktail.CreatedAt,
		UpdatedAt:   cocktail.UpdatedAt,
	}

	if cocktail.ABV != nil {
		doc.ABV = *cocktail.ABV
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}

	for _, ing := range ingredients {
		doc.Ingredients = append(doc.Ingredients, domain.IngredientSummary{
			ID:       ing.ID,
			Title:    ing.Title,
			Category: ing.Category,
			Image:    ing.Image,
		})
	}

	for _, eq := range equipments {
		doc.Equipments = append(doc.Equipments, domain.EquipmentSummary{
			ID:    eq.ID,
			Title: eq.Title,
			Image: eq.Image,
		})
	}

	return doc
}
