package domain

import (
	"time"
)

// IngredientSummary is the search-relevant subset of an ingredient embedded
// in a cocktail's search document.
type IngredientSummary struct {
	ID       string     `json:"id"`
	Title    I18nString `json:"title"`
	Category string     `json:"category,omitempty"`
	Image    string     `json:"image,omitempty"`
}

// EquipmentSummary is the search-relevant subset of a piece of equipment
// embedded in a cocktail's search document.
type EquipmentSummary struct {
	ID    string     `json:"id"`
	Title I18nString `json:"title"`
	Image string     `json:"image,omitempty"`
}

// CocktailDocument is the denormalized search projection of a cocktail.
// It is keyed by the same ID as its primary record and replaced wholesale
// on every write. Preparation steps are deliberately absent.
type CocktailDocument struct {
	ID          string              `json:"id"`
	Title       I18nString          `json:"title"`
	Description I18nString          `json:"description"`
	Categories  []string            `json:"categories"`
	ABV         float64             `json:"abv"`
	Image       string              `json:"image,omitempty"`
	Ingredients []IngredientSummary `json:"ingredients"`
	Equipments  []EquipmentSummary  `json:"equipments"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// SearchRequest holds all parameters for a cocktail search.
// IngredientIDs and EquipmentIDs are AND constraints: every listed ID must
// be present on a matching document.
type SearchRequest struct {
	Query         string   `json:"query"`
	Categories    []string `json:"categories,omitempty"`
	IngredientIDs []string `json:"ingredient_ids,omitempty"`
	EquipmentIDs  []string `json:"equipment_ids,omitempty"`
	MinABV        *float64 `json:"min_abv,omitempty"`
	MaxABV        *float64 `json:"max_abv,omitempty"`
	Page          int      `json:"page"`
	PageSize      int      `json:"page_size"`
}

// HasTextQuery reports whether the request carries a non-blank free-text query.
func (r *SearchRequest) HasTextQuery() bool {
	return r.Query != ""
}

// SearchResult holds the raw engine response for one page of matches.
type SearchResult struct {
	Items    []CocktailDocument `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	TookMs   int64              `json:"took_ms"`
}
