package domain

import (
	"time"
)

// Supported content locales. Every i18n field is keyed by one of these.
const (
	LocaleEN = "en"
	LocaleUK = "uk"
)

// I18nString maps a locale code to a translated string. Partial updates may
// leave some locales unpopulated; the primary locale is mandatory at creation.
type I18nString map[string]string

// I18nStringList maps a locale code to an ordered list of strings
// (preparation steps).
type I18nStringList map[string][]string

// Cocktail categories.
const (
	CategoryClassic   = "classic"
	CategorySignature = "signature"
	CategorySeasonal  = "seasonal"
	CategoryFrozen    = "frozen"
	CategoryMocktail  = "mocktail"
	CategoryShot      = "shot"
	CategoryPunch     = "punch"
	CategoryTiki      = "tiki"
	CategoryHighball  = "highball"
	CategoryLowball   = "lowball"
)

// ValidCategories returns the allow-list of cocktail categories.
func ValidCategories() []string {
	return []string{
		CategoryClassic, CategorySignature, CategorySeasonal, CategoryFrozen,
		CategoryMocktail, CategoryShot, CategoryPunch, CategoryTiki,
		CategoryHighball, CategoryLowball,
	}
}

// IsValidCategory checks whether the given string is a known cocktail category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// Collection names in the primary store. They double as the base names for
// the stage-qualified search indices.
const (
	CollectionCocktails   = "cocktails"
	CollectionIngredients = "ingredients"
	CollectionEquipment   = "equipment"
)

// Cocktail is the normalized primary-store record. Ingredients and Equipments
// hold path-like reference strings ("ingredients/vodka") or bare IDs, not
// embedded documents.
type Cocktail struct {
	ID          string         `bson:"_id" json:"id"`
	Title       I18nString     `bson:"title" json:"title"`
	Description I18nString     `bson:"description" json:"description"`
	Categories  []string       `bson:"categories" json:"categories"`
	Ingredients []string       `bson:"ingredients" json:"ingredients"`
	Equipments  []string       `bson:"equipments" json:"equipments"`
	ABV         *float64       `bson:"abv,omitempty" json:"abv,omitempty"`
	Steps       I18nStringList `bson:"steps" json:"steps"`
	Image       string         `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}

// Ingredient is a normalized related entity referenced by cocktails.
type Ingredient struct {
	ID        string     `bson:"_id" json:"id"`
	Title     I18nString `bson:"title" json:"title"`
	Category  string     `bson:"category,omitempty" json:"category,omitempty"`
	Image     string     `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Equipment is a normalized related entity referenced by cocktails.
// Unlike ingredients it carries no category.
type Equipment struct {
	ID        string     `bson:"_id" json:"id"`
	Title     I18nString `bson:"title" json:"title"`
	Image     string     `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
