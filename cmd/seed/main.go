// Package main implements a standalone seed script that populates the
// Barkeep primary store with a realistic cocktail catalog. It writes
// cocktails, ingredients, and equipment directly to MongoDB, then emits a
// created event per cocktail so a running search service picks them up.
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	pkgkafka "github.com/barkeep-app/search/pkg/kafka"
	"github.com/barkeep-app/search/pkg/slug"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/event"
	"github.com/barkeep-app/search/internal/store/mongo"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------------------------------
// Seed data definitions
// --------------------------------------------------------------------------

type ingredientDef struct {
	en       string
	uk       string
	category string
}

type equipmentDef struct {
	en string
	uk string
}

type cocktailDef struct {
	en          string
	uk          string
	descEN      string
	descUK      string
	categories  []string
	ingredients []string // english names, resolved to IDs after insert
	equipments  []string
	abv         *float64
	steps       []string
}

func abv(v float64) *float64 { return &v }

// --------------------------------------------------------------------------
// main
// --------------------------------------------------------------------------

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[seed] ")

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DATABASE", "barkeep")
	brokers := getEnv("KAFKA_BROKERS", "localhost:9092")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, mongoURI, mongoDB)
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer client.Close(ctx)
	log.Println("Connected.")

	ingredientStore := mongo.NewIngredientStore(client)
	equipmentStore := mongo.NewEquipmentStore(client)
	cocktailStore := mongo.NewCocktailStore(client)

	// ---------------------------------------------------------------
	// 1. Seed ingredients
	// ---------------------------------------------------------------
	ingredients := []ingredientDef{
		{"Gin", "Джин", "spirit"},
		{"White Rum", "Білий ром", "spirit"},
		{"Dark Rum", "Темний ром", "spirit"},
		{"Vodka", "Горілка", "spirit"},
		{"Tequila", "Текіла", "spirit"},
		{"Bourbon", "Бурбон", "spirit"},
		{"Campari", "Кампарі", "liqueur"},
		{"Sweet Vermouth", "Солодкий вермут", "fortified-wine"},
		{"Dry Vermouth", "Сухий вермут", "fortified-wine"},
		{"Triple Sec", "Трипл-сек", "liqueur"},
		{"Coffee Liqueur", "Кавовий лікер", "liqueur"},
		{"Lime Juice", "Сік лайма", "juice"},
		{"Lemon Juice", "Лимонний сік", "juice"},
		{"Orange Juice", "Апельсиновий сік", "juice"},
		{"Cranberry Juice", "Журавлинний сік", "juice"},
		{"Simple Syrup", "Цукровий сироп", "syrup"},
		{"Grenadine", "Гренадин", "syrup"},
		{"Soda Water", "Содова", "mixer"},
		{"Ginger Beer", "Імбирне пиво", "mixer"},
		{"Cola", "Кола", "mixer"},
		{"Mint Leaves", "Листя м'яти", "garnish"},
		{"Angostura Bitters", "Бітер Ангостура", "bitters"},
		{"Egg White", "Яєчний білок", "other"},
		{"Espresso", "Еспресо", "other"},
	}

	ingredientIDs := make(map[string]string, len(ingredients))
	log.Println("Seeding ingredients...")
	for _, def := range ingredients {
		id := slug.Generate(def.en)
		ing := &domain.Ingredient{
			ID:       id,
			Title:    domain.I18nString{domain.LocaleEN: def.en, domain.LocaleUK: def.uk},
			Category: def.category,
			Image:    "https://cdn.barkeep.app/ingredients/" + id + ".webp",
		}
		if err := ingredientStore.Upsert(ctx, ing); err != nil {
			log.Printf("  WARNING: ingredient %q: %v", def.en, err)
			continue
		}
		ingredientIDs[def.en] = id
		log.Printf("  Ingredient: %s (id=%s)", def.en, id)
	}

	// ---------------------------------------------------------------
	// 2. Seed equipment
	// ---------------------------------------------------------------
	equipment := []equipmentDef{
		{"Shaker", "Шейкер"},
		{"Bar Spoon", "Барна ложка"},
		{"Strainer", "Стрейнер"},
		{"Jigger", "Джигер"},
		{"Muddler", "Мадлер"},
		{"Mixing Glass", "Змішувальна склянка"},
	}

	equipmentIDs := make(map[string]string, len(equipment))
	log.Println("Seeding equipment...")
	for _, def := range equipment {
		id := slug.Generate(def.en)
		eq := &domain.Equipment{
			ID:    id,
			Title: domain.I18nString{domain.LocaleEN: def.en, domain.LocaleUK: def.uk},
			Image: "https://cdn.barkeep.app/equipment/" + id + ".webp",
		}
		if err := equipmentStore.Upsert(ctx, eq); err != nil {
			log.Printf("  WARNING: equipment %q: %v", def.en, err)
			continue
		}
		equipmentIDs[def.en] = id
		log.Printf("  Equipment: %s (id=%s)", def.en, id)
	}

	// ---------------------------------------------------------------
	// 3. Seed cocktails
	// ---------------------------------------------------------------
	cocktails := []cocktailDef{
		{
			en: "Negroni", uk: "Негроні",
			descEN:      "Equal parts gin, Campari, and sweet vermouth stirred over ice. Bitter, balanced, and timeless.",
			descUK:      "Рівні частини джину, Кампарі та солодкого вермуту, розмішані з льодом.",
			categories:  []string{domain.CategoryClassic, domain.CategoryLowball},
			ingredients: []string{"Gin", "Campari", "Sweet Vermouth"},
			equipments:  []string{"Mixing Glass", "Bar Spoon", "Strainer"},
			abv:         abv(24),
			steps: []string{
				"Fill a mixing glass with ice.",
				"Add gin, Campari, and sweet vermouth.",
				"Stir until well chilled and strain over fresh ice.",
			},
		},
		{
			en: "Mojito", uk: "Мохіто",
			descEN:      "White rum with muddled mint, lime, and sugar, lengthened with soda water.",
			descUK:      "Білий ром з м'ятою, лаймом і цукром, доповнений содовою.",
			categories:  []string{domain.CategoryClassic, domain.CategoryHighball},
			ingredients: []string{"White Rum", "Lime Juice", "Simple Syrup", "Mint Leaves", "Soda Water"},
			equipments:  []string{"Muddler", "Bar Spoon"},
			abv:         abv(13),
			steps: []string{
				"Muddle mint leaves with syrup and lime juice.",
				"Add rum and fill the glass with crushed ice.",
				"Top with soda water and stir gently.",
			},
		},
		{
			en: "Margarita", uk: "Маргарита",
			descEN:      "Tequila, triple sec, and lime juice shaken and served with a salted rim.",
			descUK:      "Текіла, трипл-сек і сік лайма, подається з сольовою облямівкою.",
			categories:  []string{domain.CategoryClassic},
			ingredients: []string{"Tequila", "Triple Sec", "Lime Juice"},
			equipments:  []string{"Shaker", "Strainer", "Jigger"},
			abv:         abv(22),
			steps: []string{
				"Shake all ingredients with ice.",
				"Strain into a chilled glass with a salted rim.",
			},
		},
		{
			en: "Espresso Martini", uk: "Еспресо мартіні",
			descEN:      "Vodka and coffee liqueur shaken hard with fresh espresso for a dense foam.",
			descUK:      "Горілка та кавовий лікер, збиті зі свіжим еспресо.",
			categories:  []string{domain.CategorySignature},
			ingredients: []string{"Vodka", "Coffee Liqueur", "Espresso", "Simple Syrup"},
			equipments:  []string{"Shaker", "Strainer"},
			abv:         abv(18),
			steps: []string{
				"Shake all ingredients hard with ice.",
				"Double strain into a chilled coupe.",
			},
		},
		{
			en: "Moscow Mule", uk: "Московський мул",
			descEN:      "Vodka and lime topped with spicy ginger beer, traditionally in a copper mug.",
			descUK:      "Горілка з лаймом та імбирним пивом, традиційно в мідному кухлі.",
			categories:  []string{domain.CategoryClassic, domain.CategoryHighball},
			ingredients: []string{"Vodka", "Lime Juice", "Ginger Beer"},
			equipments:  []string{"Jigger", "Bar Spoon"},
			abv:         abv(10),
			steps: []string{
				"Build vodka and lime juice over ice.",
				"Top with ginger beer and stir once.",
			},
		},
		{
			en: "Whiskey Sour", uk: "Віскі сауер",
			descEN:      "Bourbon, lemon, and sugar shaken with egg white for a silky texture.",
			descUK:      "Бурбон, лимон і цукор, збиті з яєчним білком.",
			categories:  []string{domain.CategoryClassic, domain.CategoryLowball},
			ingredients: []string{"Bourbon", "Lemon Juice", "Simple Syrup", "Egg White", "Angostura Bitters"},
			equipments:  []string{"Shaker", "Strainer"},
			abv:         abv(20),
			steps: []string{
				"Dry shake all ingredients without ice.",
				"Shake again with ice and strain over a large cube.",
				"Finish with a few drops of bitters.",
			},
		},
		{
			en: "Virgin Sunrise", uk: "Безалкогольний схід сонця",
			descEN:      "Orange juice over ice with a slow pour of grenadine for the sunrise gradient.",
			descUK:      "Апельсиновий сік з льодом і гренадином.",
			categories:  []string{domain.CategoryMocktail},
			ingredients: []string{"Orange Juice", "Grenadine"},
			equipments:  []string{"Bar Spoon"},
			abv:         abv(0),
			steps: []string{
				"Fill a tall glass with ice and pour in orange juice.",
				"Slowly pour grenadine down the inside of the glass.",
			},
		},
		{
			en: "Cuba Libre", uk: "Куба лібре",
			descEN:      "Dark rum and cola with a generous squeeze of fresh lime.",
			descUK:      "Темний ром з колою та свіжим лаймом.",
			categories:  []string{domain.CategoryHighball},
			ingredients: []string{"Dark Rum", "Cola", "Lime Juice"},
			equipments:  []string{"Bar Spoon"},
			abv:         abv(12),
			steps: []string{
				"Build rum and lime juice over ice.",
				"Top with cola and stir once.",
			},
		},
	}

	// A producer lets a running search service ingest the catalog without a
	// manual reindex. Failures here are warnings: the data is already durable.
	producer := pkgkafka.NewProducer(
		pkgkafka.DefaultProducerConfig([]string{brokers}),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	defer producer.Close()

	log.Printf("Seeding %d cocktails...", len(cocktails))
	now := time.Now().UTC()
	for i, def := range cocktails {
		id := slug.Generate(def.en)

		refs := make([]string, 0, len(def.ingredients))
		for _, name := range def.ingredients {
			if ingID, ok := ingredientIDs[name]; ok {
				refs = append(refs, domain.CollectionIngredients+"/"+ingID)
			}
		}
		eqRefs := make([]string, 0, len(def.equipments))
		for _, name := range def.equipments {
			if eqID, ok := equipmentIDs[name]; ok {
				eqRefs = append(eqRefs, domain.CollectionEquipment+"/"+eqID)
			}
		}

		cocktail := &domain.Cocktail{
			ID:          id,
			Title:       domain.I18nString{domain.LocaleEN: def.en, domain.LocaleUK: def.uk},
			Description: domain.I18nString{domain.LocaleEN: def.descEN, domain.LocaleUK: def.descUK},
			Categories:  def.categories,
			Ingredients: refs,
			Equipments:  eqRefs,
			ABV:         def.abv,
			Steps:       domain.I18nStringList{domain.LocaleEN: def.steps},
			Image:       "https://cdn.barkeep.app/cocktails/" + id + ".webp",
			CreatedAt:   now.Add(time.Duration(i) * time.Second),
			UpdatedAt:   now.Add(time.Duration(i) * time.Second),
		}

		if err := cocktailStore.Upsert(ctx, cocktail); err != nil {
			log.Printf("  WARNING: cocktail %q: %v", def.en, err)
			continue
		}
		log.Printf("  Cocktail: %s (id=%s)", def.en, id)

		evt, err := pkgkafka.NewEvent(
			event.TopicCocktailCreated, id, "cocktail", "seed",
			event.ChangeData{After: cocktail},
		)
		if err != nil {
			log.Printf("  WARNING: build event for %q: %v", def.en, err)
			continue
		}
		if err := producer.Publish(ctx, event.TopicCocktailCreated, evt); err != nil {
			log.Printf("  WARNING: publish event for %q: %v (run a reindex instead)", def.en, err)
		}
	}

	log.Printf("Seed complete! %d ingredients, %d equipment, %d cocktails.",
		len(ingredientIDs), len(equipmentIDs), len(cocktails))
}
