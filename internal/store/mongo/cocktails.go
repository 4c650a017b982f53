package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/barkeep-app/search/pkg/errors"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/store"
)

// CocktailStore reads and writes cocktails in MongoDB.
type CocktailStore struct {
	coll *mongo.Collection
}

// NewCocktailStore creates a cocktail store backed by the cocktails collection.
func NewCocktailStore(client *Client) *CocktailStore {
	return &CocktailStore{
		coll: client.Database().Collection(domain.CollectionCocktails),
	}
}

// GetByID returns the cocktail with the given ID.
func (s *CocktailStore) GetByID(ctx context.Context, id string) (*domain.Cocktail, error) {
	var cocktail domain.Cocktail
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cocktail)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("cocktail", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get cocktail %s: %w", id, err)
	}
	return &cocktail, nil
}

// List returns up to batchSize cocktails after the given cursor, ordered by
// creation time ascending with ID as tiebreak.
func (s *CocktailStore) List(ctx context.Context, batchSize int, after *store.Cursor) (*store.CocktailPage, error) {
	filter := bson.M{}
	if after != nil {
		filter = bson.M{
			"$or": bson.A{
				bson.M{"created_at": bson.M{"$gt": after.CreatedAt}},
				bson.M{"created_at": after.CreatedAt, "_id": bson.M{"$gt": after.ID}},
			},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(batchSize))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list cocktails: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var cocktails []domain.Cocktail
	if err := cur.All(ctx, &cocktails); err != nil {
		return nil, fmt.Errorf("list cocktails: decode: %w", err)
	}

	page := &store.CocktailPage{
		Cocktails: cocktails,
		HasMore:   len(cocktails) == batchSize,
	}
	if len(cocktails) > 0 {
		last := cocktails[len(cocktails)-1]
		page.Next = &store.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return page, nil
}

// Upsert replaces the cocktail document wholesale, inserting it if absent.
// Used by the seed tool; the search pipeline itself only reads.
func (s *CocktailStore) Upsert(ctx context.Context, cocktail *domain.Cocktail) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": cocktail.ID}, cocktail, opts); err != nil {
		return fmt.Errorf("upsert cocktail %s: %w", cocktail.ID, err)
	}
	return nil
}
