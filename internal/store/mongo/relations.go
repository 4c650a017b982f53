package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barkeep-app/search/internal/domain"
)

// IngredientStore bulk-reads ingredients from MongoDB.
type IngredientStore struct {
	coll *mongo.Collection
}

// NewIngredientStore creates an ingredient store backed by the ingredients collection.
func NewIngredientStore(client *Client) *IngredientStore {
	return &IngredientStore{
		coll: client.Database().Collection(domain.CollectionIngredients),
	}
}

// GetByIDs returns the ingredients matching the given IDs. Unknown IDs are
// omitted. ID sets larger than the $in limit are chunked into multiple queries.
func (s *IngredientStore) GetByIDs(ctx context.Context, ids []string) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var out []domain.Ingredient
	for _, chunk := range chunkIDs(ids) {
		cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": chunk}})
		if err != nil {
			return nil, fmt.Errorf("get ingredients by ids: %w", err)
		}
		var batch []domain.Ingredient
		if err := cur.All(ctx, &batch); err != nil {
			return nil, fmt.Errorf("get ingredients by ids: decode: %w", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Upsert replaces the ingredient document wholesale, inserting it if absent.
func (s *IngredientStore) Upsert(ctx context.Context, ingredient *domain.Ingredient) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": ingredient.ID}, ingredient, opts); err != nil {
		return fmt.Errorf("upsert ingredient %s: %w", ingredient.ID, err)
	}
	return nil
}

// EquipmentStore bulk-reads equipment from MongoDB.
type EquipmentStore struct {
	coll *mongo.Collection
}

// NewEquipmentStore creates an equipment store backed by the equipment collection.
func NewEquipmentStore(client *Client) *EquipmentStore {
	return &EquipmentStore{
		coll: client.Database().Collection(domain.CollectionEquipment),
	}
}

// GetByIDs returns the equipment matching the given IDs. Unknown IDs are omitted.
func (s *EquipmentStore) GetByIDs(ctx context.Context, ids []string) ([]domain.Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var out []domain.Equipment
	for _, chunk := range chunkIDs(ids) {
		cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": chunk}})
		if err != nil {
			return nil, fmt.Errorf("get equipment by ids: %w", err)
		}
		var batch []domain.Equipment
		if err := cur.All(ctx, &batch); err != nil {
			return nil, fmt.Errorf("get equipment by ids: decode: %w", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Upsert replaces the equipment document wholesale, inserting it if absent.
func (s *EquipmentStore) Upsert(ctx context.Context, equipment *domain.Equipment) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": equipment.ID}, equipment, opts); err != nil {
		return fmt.Errorf("upsert equipment %s: %w", equipment.ID, err)
	}
	return nil
}
