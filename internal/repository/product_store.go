package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AR-Raju/online-nursery-server/internal/catalog"
	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

const productCollectionName = "products"

type MongoProductStore struct {
	collection *mongo.Collection
}

var _ ProductStore = (*MongoProductStore)(nil)

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{collection: db.Collection(productCollectionName)}
}

func (s *MongoProductStore) Create(ctx context.Context, product *domain.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	slog.Info("inserted product", "product_id", product.ID.Hex())
	return nil
}

func (s *MongoProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", id, domain.ErrNotFound)
	}

	var product domain.Product
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// GetByIDs fetches the given products in one query, keyed by hex id.
// Unresolvable ids are simply absent from the result.
func (s *MongoProductStore) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}

	byID := make(map[string]*domain.Product, len(objIDs))
	if len(objIDs) == 0 {
		return byID, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}
	return byID, nil
}

func (s *MongoProductStore) List(ctx context.Context, query catalog.ProductQuery) ([]*domain.Product, int64, error) {
	filter := query.Filter()

	totalCount, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := s.collection.Find(ctx, filter, query.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	if products == nil {
		products = []*domain.Product{}
	}
	return products, totalCount, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id string, input domain.UpdateProductInput) (*domain.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", id, domain.ErrNotFound)
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Rating != nil {
		set["rating"] = *input.Rating
	}
	if input.Image != "" {
		set["image"] = input.Image
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	slog.Info("updated product", "product_id", id, "modified", result.ModifiedCount)
	return s.GetByID(ctx, id)
}

func (s *MongoProductStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", id, domain.ErrNotFound)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	slog.Info("deleted product", "product_id", id)
	return nil
}

// DecrementStock is the compare-and-decrement primitive used by order
// placement: the filter only matches while stock covers the quantity, so a
// concurrent order cannot drive stock negative.
func (s *MongoProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", id, domain.ErrNotFound)
	}

	filter := bson.M{"_id": objID, "stock": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrInsufficientStock)
	}
	return nil
}
