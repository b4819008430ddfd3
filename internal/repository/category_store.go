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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

const categoryCollectionName = "categories"

type MongoCategoryStore struct {
	collection *mongo.Collection
}

var _ CategoryStore = (*MongoCategoryStore)(nil)

func NewMongoCategoryStore(db *mongo.Database) *MongoCategoryStore {
	return &MongoCategoryStore{collection: db.Collection(categoryCollectionName)}
}

func (s *MongoCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	slog.Info("inserted category", "category_id", category.ID.Hex())
	return nil
}

func (s *MongoCategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", id, domain.ErrNotFound)
	}

	var category domain.Category
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (s *MongoCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *MongoCategoryStore) Update(ctx context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", id, domain.ErrNotFound)
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Image != "" {
		set["image"] = input.Image
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	slog.Info("updated category", "category_id", id, "modified", result.ModifiedCount)
	return s.GetByID(ctx, id)
}

func (s *MongoCategoryStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid category id %q: %w", id, domain.ErrNotFound)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	slog.Info("deleted category", "category_id", id)
	return nil
}
