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

const orderCollectionName = "orders"

type MongoOrderStore struct {
	collection *mongo.Collection
}

var _ OrderStore = (*MongoOrderStore)(nil)

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection(orderCollectionName)}
}

func (s *MongoOrderStore) Create(ctx context.Context, order *domain.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	slog.Info("inserted order", "order_id", order.ID.Hex(), "customer", order.CustomerName)
	return nil
}

func (s *MongoOrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", id, domain.ErrNotFound)
	}

	var order domain.Order
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (s *MongoOrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", id, domain.ErrNotFound)
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}

	slog.Info("updated order status", "order_id", id, "status", status)
	return s.GetByID(ctx, id)
}
