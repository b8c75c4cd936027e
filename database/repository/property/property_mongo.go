package propertyRepo

import (
	"context"
	"fmt"
	"time"

	"estately/database"
	"estately/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPropertyRepo implements PropertyRepository using MongoDB.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo creates a new instance of PropertyRepository using MongoDB.
func NewMongoPropertyRepo() PropertyRepository {
	coll := database.MongoClient.Database("estately").Collection("properties")
	repo := &MongoPropertyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in search filters.
func (r *MongoPropertyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "category", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new property listing.
func (r *MongoPropertyRepo) Create(prop *models.Property) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	prop.CreatedAt = now
	prop.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, prop)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by its unique ID.
func (r *MongoPropertyRepo) GetByID(id string) (*models.Property, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prop models.Property
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&prop); err != nil {
		return nil, fmt.Errorf("failed to fetch property with id %s: %w", id, err)
	}
	return &prop, nil
}

// Delete removes a listing by its ID.
func (r *MongoPropertyRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("property with id %s not found", id)
	}
	return nil
}
