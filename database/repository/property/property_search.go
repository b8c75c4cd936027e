// File: database/repository/property/property_search.go
package propertyRepo

import (
	"fmt"
	"regexp"
	"time"

	"estately/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Search retrieves listings matching the extracted slots. Matching semantics:
// equality on action/category/type, case-insensitive substring on location
// against both location and city, and an inclusive price range built from
// whichever budget bounds are set.
func (r *MongoPropertyRepo) Search(slots models.Slots, limit int) ([]models.Property, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := buildSearchFilter(slots)

	opts := options.Find().
		SetSort(bson.D{{Key: "price", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer cursor.Close(ctx)

	var props []models.Property
	if err := cursor.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return props, nil
}

func buildSearchFilter(slots models.Slots) bson.M {
	filter := bson.M{}

	if slots.Action != "" {
		filter["action"] = slots.Action
	}
	if slots.Category != "" {
		filter["category"] = slots.Category
	}
	if slots.Type != "" {
		filter["type"] = slots.Type
	}

	if slots.Location != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(slots.Location), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"location": pattern},
			bson.M{"city": pattern},
		}
	}

	price := bson.M{}
	if slots.BudgetMin != nil {
		price["$gte"] = *slots.BudgetMin
	}
	if slots.BudgetMax != nil {
		price["$lte"] = *slots.BudgetMax
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}
