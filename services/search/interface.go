package search

import (
	"context"

	"estately/models"
)

// PropertySearchService matches listings against extracted slots.
type PropertySearchService interface {
	// Search returns listings matching the slots, capped at the configured limit.
	Search(ctx context.Context, slots models.Slots) ([]models.Property, error)
	// Add stores a new listing.
	Add(ctx context.Context, prop *models.Property) (*models.Property, error)
}
