package search

import (
	"context"
	"fmt"

	propertyRepo "estately/database/repository/property"
	"estately/models"
	"estately/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultResultLimit caps how many listings one search returns.
const DefaultResultLimit = 10

// DefaultPropertySearchService implements PropertySearchService on top of
// the property repository.
type DefaultPropertySearchService struct {
	Repo  propertyRepo.PropertyRepository
	Limit int
}

func (s *DefaultPropertySearchService) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultResultLimit
}

// Search returns listings matching the slots. Matching semantics live in the
// repository; this layer only logs and caps results.
func (s *DefaultPropertySearchService) Search(ctx context.Context, slots models.Slots) ([]models.Property, error) {
	logger := utils.GetLogger()

	props, err := s.Repo.Search(slots, s.limit())
	if err != nil {
		return nil, fmt.Errorf("property search: %w", err)
	}

	logger.Debug("property search completed",
		zap.String("location", slots.Location),
		zap.Int("results", len(props)))
	return props, nil
}

// Add stores a new listing, assigning its ID.
func (s *DefaultPropertySearchService) Add(ctx context.Context, prop *models.Property) (*models.Property, error) {
	if prop.Title == "" {
		return nil, fmt.Errorf("property title is required")
	}
	prop.ID = uuid.New().String()
	if err := s.Repo.Create(prop); err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}
	return prop, nil
}
