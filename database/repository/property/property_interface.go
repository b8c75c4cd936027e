package propertyRepo

import (
	"estately/models"
)

// PropertyRepository defines methods for property listing data access.
type PropertyRepository interface {
	// Create inserts a new property listing.
	Create(prop *models.Property) error
	// GetByID retrieves a listing by its unique ID.
	GetByID(id string) (*models.Property, error)
	// Search retrieves listings matching the given extracted slots.
	Search(slots models.Slots, limit int) ([]models.Property, error)
	// Delete removes a listing by its ID.
	Delete(id string) error
}
