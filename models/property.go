package models

import "time"

// Property is a static listing matched against extracted slots by the
// property search service.
type Property struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Action    string    `bson:"action" json:"action"`     // buy | rent
	Category  string    `bson:"category" json:"category"` // residential | commercial
	Type      string    `bson:"type" json:"type"`         // flat | villa | plot | house
	Location  string    `bson:"location" json:"location"`
	City      string    `bson:"city" json:"city"`
	Price     float64   `bson:"price" json:"price"`
	AreaSqFt  float64   `bson:"areaSqFt,omitempty" json:"areaSqFt,omitempty"`
	Bedrooms  int       `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms int       `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Contact   string    `bson:"contact,omitempty" json:"contact,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
