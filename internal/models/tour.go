package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a GeoJSON point with tour-specific metadata.
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Day         int       `bson:"day,omitempty" json:"day,omitempty"`
}

type Tour struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string               `bson:"name" json:"name"`
	Slug            string               `bson:"slug,omitempty" json:"slug,omitempty"`
	Duration        float64              `bson:"duration" json:"duration"`
	MaxGroupSize    int                  `bson:"maxGroupSize" json:"maxGroupSize"`
	Difficulty      string               `bson:"difficulty" json:"difficulty"`
	RatingsAverage  float64              `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int                  `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64              `bson:"price" json:"price"`
	PriceDiscount   float64              `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty"`
	Summary         string               `bson:"summary" json:"summary"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string               `bson:"imageCover" json:"imageCover"`
	Images          []string             `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	StartDates      []time.Time          `bson:"startDates,omitempty" json:"startDates,omitempty"`
	SecretTour      bool                 `bson:"secretTour" json:"-"`
	StartLocation   *Location            `bson:"startLocation,omitempty" json:"startLocation,omitempty"`
	Locations       []Location           `bson:"locations,omitempty" json:"locations,omitempty"`
	Guides          []primitive.ObjectID `bson:"guides,omitempty" json:"guides,omitempty"`
}

func (t *Tour) SetID(id primitive.ObjectID) {
	t.ID = id
}

// Validate checks the field constraints that the document store cannot
// enforce on its own. Returns a human-readable message per violation.
func (t *Tour) Validate() []string {
	var problems []string
	if len(t.Name) < 10 || len(t.Name) > 40 {
		problems = append(problems, "a tour name must have between 10 and 40 characters")
	}
	if t.Duration <= 0 {
		problems = append(problems, "a tour must have a duration")
	}
	if t.MaxGroupSize <= 0 {
		problems = append(problems, "a tour must have a group size")
	}
	switch t.Difficulty {
	case "easy", "medium", "difficult":
	default:
		problems = append(problems, "difficulty is either: easy, medium, difficult")
	}
	if t.RatingsAverage != 0 && (t.RatingsAverage < 1 || t.RatingsAverage > 5) {
		problems = append(problems, "rating must be between 1.0 and 5.0")
	}
	if t.Price <= 0 {
		problems = append(problems, "a tour must have a price")
	}
	if t.PriceDiscount != 0 && t.PriceDiscount >= t.Price {
		problems = append(problems, "discount price should be below regular price")
	}
	if t.Summary == "" {
		problems = append(problems, "a tour must have a summary")
	}
	if t.ImageCover == "" {
		problems = append(problems, "a tour must have a cover image")
	}
	return problems
}
