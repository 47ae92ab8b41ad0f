package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTour() Tour {
	return Tour{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   "easy",
		Price:        397,
		Summary:      "Breathtaking hike through the forests",
		ImageCover:   "tour-1-cover.jpg",
	}
}

func TestTourValidateOK(t *testing.T) {
	tour := validTour()
	assert.Empty(t, tour.Validate())
}

func TestTourValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tour)
	}{
		{"name too short", func(tr *Tour) { tr.Name = "short" }},
		{"name too long", func(tr *Tour) { tr.Name = "this tour name is way too long to be accepted" }},
		{"missing duration", func(tr *Tour) { tr.Duration = 0 }},
		{"missing group size", func(tr *Tour) { tr.MaxGroupSize = 0 }},
		{"bad difficulty", func(tr *Tour) { tr.Difficulty = "extreme" }},
		{"rating out of range", func(tr *Tour) { tr.RatingsAverage = 5.5 }},
		{"missing price", func(tr *Tour) { tr.Price = 0 }},
		{"discount above price", func(tr *Tour) { tr.PriceDiscount = 500 }},
		{"missing summary", func(tr *Tour) { tr.Summary = "" }},
		{"missing cover image", func(tr *Tour) { tr.ImageCover = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tour := validTour()
			tt.mutate(&tour)
			assert.NotEmpty(t, tour.Validate())
		})
	}
}

func TestReviewValidate(t *testing.T) {
	review := Review{Review: "Loved it", Rating: 5}
	// Missing tour and user references.
	assert.Len(t, review.Validate(), 2)

	review.Rating = 0
	assert.Contains(t, review.Validate(), "rating must be between 1 and 5")

	review.Review = ""
	assert.Contains(t, review.Validate(), "review cannot be empty")
}
