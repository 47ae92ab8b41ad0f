package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Review    string             `bson:"review" json:"review"`
	Rating    float64            `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Tour      primitive.ObjectID `bson:"tour" json:"tour"`
	User      primitive.ObjectID `bson:"user" json:"user"`
}

func (r *Review) SetID(id primitive.ObjectID) {
	r.ID = id
}

func (r *Review) Validate() []string {
	var problems []string
	if r.Review == "" {
		problems = append(problems, "review cannot be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		problems = append(problems, "rating must be between 1 and 5")
	}
	if r.Tour.IsZero() {
		problems = append(problems, "review must belong to a tour")
	}
	if r.User.IsZero() {
		problems = append(problems, "review must belong to a user")
	}
	return problems
}
