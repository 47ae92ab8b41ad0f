package services

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TourNest/internal/models"
)

// CreateReview stores a review and brings the owning tour's rating
// aggregates up to date.
func CreateReview(ctx context.Context, review *models.Review) error {
	if err := reviews.Create(ctx, review); err != nil {
		return err
	}
	recalcRatings(ctx, review.Tour)
	return nil
}

// UpdateReview applies a partial update and recalculates ratings.
func UpdateReview(ctx context.Context, id string, update bson.M) (*models.Review, error) {
	review, err := reviews.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}
	recalcRatings(ctx, review.Tour)
	return review, nil
}

// DeleteReview removes a review and recalculates ratings.
func DeleteReview(ctx context.Context, id string) error {
	review, err := reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := reviews.DeleteByID(ctx, id); err != nil {
		return err
	}
	recalcRatings(ctx, review.Tour)
	return nil
}

// recalcRatings recomputes ratingsAverage/ratingsQuantity on a tour from
// its reviews. A failure here only leaves the aggregates stale, so it is
// logged instead of failing the request.
func recalcRatings(ctx context.Context, tourID primitive.ObjectID) {
	pipeline := []bson.M{
		{"$match": bson.M{"tour": tourID}},
		{"$group": bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}},
	}

	cursor, err := reviews.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("failed to aggregate review ratings: %v", err)
		return
	}
	defer cursor.Close(ctx)

	stats := []bson.M{}
	if err := cursor.All(ctx, &stats); err != nil {
		log.Printf("failed to decode review ratings: %v", err)
		return
	}

	set := bson.M{"ratingsQuantity": 0, "ratingsAverage": 4.5}
	if len(stats) > 0 {
		set = bson.M{
			"ratingsQuantity": stats[0]["nRating"],
			"ratingsAverage":  stats[0]["avgRating"],
		}
	}
	_, err = tours.Collection().UpdateOne(ctx, bson.M{"_id": tourID}, bson.M{"$set": set})
	if err != nil {
		log.Printf("failed to update tour ratings: %v", err)
	}
}
