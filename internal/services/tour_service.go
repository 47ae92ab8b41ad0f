package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// TourStats groups non-secret, well-rated tours by difficulty and
// reports rating and price aggregates.
func TourStats(ctx context.Context) ([]bson.M, error) {
	pipeline := []bson.M{
		// Secret tours are excluded from aggregations as well.
		{"$match": bson.M{"secretTour": bson.M{"$ne": true}}},
		{"$match": bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}},
		{"$group": bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}},
		{"$sort": bson.M{"avgPrice": 1}},
	}

	cursor, err := tours.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []bson.M{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan counts tour starts per month in the given year, busiest
// month first.
func MonthlyPlan(ctx context.Context, year int) ([]bson.M, error) {
	from, err := time.Parse(time.DateOnly, fmt.Sprintf("%d-01-01", year))
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(time.DateOnly, fmt.Sprintf("%d-12-31", year))
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"secretTour": bson.M{"$ne": true}}},
		{"$unwind": "$startDates"},
		{"$match": bson.M{"startDates": bson.M{"$gte": from, "$lte": to}}},
		{"$group": bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}},
		{"$addFields": bson.M{"month": "$_id"}},
		{"$project": bson.M{"_id": 0}},
		{"$sort": bson.M{"numTourStarts": -1}},
		{"$limit": 12},
	}

	cursor, err := tours.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plan := []bson.M{}
	if err := cursor.All(ctx, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}
