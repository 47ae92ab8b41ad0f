package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTranslateFull(t *testing.T) {
	spec := Translate(map[string]string{
		"price[gte]": "100",
		"sort":       "-price,name",
		"page":       "2",
		"limit":      "10",
	})

	assert.Equal(t, bson.M{"price": bson.M{"$gte": int64(100)}}, spec.Filter)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "name", Value: 1}}, spec.Sort)
	assert.Equal(t, int64(2), spec.Page)
	assert.Equal(t, int64(10), spec.Limit)
	assert.Equal(t, int64(10), spec.Skip())
}

func TestTranslateDefaults(t *testing.T) {
	spec := Translate(map[string]string{})

	assert.Empty(t, spec.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, spec.Sort)
	assert.Nil(t, spec.Projection)
	assert.Equal(t, int64(DefaultPage), spec.Page)
	assert.Equal(t, int64(DefaultLimit), spec.Limit)
	assert.Equal(t, int64(0), spec.Skip())
}

func TestTranslatePaginationFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
	}{
		{"non-numeric", "abc", "xyz"},
		{"zero", "0", "0"},
		{"negative", "-3", "-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Translate(map[string]string{"page": tt.page, "limit": tt.limit})
			assert.Equal(t, int64(DefaultPage), spec.Page)
			assert.Equal(t, int64(DefaultLimit), spec.Limit)
		})
	}
}

func TestTranslateEqualityPassThrough(t *testing.T) {
	spec := Translate(map[string]string{
		"difficulty":  "easy",
		"duration":    "5",
		"secretTour":  "false",
		"ratingsAvg":  "4.7",
		"customField": "whatever",
	})

	assert.Equal(t, bson.M{
		"difficulty":  "easy",
		"duration":    int64(5),
		"secretTour":  false,
		"ratingsAvg":  4.7,
		"customField": "whatever",
	}, spec.Filter)
}

func TestTranslateOperatorMerge(t *testing.T) {
	spec := Translate(map[string]string{
		"price[gte]": "100",
		"price[lt]":  "500",
	})

	cond, ok := spec.Filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, int64(100), cond["$gte"])
	assert.Equal(t, int64(500), cond["$lt"])
}

func TestTranslateUnknownOperatorSuffix(t *testing.T) {
	spec := Translate(map[string]string{"price[between]": "100"})

	// Unrecognised suffixes are not operators; the key passes through.
	assert.Equal(t, bson.M{"price[between]": int64(100)}, spec.Filter)
}

func TestTranslateSort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bson.D
	}{
		{"single ascending", "price", bson.D{{Key: "price", Value: 1}}},
		{"single descending", "-price", bson.D{{Key: "price", Value: -1}}},
		{"mixed", "-ratingsAverage,price", bson.D{{Key: "ratingsAverage", Value: -1}, {Key: "price", Value: 1}}},
		{"empty falls back", ",", bson.D{{Key: "createdAt", Value: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Translate(map[string]string{"sort": tt.raw})
			assert.Equal(t, tt.want, spec.Sort)
		})
	}
}

func TestTranslateFields(t *testing.T) {
	inclusion := Translate(map[string]string{"fields": "name,price,duration"})
	assert.Equal(t, bson.M{"name": 1, "price": 1, "duration": 1}, inclusion.Projection)

	exclusion := Translate(map[string]string{"fields": "-description,-images"})
	assert.Equal(t, bson.M{"description": 0, "images": 0}, exclusion.Projection)

	// Mixed projections are invalid in the store; the first entry wins.
	mixed := Translate(map[string]string{"fields": "name,-price"})
	assert.Equal(t, bson.M{"name": 1}, mixed.Projection)
}

func TestFindOptions(t *testing.T) {
	spec := Translate(map[string]string{
		"page":   "3",
		"limit":  "20",
		"fields": "name",
	})
	opts := spec.FindOptions()

	require.NotNil(t, opts.Limit)
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, int64(40), *opts.Skip)
	assert.Equal(t, bson.M{"name": 1}, opts.Projection)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestListScenario(t *testing.T) {
	// GET /tours?difficulty=easy&sort=-ratingsAverage&limit=2
	spec := Translate(map[string]string{
		"difficulty": "easy",
		"sort":       "-ratingsAverage",
		"limit":      "2",
	})

	assert.Equal(t, bson.M{"difficulty": "easy"}, spec.Filter)
	assert.Equal(t, bson.D{{Key: "ratingsAverage", Value: -1}}, spec.Sort)
	assert.Equal(t, int64(2), spec.Limit)
	assert.Equal(t, int64(0), spec.Skip())
}
