// Package repository provides generic document CRUD over a mongo
// collection. Schema middleware from the data model (derived fields,
// default read filters) is expressed as explicit hook stages invoked
// here, not as implicit store-side triggers.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arzan03/TourNest/internal/query"
)

var ErrNotFound = errors.New("document not found")

// Repository is a generic CRUD layer for one collection.
type Repository[T any] struct {
	coll       *mongo.Collection
	findFilter bson.M
	preSave    []func(*T) error
}

// Option configures a Repository at construction time.
type Option[T any] func(*Repository[T])

// WithFindFilter adds a predicate merged into every read, e.g. hiding
// soft-deleted users or secret tours from default lookups.
func WithFindFilter[T any](filter bson.M) Option[T] {
	return func(r *Repository[T]) {
		for k, v := range filter {
			r.findFilter[k] = v
		}
	}
}

// WithPreSave registers a transform run on the document before insert.
func WithPreSave[T any](hook func(*T) error) Option[T] {
	return func(r *Repository[T]) {
		r.preSave = append(r.preSave, hook)
	}
}

func New[T any](coll *mongo.Collection, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{coll: coll, findFilter: bson.M{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T]) Collection() *mongo.Collection {
	return r.coll
}

// scoped merges the repository's default read filter into a query filter.
// The request filter wins on key collisions.
func (r *Repository[T]) scoped(filter bson.M) bson.M {
	merged := bson.M{}
	for k, v := range r.findFilter {
		merged[k] = v
	}
	for k, v := range filter {
		merged[k] = v
	}
	return merged
}

// Create runs the pre-save stages and inserts the document, writing the
// generated id back onto it.
func (r *Repository[T]) Create(ctx context.Context, doc *T) error {
	for _, hook := range r.preSave {
		if err := hook(doc); err != nil {
			return err
		}
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		if setter, ok := any(doc).(interface{ SetID(primitive.ObjectID) }); ok {
			setter.SetID(id)
		}
	}
	return nil
}

// Find executes a translated query spec against the collection.
func (r *Repository[T]) Find(ctx context.Context, spec query.Spec) ([]T, error) {
	cursor, err := r.coll.Find(ctx, r.scoped(spec.Filter), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne returns the first document matching the filter, scoped by the
// default read filter.
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, r.scoped(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.FindOne(ctx, bson.M{"_id": objID})
}

// UpdateByID applies a partial update and returns the updated document.
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, update bson.M) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = r.coll.FindOneAndUpdate(ctx, r.scoped(bson.M{"_id": objID}), update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Repository[T]) DeleteByID(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, r.scoped(bson.M{"_id": objID}))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
