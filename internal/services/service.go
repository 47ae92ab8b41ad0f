// Package services holds the application core: authentication,
// credential and reset-token handling, and the tour/review logic that
// goes beyond plain CRUD.
package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arzan03/TourNest/internal/mail"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/repository"
	"github.com/arzan03/TourNest/internal/token"
)

var (
	users   *repository.Repository[models.User]
	tours   *repository.Repository[models.Tour]
	reviews *repository.Repository[models.Review]
	tokens  *token.Manager
	mailer  mail.Sender
)

// Init wires the repositories and collaborators. Soft-deleted users and
// secret tours are excluded from every default read; derived tour fields
// are filled in by explicit pre-save stages.
func Init(db *mongo.Database, tm *token.Manager, sender mail.Sender) {
	users = repository.New(db.Collection("users"),
		repository.WithFindFilter[models.User](bson.M{"active": bson.M{"$ne": false}}),
	)
	tours = repository.New(db.Collection("tours"),
		repository.WithFindFilter[models.Tour](bson.M{"secretTour": bson.M{"$ne": true}}),
		repository.WithPreSave(func(t *models.Tour) error {
			t.Slug = models.Slugify(t.Name)
			if t.CreatedAt.IsZero() {
				t.CreatedAt = time.Now()
			}
			if t.RatingsAverage == 0 {
				t.RatingsAverage = 4.5
			}
			return nil
		}),
	)
	reviews = repository.New(db.Collection("reviews"),
		repository.WithPreSave(func(r *models.Review) error {
			if r.CreatedAt.IsZero() {
				r.CreatedAt = time.Now()
			}
			return nil
		}),
	)
	tokens = tm
	mailer = sender
}

// Users exposes the user repository to the HTTP layer.
func Users() *repository.Repository[models.User] { return users }

// Tours exposes the tour repository to the HTTP layer.
func Tours() *repository.Repository[models.Tour] { return tours }

// Reviews exposes the review repository to the HTTP layer.
func Reviews() *repository.Repository[models.Review] { return reviews }
