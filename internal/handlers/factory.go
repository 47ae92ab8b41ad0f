// Package handlers is the HTTP boundary: thin fiber handlers that parse
// requests, call into the services/repository layer and render the
// standard response envelope.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/query"
	"github.com/arzan03/TourNest/internal/repository"
)

// protectedFields can never be set through a generic update; passwords
// only change through the auth flow, which rehashes them.
var protectedFields = []string{
	"_id", "id",
	"password", "passwordConfirm", "passwordChangedAt",
	"passwordResetToken", "passwordResetExpiresIn",
}

// Validator is implemented by models that carry field constraints.
type Validator interface {
	Validate() []string
}

// GetAll lists documents of one entity type, driven entirely by the
// request's query string.
func GetAll[T any](repo *repository.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spec := query.Translate(c.Queries())
		docs, err := repo.Find(c.Context(), spec)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"results": len(docs),
			"data":    fiber.Map{"data": docs},
		})
	}
}

// GetOne fetches a document by its id path parameter.
func GetOne[T any](repo *repository.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := repo.FindByID(c.Context(), c.Params("id"))
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("no document found with that ID")
		}
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"status": "success",
			"data":   fiber.Map{"data": doc},
		})
	}
}

// CreateOne inserts a document parsed from the request body.
func CreateOne[T any](repo *repository.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doc T
		if err := c.BodyParser(&doc); err != nil {
			return apperror.BadRequest("invalid request body")
		}
		if v, ok := any(&doc).(Validator); ok {
			if problems := v.Validate(); len(problems) > 0 {
				return apperror.BadRequest(problems[0])
			}
		}
		if err := repo.Create(c.Context(), &doc); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status": "success",
			"data":   fiber.Map{"data": doc},
		})
	}
}

// UpdateOne applies a partial update from the request body and returns
// the updated document. Optional checks run on the surviving fields
// before anything reaches the repository.
func UpdateOne[T any](repo *repository.Repository[T], checks ...func(map[string]interface{}) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		update := map[string]interface{}{}
		if err := c.BodyParser(&update); err != nil {
			return apperror.BadRequest("invalid request body")
		}
		for _, field := range protectedFields {
			delete(update, field)
		}
		if len(update) == 0 {
			return apperror.BadRequest("nothing to update")
		}
		for _, check := range checks {
			if err := check(update); err != nil {
				return err
			}
		}

		doc, err := repo.UpdateByID(c.Context(), c.Params("id"), bson.M{"$set": update})
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("no document found with that ID")
		}
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"status": "success",
			"data":   fiber.Map{"data": doc},
		})
	}
}

// DeleteOne removes a document by id. Success is a bodyless 204.
func DeleteOne[T any](repo *repository.Repository[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := repo.DeleteByID(c.Context(), c.Params("id"))
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("no document found with that ID")
		}
		if err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
