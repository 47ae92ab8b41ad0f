package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/middleware"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/query"
	"github.com/arzan03/TourNest/internal/repository"
	"github.com/arzan03/TourNest/internal/services"
)

// CreateReview creates a review. On the nested route the tour id comes
// from the path; the author is always the authenticated user.
func CreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return apperror.BadRequest("invalid request body")
	}

	if tourID := c.Params("tourId"); tourID != "" {
		objID, err := primitive.ObjectIDFromHex(tourID)
		if err != nil {
			return apperror.NotFound("no tour found with that ID")
		}
		review.Tour = objID
	}
	review.User = middleware.CurrentUser(c).ID

	if problems := review.Validate(); len(problems) > 0 {
		return apperror.BadRequest(problems[0])
	}
	if _, err := services.Tours().FindByID(c.Context(), review.Tour.Hex()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("no tour found with that ID")
		}
		return err
	}

	if err := services.CreateReview(c.Context(), &review); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"data": review},
	})
}

// GetAllReviews lists reviews; on the nested route it is scoped to one
// tour by injecting the tour id into the query filter.
func GetAllReviews(c *fiber.Ctx) error {
	spec := query.Translate(c.Queries())
	if tourID := c.Params("tourId"); tourID != "" {
		objID, err := primitive.ObjectIDFromHex(tourID)
		if err != nil {
			return apperror.NotFound("no tour found with that ID")
		}
		spec.Filter["tour"] = objID
	}

	docs, err := services.Reviews().Find(c.Context(), spec)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(docs),
		"data":    fiber.Map{"data": docs},
	})
}

// UpdateReview applies a partial update and keeps tour ratings in sync.
func UpdateReview(c *fiber.Ctx) error {
	update := map[string]interface{}{}
	if err := c.BodyParser(&update); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	for _, field := range []string{"_id", "id", "tour", "user"} {
		delete(update, field)
	}
	if len(update) == 0 {
		return apperror.BadRequest("nothing to update")
	}

	review, err := services.UpdateReview(c.Context(), c.Params("id"), bson.M{"$set": update})
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("no review found with that ID")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"data": review},
	})
}

// DeleteReview removes a review and keeps tour ratings in sync.
func DeleteReview(c *fiber.Ctx) error {
	err := services.DeleteReview(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("no review found with that ID")
	}
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
