package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/repository"
	"github.com/arzan03/TourNest/internal/services"
	"github.com/arzan03/TourNest/internal/storage"
)

// AliasTopTours presets the query string for the top-5-cheap listing and
// falls through to the generic tour listing.
func AliasTopTours(c *fiber.Ctx) error {
	c.Request().URI().SetQueryString("limit=5&sort=-ratingsAverage,price&fields=name,price,ratingsAverage,summary,difficulty")
	return c.Next()
}

// GetTourStats serves the by-difficulty aggregation.
func GetTourStats(c *fiber.Ctx) error {
	stats, err := services.TourStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"stats": stats},
	})
}

// GetMonthlyPlan serves tour starts per month for one year.
func GetMonthlyPlan(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return apperror.BadRequest("year must be a number")
	}
	plan, err := services.MonthlyPlan(c.Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"plan": plan},
	})
}

// UploadTourImages stores a multipart "imageCover" and/or "images" on a
// tour and saves the resulting URLs.
func UploadTourImages(c *fiber.Ctx) error {
	tourID := c.Params("id")
	if _, err := services.Tours().FindByID(c.Context(), tourID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("no tour found with that ID")
		}
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperror.BadRequest("expected a multipart form with images")
	}

	set := bson.M{}
	if covers := form.File["imageCover"]; len(covers) > 0 {
		url, err := uploadTourImage(c, tourID, "cover", covers[0])
		if err != nil {
			return err
		}
		set["imageCover"] = url
	}
	if files := form.File["images"]; len(files) > 0 {
		urls := make([]string, 0, len(files))
		for i, fh := range files {
			url, err := uploadTourImage(c, tourID, fmt.Sprintf("%d", i+1), fh)
			if err != nil {
				return err
			}
			urls = append(urls, url)
		}
		set["images"] = urls
	}
	if len(set) == 0 {
		return apperror.BadRequest("no images provided")
	}

	tour, err := services.Tours().UpdateByID(c.Context(), tourID, bson.M{"$set": set})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"data": tour},
	})
}

func uploadTourImage(c *fiber.Ctx, tourID, suffix string, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", apperror.BadRequest("failed to open uploaded image")
	}
	defer file.Close()

	objectName := fmt.Sprintf("tours/%s-%s%s", tourID, suffix, filepath.Ext(fh.Filename))
	return storage.UploadImage(c.Context(), objectName, file, fh.Size, fh.Header.Get("Content-Type"))
}
