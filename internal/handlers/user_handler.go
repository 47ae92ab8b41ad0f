package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/middleware"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/repository"
	"github.com/arzan03/TourNest/internal/services"
	"github.com/arzan03/TourNest/internal/storage"
)

// GetMe returns the logged-in user's own profile.
func GetMe(c *fiber.Ctx) error {
	user, err := services.GetUserByID(c.Context(), middleware.CurrentUser(c).ID.Hex())
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("no user found with that ID")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"data": user},
	})
}

// UpdateMe updates the logged-in user's profile from an allow-list of
// fields. Password changes must go through /updateMyPassword. An
// optional multipart "photo" is stored in the object store.
func UpdateMe(c *fiber.Ctx) error {
	// JSON bodies land in the map; multipart and form bodies are read
	// through FormValue below.
	var body map[string]interface{}
	_ = c.BodyParser(&body)
	_, hasPassword := body["password"]
	_, hasConfirm := body["passwordConfirm"]
	if hasPassword || hasConfirm || c.FormValue("password") != "" || c.FormValue("passwordConfirm") != "" {
		return apperror.BadRequest("this route is not for password updates, please use /updateMyPassword")
	}

	in := services.UpdateMeInput{}
	if name, ok := body["name"].(string); ok {
		in.Name = name
	} else {
		in.Name = c.FormValue("name")
	}
	if email, ok := body["email"].(string); ok {
		in.Email = email
	} else {
		in.Email = c.FormValue("email")
	}

	user := middleware.CurrentUser(c)
	if fileHeader, err := c.FormFile("photo"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return apperror.BadRequest("failed to open uploaded photo")
		}
		defer file.Close()

		objectName := fmt.Sprintf("users/%s%s", user.ID.Hex(), filepath.Ext(fileHeader.Filename))
		url, err := storage.UploadImage(c.Context(), objectName, file, fileHeader.Size,
			fileHeader.Header.Get("Content-Type"))
		if err != nil {
			return err
		}
		in.Photo = url
	}

	updated, err := services.UpdateMe(c.Context(), user.ID.Hex(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": updated},
	})
}

// CheckUserUpdate guards the admin user update: a role written through
// it must be one of the known roles, otherwise the user would match no
// authorization list at all.
func CheckUserUpdate(update map[string]interface{}) error {
	if raw, ok := update["role"]; ok {
		role, _ := raw.(string)
		if !models.ValidRole(models.Role(role)) {
			return apperror.BadRequest("role is either: user, guide, lead-guide, admin")
		}
	}
	return nil
}

// DeleteMe soft-deletes the logged-in user's account.
func DeleteMe(c *fiber.Ctx) error {
	if err := services.DeleteMe(c.Context(), middleware.CurrentUser(c).ID.Hex()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUser exists to keep the admin CRUD surface symmetric; accounts
// are only created through signup.
func CreateUser(c *fiber.Ctx) error {
	return apperror.Internal("this route is not defined, please use /signup instead", nil)
}
