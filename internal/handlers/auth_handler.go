package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/config"
	"github.com/arzan03/TourNest/internal/middleware"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/services"
)

var cfg *config.Config

// Init hands the handlers the process configuration.
func Init(c *config.Config) {
	cfg = c
}

// sendToken sets the session cookie and renders the login envelope.
func sendToken(c *fiber.Ctx, status int, user *models.User, tok string) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    tok,
		Expires:  time.Now().Add(time.Duration(cfg.JWTCookieExpiresIn) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Env == "production",
	})
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"token":  tok,
		"data":   fiber.Map{"user": user},
	})
}

func Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	user, tok, err := services.Signup(c.Context(), in)
	if err != nil {
		return err
	}
	return sendToken(c, fiber.StatusCreated, user, tok)
}

func Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	user, tok, err := services.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return sendToken(c, fiber.StatusOK, user, tok)
}

func ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return apperror.BadRequest("please provide your email address")
	}

	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", c.Protocol(), c.Hostname())
	if err := services.ForgotPassword(c.Context(), in.Email, resetURLBase); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "token sent to email",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := c.BodyParser(&in); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	user, tok, err := services.ResetPassword(c.Context(), c.Params("token"), in.Password, in.PasswordConfirm)
	if err != nil {
		return err
	}
	return sendToken(c, fiber.StatusOK, user, tok)
}

// UpdatePassword changes the password of the logged-in user; runs behind
// Protect.
func UpdatePassword(c *fiber.Ctx) error {
	var in struct {
		PasswordCurrent string `json:"passwordCurrent"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := c.BodyParser(&in); err != nil {
		return apperror.BadRequest("invalid request body")
	}

	user := middleware.CurrentUser(c)
	tok, err := services.UpdatePassword(c.Context(), user, in.PasswordCurrent, in.Password, in.PasswordConfirm)
	if err != nil {
		return err
	}
	return sendToken(c, fiber.StatusOK, user, tok)
}
