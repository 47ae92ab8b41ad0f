package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/repository"
	"github.com/arzan03/TourNest/internal/services"
	"github.com/arzan03/TourNest/internal/token"
)

// UserKey is the fiber locals key under which Protect stores the
// authenticated user.
const UserKey = "user"

// extractToken pulls the session token from the Authorization header or
// the jwt cookie.
func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("jwt")
}

// Protect verifies the session token, reloads its subject and rejects
// tokens issued before the user's last password change. The user is
// stored in locals for downstream handlers.
func Protect(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return apperror.Unauthorized("you are not logged in, please log in to get access")
		}

		subject, issuedAt, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return apperror.Unauthorized("your token has expired, please log in again")
			}
			return apperror.Unauthorized("invalid token, please log in again")
		}

		user, err := services.GetUserByID(c.Context(), subject)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.Unauthorized("the user belonging to this token no longer exists")
			}
			return err
		}

		if user.ChangedPasswordAfter(issuedAt) {
			return apperror.Unauthorized("user recently changed the password, please log in again")
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

// Authorized is the pure role-membership check behind RestrictTo.
func Authorized(role models.Role, allowed ...models.Role) bool {
	return slices.Contains(allowed, role)
}

// RestrictTo allows only the given roles past; it must run after Protect.
func RestrictTo(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperror.Unauthorized("you are not logged in, please log in to get access")
		}
		if !Authorized(user.Role, roles...) {
			return apperror.Forbidden("you do not have permission to perform this action")
		}
		return c.Next()
	}
}
