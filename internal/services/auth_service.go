package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/arzan03/TourNest/internal/apperror"
	"github.com/arzan03/TourNest/internal/mail"
	"github.com/arzan03/TourNest/internal/models"
	"github.com/arzan03/TourNest/internal/repository"
)

// bcryptCost is the fixed work factor for password digests.
const bcryptCost = 12

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = 10 * time.Minute

// mailTimeout bounds the outbound email call so a stuck provider cannot
// hold the request forever.
const mailTimeout = 10 * time.Second

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SignupInput is the full set of fields a signup may assign. Anything
// else in the request body is dropped before it reaches the database.
type SignupInput struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	PasswordConfirm   string     `json:"passwordConfirm"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt"`
}

func validatePassword(password, confirm string) error {
	if len(password) < 8 {
		return apperror.BadRequest("password must have at least 8 characters")
	}
	if password != confirm {
		return apperror.BadRequest("passwords are not the same")
	}
	return nil
}

// Signup creates a user from the allow-listed input and logs it in.
// The role is always "user"; privileged roles are assigned by an admin.
func Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return nil, "", apperror.BadRequest("please provide name and email")
	}
	if err := validatePassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, "", err
	}

	if _, err := users.FindOne(ctx, bson.M{"email": in.Email}); err == nil {
		return nil, "", apperror.BadRequest("email already in use")
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:              in.Name,
		Email:             in.Email,
		Role:              models.RoleUser,
		Password:          hashed,
		PasswordChangedAt: in.PasswordChangedAt,
	}
	if err := users.Create(ctx, &user); err != nil {
		return nil, "", err
	}

	tok, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return &user, tok, nil
}

// Login verifies credentials and issues a session token. A missing user
// and a wrong password yield the identical error so accounts cannot be
// enumerated.
func Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperror.BadRequest("please provide email and password")
	}

	invalid := apperror.Unauthorized("incorrect email or password")

	user, err := users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return nil, "", invalid
	}
	if !VerifyPassword(password, user.Password) {
		return nil, "", invalid
	}

	tok, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// GetUserByID reloads a token subject. Soft-deleted users are invisible
// here, so their tokens stop working.
func GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return users.FindByID(ctx, id)
}

// UpdatePassword changes the password of a logged-in user after
// re-verifying the current one, then issues a fresh token.
func UpdatePassword(ctx context.Context, user *models.User, current, password, confirm string) (string, error) {
	if !VerifyPassword(current, user.Password) {
		return "", apperror.Unauthorized("your current password is wrong")
	}
	if err := validatePassword(password, confirm); err != nil {
		return "", err
	}

	if err := setPassword(ctx, user.ID.Hex(), password); err != nil {
		return "", err
	}
	return tokens.Issue(user.ID.Hex())
}

// setPassword is the single path through which a password reaches the
// database: always rehashed, never plaintext. passwordChangedAt is put
// one second in the past so a token issued right after stays valid.
func setPassword(ctx context.Context, id, password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	changedAt := time.Now().Add(-time.Second)
	_, err = users.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":          hashed,
			"passwordChangedAt": changedAt,
		},
		"$unset": bson.M{
			"passwordResetToken":     "",
			"passwordResetExpiresIn": "",
		},
	})
	return err
}

// GenerateResetToken creates a single-use reset token: the plain value
// goes to the user out of band, only its hash and expiry are stored.
func GenerateResetToken() (plain, hashed string, expiresAt time.Time, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), time.Now().Add(resetTokenTTL), nil
}

// HashResetToken is the deterministic one-way hash used for lookups.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword stores a hashed reset token on the user and emails the
// plain value. If delivery fails the stored token is rolled back so no
// unusable record is left behind.
func ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := users.FindOne(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return apperror.NotFound("there is no user with this email address")
	}

	plain, hashed, expiresAt, err := GenerateResetToken()
	if err != nil {
		return err
	}

	id := user.ID.Hex()
	_, err = users.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"passwordResetToken":     hashed,
		"passwordResetExpiresIn": expiresAt,
	}})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(resetURLBase, "/"), plain)
	body := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s.\nIf you didn't forget your password, please ignore this email.", resetURL)

	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	err = mailer.Send(mailCtx, mail.Email{
		To:      user.Email,
		Subject: "Your password reset token (valid for 10 min)",
		Body:    body,
	})
	if err != nil {
		// Roll back so no dangling token record survives a failed send.
		users.UpdateByID(context.WithoutCancel(ctx), id, bson.M{"$unset": bson.M{
			"passwordResetToken":     "",
			"passwordResetExpiresIn": "",
		}})
		return apperror.Internal("there was an error sending the email, try again later", err)
	}
	return nil
}

// ResetPassword consumes a reset token: matches its hash with an expiry
// in the future, sets the new password and clears both stored fields so
// the token cannot be used twice. Returns a fresh session token.
func ResetPassword(ctx context.Context, plainToken, password, confirm string) (*models.User, string, error) {
	user, err := users.FindOne(ctx, bson.M{
		"passwordResetToken":     HashResetToken(plainToken),
		"passwordResetExpiresIn": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, "", apperror.BadRequest("token is invalid or has expired")
		}
		return nil, "", err
	}
	if err := validatePassword(password, confirm); err != nil {
		return nil, "", err
	}

	id := user.ID.Hex()
	if err := setPassword(ctx, id, password); err != nil {
		return nil, "", err
	}

	tok, err := tokens.Issue(id)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}
