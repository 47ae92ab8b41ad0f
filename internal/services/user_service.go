package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arzan03/TourNest/internal/models"
)

// UpdateMeInput is the allow-list for self-service profile updates.
// Password fields are rejected at the handler before this is built.
type UpdateMeInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"-"`
}

// UpdateMe applies a partial profile update for the logged-in user.
func UpdateMe(ctx context.Context, id string, in UpdateMeInput) (*models.User, error) {
	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if in.Photo != "" {
		set["photo"] = in.Photo
	}
	if len(set) == 0 {
		return users.FindByID(ctx, id)
	}
	return users.UpdateByID(ctx, id, bson.M{"$set": set})
}

// DeleteMe soft-deletes the account: the document stays but disappears
// from every default lookup, including token verification.
func DeleteMe(ctx context.Context, id string) error {
	_, err := users.UpdateByID(ctx, id, bson.M{"$set": bson.M{"active": false}})
	return err
}
