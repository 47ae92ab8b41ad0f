package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of user roles used for route authorization.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  Role               `bson:"role" json:"role"`
	// Bcrypt digest. Never serialized outward.
	Password               string     `bson:"password" json:"-"`
	PasswordChangedAt      *time.Time `bson:"passwordChangedAt,omitempty" json:"-"`
	PasswordResetToken     string     `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpiresIn *time.Time `bson:"passwordResetExpiresIn,omitempty" json:"-"`
	Active                 *bool      `bson:"active,omitempty" json:"-"`
}

func (u *User) SetID(id primitive.ObjectID) {
	u.ID = id
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change must be
// rejected.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// Compare at second precision, matching the token's iat claim.
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
