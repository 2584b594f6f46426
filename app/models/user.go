package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAdmin is the only role that grants the admin dashboard.
const RoleAdmin = "admin"

// User is a registered shopper, keyed by email.
type User struct {
	ID          primitive.ObjectID `json:"_id,omitzero"           bson:"_id,omitempty"`
	Email       string             `json:"email"                  bson:"email"                  validate:"required,email"`
	DisplayName string             `json:"displayName,omitempty"  bson:"displayName,omitempty"`
	Role        string             `json:"role,omitempty"         bson:"role,omitempty"`
	Extra       bson.M             `json:"-"                      bson:",inline"`
}

// IsAdmin reports whether the role is exactly "admin".
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type userFields User

func (u User) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(userFields(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	return unmarshalWithExtra(data, (*userFields)(u), &u.Extra)
}
