package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is one checkout. Email references the owner loosely; nothing
// enforces that a matching user exists.
type Order struct {
	ID          primitive.ObjectID `json:"_id,omitzero"           bson:"_id,omitempty"`
	Email       string             `json:"email"                  bson:"email"                  validate:"required,email"`
	Name        string             `json:"name,omitempty"         bson:"name,omitempty"`
	Address     string             `json:"address,omitempty"      bson:"address,omitempty"`
	Phone       string             `json:"phone,omitempty"        bson:"phone,omitempty"`
	ProductID   string             `json:"productId,omitempty"    bson:"productId,omitempty"`
	ProductName string             `json:"productName,omitempty"  bson:"productName,omitempty"`
	Price       float64            `json:"price,omitempty"        bson:"price,omitempty"        validate:"gte=0"`
	Quantity    int                `json:"quantity,omitempty"     bson:"quantity,omitempty"     validate:"nullable,min=1"`
	Status      string             `json:"status,omitempty"       bson:"status,omitempty"`
	Extra       bson.M             `json:"-"                      bson:",inline"`
}

type orderFields Order

func (o Order) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(orderFields(o), o.Extra)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	return unmarshalWithExtra(data, (*orderFields)(o), &o.Extra)
}
