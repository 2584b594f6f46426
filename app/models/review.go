package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a customer testimonial. Reviews are append-only.
type Review struct {
	ID      primitive.ObjectID `json:"_id,omitzero"       bson:"_id,omitempty"`
	Name    string             `json:"name,omitempty"     bson:"name,omitempty"`
	Email   string             `json:"email,omitempty"    bson:"email,omitempty"    validate:"nullable,email"`
	Image   string             `json:"image,omitempty"    bson:"image,omitempty"`
	Rating  *float64           `json:"rating,omitempty"   bson:"rating,omitempty"   validate:"nullable,gte=0,lte=5"`
	Comment string             `json:"comment,omitempty"  bson:"comment,omitempty"`
	Extra   bson.M             `json:"-"                  bson:",inline"`
}

type reviewFields Review

func (r Review) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(reviewFields(r), r.Extra)
}

func (r *Review) UnmarshalJSON(data []byte) error {
	return unmarshalWithExtra(data, (*reviewFields)(r), &r.Extra)
}
