// Package models declares the storefront's documents. Each field carries
// bson tags for the store, json tags for the API and validate tags checked
// when a request body is bound.
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue item.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitzero"           bson:"_id,omitempty"`
	Name        string             `json:"name"                   bson:"name"                  validate:"required,max=200"`
	Price       float64            `json:"price"                  bson:"price"                 validate:"gte=0"`
	Image       string             `json:"image,omitempty"        bson:"image,omitempty"`
	Category    string             `json:"category,omitempty"     bson:"category,omitempty"`
	Description string             `json:"description,omitempty"  bson:"description,omitempty"`
	Rating      float64            `json:"rating,omitempty"       bson:"rating,omitempty"      validate:"nullable,gte=0,lte=5"`
	Extra       bson.M             `json:"-"                      bson:",inline"`
}

type productFields Product

func (p Product) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(productFields(p), p.Extra)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	return unmarshalWithExtra(data, (*productFields)(p), &p.Extra)
}
