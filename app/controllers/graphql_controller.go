package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/collection"
	gql "github.com/shashiranjanraj/kidsisland/pkg/graphql"
)

// hexID resolves the "id" field of any model from its ObjectID.
func hexID(p graphql.ResolveParams) (interface{}, error) {
	switch v := p.Source.(type) {
	case models.Product:
		return v.ID.Hex(), nil
	case models.Order:
		return v.ID.Hex(), nil
	case models.Review:
		return v.ID.Hex(), nil
	}
	return nil, nil
}

func idField() *graphql.Field {
	return &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: hexID}
}

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          idField(),
		"name":        &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"image":       &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"rating":      &graphql.Field{Type: graphql.Float},
	},
})

var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"id":      idField(),
		"name":    &graphql.Field{Type: graphql.String},
		"image":   &graphql.Field{Type: graphql.String},
		"rating":  &graphql.Field{Type: graphql.Float},
		"comment": &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          idField(),
		"email":       &graphql.Field{Type: graphql.String},
		"name":        &graphql.Field{Type: graphql.String},
		"productId":   &graphql.Field{Type: graphql.String},
		"productName": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"quantity":    &graphql.Field{Type: graphql.Int},
		"status":      &graphql.Field{Type: graphql.String},
	},
})

// productCategories lists the distinct non-empty categories, sorted.
func productCategories(products []models.Product) []string {
	categories := collection.Map(products, func(p models.Product) string { return p.Category })
	named := collection.Filter(categories, func(c string) bool { return c != "" })
	return collection.Sorted(collection.Unique(named))
}

// NewGraphQLHandler exposes products, reviews and orders read-only.
func NewGraphQLHandler(repos repositories.Set) (http.HandlerFunc, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if limit, ok := p.Args["limit"].(int); ok {
						return repos.Products.ListLimited(p.Context, int64(limit))
					}
					return repos.Products.ListAll(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if !primitive.IsValidObjectID(id) {
						return nil, nil
					}
					return repos.Products.GetByID(p.Context, id)
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := repos.Products.ListAll(p.Context)
					if err != nil {
						return nil, err
					}
					return productCategories(products), nil
				},
			},
			"reviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return repos.Reviews.ListAll(p.Context)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					return repos.Orders.FindMany(p.Context, "email", email)
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return gql.Handler(schema), nil
}
