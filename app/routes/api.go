package routes

import (
	"github.com/shashiranjanraj/kidsisland/app/controllers"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/ctx"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/payment"
	"github.com/shashiranjanraj/kidsisland/pkg/router"
)

// RegisterAPI mounts the storefront routes on r.
func RegisterAPI(r *router.Router, store *database.Store, gateway payment.Gateway) error {
	repos := repositories.NewSet(store)

	products := controllers.NewProductController(repos.Products)
	users := controllers.NewUserController(repos.Users)
	orders := controllers.NewOrderController(repos.Orders)
	reviews := controllers.NewReviewController(repos.Reviews)
	payments := controllers.NewPaymentController(gateway)

	graphqlHandler, err := controllers.NewGraphQLHandler(repos)
	if err != nil {
		return err
	}

	r.Get("/", "liveness", ctx.Wrap(controllers.Liveness))

	r.Get("/products", "products.index", ctx.Wrap(products.Index))
	r.Get("/home/products", "products.home", ctx.Wrap(products.Home))
	r.Get("/products/{id}", "products.show", ctx.Wrap(products.Show))
	r.Post("/products", "products.store", ctx.Wrap(products.Store))
	r.Delete("/products/{id}", "products.destroy", ctx.Wrap(products.Destroy))

	// /users/admin is static, so chi prefers it over /users/{email}.
	r.Get("/users/{email}", "users.admin", ctx.Wrap(users.Admin))
	r.Post("/users", "users.store", ctx.Wrap(users.Store))
	r.Put("/users", "users.upsert", ctx.Wrap(users.Upsert))
	r.Put("/users/admin", "users.promote", ctx.Wrap(users.MakeAdmin))

	r.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	r.Get("/orders/{key}", "orders.show", ctx.Wrap(orders.Show))
	r.Post("/orders", "orders.store", ctx.Wrap(orders.Store))
	r.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(orders.Destroy))

	r.Get("/reviews", "reviews.index", ctx.Wrap(reviews.Index))
	r.Post("/reviews", "reviews.store", ctx.Wrap(reviews.Store))

	r.Post("/create-payment-intent", "payments.intent", ctx.Wrap(payments.CreateIntent))

	r.Post("/graphql", "graphql", graphqlHandler)

	return nil
}
