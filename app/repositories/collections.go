package repositories

import (
	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
)

type (
	ProductRepository = Repository[models.Product]
	UserRepository    = Repository[models.User]
	OrderRepository   = Repository[models.Order]
	ReviewRepository  = Repository[models.Review]
)

func NewProductRepository(store *database.Store) *ProductRepository {
	return NewRepository(database.CollectionOf[models.Product](store, database.Products))
}

func NewUserRepository(store *database.Store) *UserRepository {
	return NewRepository(database.CollectionOf[models.User](store, database.Users))
}

func NewOrderRepository(store *database.Store) *OrderRepository {
	return NewRepository(database.CollectionOf[models.Order](store, database.Orders))
}

func NewReviewRepository(store *database.Store) *ReviewRepository {
	return NewRepository(database.CollectionOf[models.Review](store, database.Reviews))
}

// Set bundles one repository per collection for route registration.
type Set struct {
	Products *ProductRepository
	Users    *UserRepository
	Orders   *OrderRepository
	Reviews  *ReviewRepository
}

func NewSet(store *database.Store) Set {
	return Set{
		Products: NewProductRepository(store),
		Users:    NewUserRepository(store),
		Orders:   NewOrderRepository(store),
		Reviews:  NewReviewRepository(store),
	}
}
