// Package database owns the document store connection and exposes typed
// collections over it. Two drivers share one contract: "mongo" for real
// deployments and "memory" for local development and tests.
package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/kidsisland/config"
)

// Collection names.
const (
	Products = "products"
	Users    = "users"
	Orders   = "orders"
	Reviews  = "reviews"
)

// ErrNoDocument is returned by FindOne when nothing matches the filter.
var ErrNoDocument = errors.New("database: no document matches filter")

// Collection is a typed view of one named collection. Reads decode into T;
// writes take plain documents so callers control which fields are written.
type Collection[T any] interface {
	Name() string
	Find(ctx context.Context, filter bson.M, limit int64) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	InsertOne(ctx context.Context, doc bson.M) (InsertResult, error)
	UpdateOne(ctx context.Context, filter, set bson.M, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter bson.M) (DeleteResult, error)
}

// Store is the process-wide store handle. Acquire it once with Connect and
// release it with Close.
type Store struct {
	driver string
	client *mongo.Client
	db     *mongo.Database
	mem    *memoryDB
}

// Connect opens the store selected by DB_DRIVER.
func Connect(ctx context.Context) (*Store, error) {
	return Open(ctx, config.DatabaseDriver(), config.MongoURI(), config.DatabaseName())
}

// Open opens a store for an explicit driver.
func Open(ctx context.Context, driver, uri, name string) (*Store, error) {
	switch driver {
	case "mongo":
		return openMongo(ctx, uri, name)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: mongo, memory)", driver)
	}
}

// NewMemory returns an empty in-process store.
func NewMemory() *Store {
	return &Store{driver: "memory", mem: newMemoryDB()}
}

func (s *Store) Driver() string { return s.driver }

// Ping checks the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return ctx.Err()
	}
	return pingMongo(ctx, s.client)
}

// Close releases the connection. Safe to call on a nil Store.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// CollectionOf returns the typed collection called name.
func CollectionOf[T any](s *Store, name string) Collection[T] {
	if s.mem != nil {
		return &memoryCollection[T]{name: name, db: s.mem}
	}
	return &mongoCollection[T]{coll: s.db.Collection(name)}
}

// ToDocument converts a tagged struct into a bson.M using its bson tags.
func ToDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("database: marshal document: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("database: unmarshal document: %w", err)
	}
	return doc, nil
}
