// Package repositories wraps each collection with the typed operations the
// handlers call. Store failures come back wrapped in errs.ErrUpstream, misses
// in errs.ErrNotFound and malformed ids in errs.ErrInvalidArgument.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/errs"
	"github.com/shashiranjanraj/kidsisland/pkg/metrics"
)

// Repository is the CRUD surface over one collection of T.
type Repository[T any] struct {
	coll database.Collection[T]
}

func NewRepository[T any](coll database.Collection[T]) *Repository[T] {
	return &Repository[T]{coll: coll}
}

// ListAll returns every document in store order.
func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "find", time.Now())

	docs, err := r.coll.Find(ctx, bson.M{}, 0)
	if err != nil {
		return nil, r.upstream("find", err)
	}
	return docs, nil
}

// ListLimited returns at most n documents.
func (r *Repository[T]) ListLimited(ctx context.Context, n int64) ([]T, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "find", time.Now())

	if n <= 0 {
		return []T{}, nil
	}
	docs, err := r.coll.Find(ctx, bson.M{}, n)
	if err != nil {
		return nil, r.upstream("find", err)
	}
	return docs, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	oid, err := parseID(id)
	if err != nil {
		return zero, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *Repository[T]) FindOne(ctx context.Context, field, value string) (T, error) {
	return r.findOne(ctx, bson.M{field: value})
}

func (r *Repository[T]) FindMany(ctx context.Context, field, value string) ([]T, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "find", time.Now())

	docs, err := r.coll.Find(ctx, bson.M{field: value}, 0)
	if err != nil {
		return nil, r.upstream("find", err)
	}
	return docs, nil
}

// Insert stores doc under a fresh id. Any id on doc is ignored.
func (r *Repository[T]) Insert(ctx context.Context, doc T) (database.InsertResult, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "insert", time.Now())

	fields, err := fieldsOf(doc)
	if err != nil {
		return database.InsertResult{}, err
	}
	res, err := r.coll.InsertOne(ctx, fields)
	if err != nil {
		return database.InsertResult{}, r.upstream("insert", err)
	}
	return res, nil
}

// UpsertByKey sets doc's fields on the document whose field equals value,
// creating it when none matches. One key value never yields two documents.
func (r *Repository[T]) UpsertByKey(ctx context.Context, field, value string, doc T) (database.UpdateResult, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "upsert", time.Now())

	fields, err := fieldsOf(doc)
	if err != nil {
		return database.UpdateResult{}, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{field: value}, fields, true)
	if err != nil {
		return database.UpdateResult{}, r.upstream("upsert", err)
	}
	return res, nil
}

// UpdateFields merges fields into the matching document. No match is a
// zero-count result, not an error.
func (r *Repository[T]) UpdateFields(ctx context.Context, field, value string, fields bson.M) (database.UpdateResult, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "update", time.Now())

	set := make(bson.M, len(fields))
	for k, v := range fields {
		if k != "_id" {
			set[k] = v
		}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{field: value}, set, false)
	if err != nil {
		return database.UpdateResult{}, r.upstream("update", err)
	}
	return res, nil
}

// DeleteByID removes the document with id. A missing id is a zero-count
// result.
func (r *Repository[T]) DeleteByID(ctx context.Context, id string) (database.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return database.DeleteResult{}, err
	}

	defer metrics.ObserveDBQuery(r.coll.Name(), "delete", time.Now())

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return database.DeleteResult{}, r.upstream("delete", err)
	}
	return res, nil
}

func (r *Repository[T]) findOne(ctx context.Context, filter bson.M) (T, error) {
	defer metrics.ObserveDBQuery(r.coll.Name(), "find_one", time.Now())

	doc, err := r.coll.FindOne(ctx, filter)
	if errors.Is(err, database.ErrNoDocument) {
		return doc, fmt.Errorf("%s: %w", r.coll.Name(), errs.ErrNotFound)
	}
	if err != nil {
		return doc, r.upstream("find_one", err)
	}
	return doc, nil
}

func (r *Repository[T]) upstream(op string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", r.coll.Name(), op, err, errs.ErrUpstream)
}

// IsObjectID reports whether s is a well-formed 24-hex document id.
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed id %q: %w", id, errs.ErrInvalidArgument)
	}
	return oid, nil
}

// fieldsOf converts doc into the fields to write, never including _id.
func fieldsOf(doc any) (bson.M, error) {
	fields, err := database.ToDocument(doc)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	return fields, nil
}
