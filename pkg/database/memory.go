package database

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDB keeps documents per collection in insertion order. Filters match
// by field equality, which is all the storefront queries need.
type memoryDB struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

func newMemoryDB() *memoryDB {
	return &memoryDB{collections: make(map[string][]bson.M)}
}

type memoryCollection[T any] struct {
	name string
	db   *memoryDB
}

func (c *memoryCollection[T]) Name() string { return c.name }

func (c *memoryCollection[T]) Find(ctx context.Context, filter bson.M, limit int64) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	out := []T{}
	for _, doc := range c.db.collections[c.name] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if !matches(doc, filter) {
			continue
		}
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *memoryCollection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	if i := c.indexOf(filter); i >= 0 {
		return decode[T](c.db.collections[c.name][i])
	}
	return zero, ErrNoDocument
}

func (c *memoryCollection[T]) InsertOne(ctx context.Context, doc bson.M) (InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return InsertResult{}, err
	}

	stored := clone(doc)
	id, ok := stored["_id"]
	if !ok {
		id = primitive.NewObjectID()
		stored["_id"] = id
	}

	c.db.mu.Lock()
	c.db.collections[c.name] = append(c.db.collections[c.name], stored)
	c.db.mu.Unlock()

	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *memoryCollection[T]) UpdateOne(ctx context.Context, filter, set bson.M, upsert bool) (UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return UpdateResult{}, err
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if i := c.indexOf(filter); i >= 0 {
		doc := c.db.collections[c.name][i]
		res := UpdateResult{Acknowledged: true, MatchedCount: 1}
		for k, v := range set {
			if cur, ok := doc[k]; !ok || !reflect.DeepEqual(cur, v) {
				doc[k] = v
				res.ModifiedCount = 1
			}
		}
		return res, nil
	}

	if !upsert {
		return UpdateResult{Acknowledged: true}, nil
	}

	doc := clone(filter)
	for k, v := range set {
		doc[k] = v
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	c.db.collections[c.name] = append(c.db.collections[c.name], doc)

	return UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (c *memoryCollection[T]) DeleteOne(ctx context.Context, filter bson.M) (DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return DeleteResult{}, err
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	i := c.indexOf(filter)
	if i < 0 {
		return DeleteResult{Acknowledged: true}, nil
	}
	docs := c.db.collections[c.name]
	c.db.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
	return DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// indexOf returns the position of the first match, or -1. Caller holds the lock.
func (c *memoryCollection[T]) indexOf(filter bson.M) int {
	for i, doc := range c.db.collections[c.name] {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func clone(doc bson.M) bson.M {
	out := make(bson.M, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func decode[T any](doc bson.M) (T, error) {
	var v T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return v, err
	}
	err = bson.Unmarshal(raw, &v)
	return v, err
}
