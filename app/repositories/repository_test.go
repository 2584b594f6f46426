package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/errs"
)

func newSet(t *testing.T) repositories.Set {
	t.Helper()
	store := database.NewMemory()
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return repositories.NewSet(store)
}

func TestInsertIgnoresClientID(t *testing.T) {
	ctx := context.Background()
	repos := newSet(t)
	clientID := primitive.NewObjectID()

	res, err := repos.Products.Insert(ctx, models.Product{ID: clientID, Name: "Teddy Bear", Price: 25})
	require.NoError(t, err)
	newID, ok := res.InsertedID.(primitive.ObjectID)
	require.True(t, ok)
	assert.NotEqual(t, clientID, newID)

	got, err := repos.Products.GetByID(ctx, newID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.Product{ID: newID, Name: "Teddy Bear", Price: 25}, got)

	_, err = repos.Products.GetByID(ctx, clientID.Hex())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetByIDMalformed(t *testing.T) {
	_, err := newSet(t).Products.GetByID(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestListLimited(t *testing.T) {
	ctx := context.Background()
	repos := newSet(t)
	for i := 0; i < 9; i++ {
		_, err := repos.Products.Insert(ctx, models.Product{Name: "Toy", Price: float64(i)})
		require.NoError(t, err)
	}

	six, err := repos.Products.ListLimited(ctx, 6)
	require.NoError(t, err)
	assert.Len(t, six, 6)

	all, err := repos.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 9)

	none, err := repos.Products.ListLimited(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpsertByKeyKeepsOneDocumentPerEmail(t *testing.T) {
	ctx := context.Background()
	users := newSet(t).Users

	res, err := users.UpsertByKey(ctx, "email", "kid@island.io", models.User{Email: "kid@island.io", DisplayName: "Kid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)

	res, err = users.UpsertByKey(ctx, "email", "kid@island.io", models.User{ID: primitive.NewObjectID(), Email: "kid@island.io", DisplayName: "Kiddo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.UpsertedCount)

	found, err := users.FindMany(ctx, "email", "kid@island.io")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Kiddo", found[0].DisplayName)
}

func TestUndeclaredFieldsPersist(t *testing.T) {
	ctx := context.Background()
	repos := newSet(t)

	res, err := repos.Products.Insert(ctx, models.Product{Name: "Rings", Extra: bson.M{"stock": int32(4), "ageGroup": "3+"}})
	require.NoError(t, err)
	got, err := repos.Products.GetByID(ctx, res.InsertedID.(primitive.ObjectID).Hex())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"stock": int32(4), "ageGroup": "3+"}, got.Extra)

	_, err = repos.Users.UpsertByKey(ctx, "email", "kid@island.io", models.User{Email: "kid@island.io", Extra: bson.M{"photoURL": "a.png"}})
	require.NoError(t, err)
	_, err = repos.Users.UpsertByKey(ctx, "email", "kid@island.io", models.User{Email: "kid@island.io", DisplayName: "Kid"})
	require.NoError(t, err)

	user, err := repos.Users.FindOne(ctx, "email", "kid@island.io")
	require.NoError(t, err)
	assert.Equal(t, "Kid", user.DisplayName)
	assert.Equal(t, "a.png", user.Extra["photoURL"], "a later upsert without the field leaves it alone")
}

func TestUpdateFieldsNeverTouchesID(t *testing.T) {
	ctx := context.Background()
	users := newSet(t).Users

	ins, err := users.Insert(ctx, models.User{Email: "kid@island.io"})
	require.NoError(t, err)

	res, err := users.UpdateFields(ctx, "email", "kid@island.io", bson.M{"role": "admin", "_id": primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	u, err := users.FindOne(ctx, "email", "kid@island.io")
	require.NoError(t, err)
	assert.Equal(t, ins.InsertedID, u.ID)
	assert.True(t, u.IsAdmin())

	res, err = users.UpdateFields(ctx, "email", "ghost@island.io", bson.M{"role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	orders := newSet(t).Orders

	res, err := orders.DeleteByID(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Equal(t, database.DeleteResult{Acknowledged: true}, res)

	_, err = orders.DeleteByID(ctx, "42")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestFindOneMissing(t *testing.T) {
	_, err := newSet(t).Users.FindOne(context.Background(), "email", "ghost@island.io")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// brokenCollection fails every call the way an unreachable cluster would.
type brokenCollection struct{}

var errDown = errors.New("server selection error: context deadline exceeded")

func (brokenCollection) Name() string { return "orders" }
func (brokenCollection) Find(context.Context, bson.M, int64) ([]models.Order, error) {
	return nil, errDown
}
func (brokenCollection) FindOne(context.Context, bson.M) (models.Order, error) {
	return models.Order{}, errDown
}
func (brokenCollection) InsertOne(context.Context, bson.M) (database.InsertResult, error) {
	return database.InsertResult{}, errDown
}
func (brokenCollection) UpdateOne(context.Context, bson.M, bson.M, bool) (database.UpdateResult, error) {
	return database.UpdateResult{}, errDown
}
func (brokenCollection) DeleteOne(context.Context, bson.M) (database.DeleteResult, error) {
	return database.DeleteResult{}, errDown
}

func TestStoreFailuresAreUpstream(t *testing.T) {
	ctx := context.Background()
	orders := repositories.NewRepository[models.Order](brokenCollection{})

	_, err := orders.ListAll(ctx)
	assert.ErrorIs(t, err, errs.ErrUpstream)
	assert.ErrorIs(t, err, errDown)

	_, err = orders.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, errs.ErrUpstream)

	_, err = orders.Insert(ctx, models.Order{Email: "kid@island.io"})
	assert.ErrorIs(t, err, errs.ErrUpstream)

	_, err = orders.DeleteByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, errs.ErrUpstream)
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, repositories.IsObjectID(primitive.NewObjectID().Hex()))
	assert.False(t, repositories.IsObjectID("kid@island.io"))
}
