package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/database/seeders"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
)

func TestRunAllIsRerunnable(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(ctx, store, &out))
	require.NoError(t, seeders.RunAll(ctx, store, &out))
	assert.Contains(t, out.String(), "Running seeder: products")

	all, err := repositories.NewProductRepository(store).ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}
