package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/kidsisland/app/models"
	"github.com/shashiranjanraj/kidsisland/app/repositories"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/workerpool"
)

func init() {
	Register("products", SeedProducts)
}

var starterCatalogue = []models.Product{
	{Name: "Teddy Bear", Price: 25, Category: "plush", Description: "Soft brown bear with a red bow.", Rating: 4.8},
	{Name: "Wooden Train Set", Price: 39.99, Category: "wooden", Description: "Twenty-piece track with engine and two carriages.", Rating: 4.6},
	{Name: "Building Blocks", Price: 19.5, Category: "construction", Description: "Hundred chunky blocks for small hands.", Rating: 4.7},
	{Name: "Rubber Duck Trio", Price: 8.99, Category: "bath", Description: "Three squeaky ducks for bath time.", Rating: 4.3},
	{Name: "Stacking Rings", Price: 12, Category: "baby", Description: "Rainbow rings on a wobbling base.", Rating: 4.5},
	{Name: "Puzzle Map", Price: 22.75, Category: "puzzles", Description: "Forty-piece world map floor puzzle.", Rating: 4.4},
	{Name: "Kite", Price: 15, Category: "outdoor", Description: "Butterfly kite with a thirty metre line.", Rating: 4.1},
}

// seedWorkers bounds concurrent writes while seeding.
const seedWorkers = 4

// SeedProducts upserts the starter catalogue by name so the seeder can be
// rerun without duplicating products.
func SeedProducts(ctx context.Context, store *database.Store) error {
	products := repositories.NewProductRepository(store)
	pool := workerpool.New(ctx, seedWorkers)

	for _, p := range starterCatalogue {
		err := pool.SubmitWait(func(ctx context.Context) error {
			_, err := products.UpsertByKey(ctx, "name", p.Name, p)
			return err
		})
		if err != nil {
			return errors.Join(err, pool.Wait())
		}
	}
	return pool.Wait()
}
