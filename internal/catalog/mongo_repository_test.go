package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestDB(t *testing.T) (Repository, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	seedDrinks := []interface{}{
		Drink{ID: "d1", Title: "Latte", Description: "Espresso with milk", Price: 4.50, CategoryID: "coffee", PicURLs: []string{"latte.png"}},
		Drink{ID: "d2", Title: "Mocha", Description: "Chocolate espresso", Price: 5.00, CategoryID: "coffee"},
		Drink{ID: "d3", Title: "Green Tea", Price: 3.00, CategoryID: "tea"},
	}
	_, err = db.Collection("drinks").InsertMany(ctx, seedDrinks)
	require.NoError(t, err)

	seedCategories := []interface{}{
		Category{ID: "coffee", Label: "Coffee"},
		Category{ID: "tea", Label: "Tea"},
	}
	_, err = db.Collection("categories").InsertMany(ctx, seedCategories)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return NewMongoRepository(db), cleanup
}

func TestListDrinks_All(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	drinks, err := repo.ListDrinks(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, drinks, 3)
}

func TestListDrinks_ByCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	drinks, err := repo.ListDrinks(context.Background(), "coffee")

	require.NoError(t, err)
	require.Len(t, drinks, 2)
	for _, d := range drinks {
		assert.Equal(t, "coffee", d.CategoryID)
	}
}

func TestGetDrink_Found(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	drink, err := repo.GetDrink(context.Background(), "d1")

	require.NoError(t, err)
	assert.Equal(t, "Latte", drink.Title)
	assert.Equal(t, []string{"latte.png"}, drink.PicURLs)
}

func TestGetDrink_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetDrink(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrDrinkNotFound)
}

func TestListCategories(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	categories, err := repo.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Coffee", categories[0].Label)
}
