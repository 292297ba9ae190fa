package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Baooooooo0/Drinking-App/internal/cart"
	"github.com/Baooooooo0/Drinking-App/internal/catalog"
	"github.com/Baooooooo0/Drinking-App/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogRepoMock struct {
	categories []catalog.Category
	drinks     []catalog.Drink
	err        error
}

func (m catalogRepoMock) ListCategories(context.Context) ([]catalog.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m catalogRepoMock) ListDrinks(_ context.Context, categoryID string) ([]catalog.Drink, error) {
	if m.err != nil {
		return nil, m.err
	}
	if categoryID == "" {
		return m.drinks, nil
	}
	var out []catalog.Drink
	for _, d := range m.drinks {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m catalogRepoMock) GetDrink(_ context.Context, id string) (*catalog.Drink, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.drinks {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, catalog.ErrDrinkNotFound
}

func setupMenuServer(t *testing.T, repo catalog.Repository) *httptest.Server {
	t.Helper()

	manager := cart.NewManager(storage.NewMemoryGateway())
	cartHandler := NewCartHandler(manager)
	menuHandler := NewMenuHandler(catalog.NewService(repo, nil))

	server := httptest.NewServer(NewRouter(cartHandler, menuHandler, 5*time.Second))
	t.Cleanup(server.Close)
	return server
}

func TestListDrinks_FilterByCategory(t *testing.T) {
	server := setupMenuServer(t, catalogRepoMock{drinks: []catalog.Drink{
		{ID: "d1", Title: "Latte", Price: 4.50, CategoryID: "coffee"},
		{ID: "d2", Title: "Green Tea", Price: 3.00, CategoryID: "tea"},
	}})

	resp, err := http.Get(server.URL + "/api/v1/menu/drinks?category=coffee")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var drinks []catalog.Drink
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&drinks))
	require.Len(t, drinks, 1)
	assert.Equal(t, "Latte", drinks[0].Title)
}

func TestListCategories_Success(t *testing.T) {
	server := setupMenuServer(t, catalogRepoMock{categories: []catalog.Category{
		{ID: "coffee", Label: "Coffee"},
	}})

	resp, err := http.Get(server.URL + "/api/v1/menu/categories")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []catalog.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Coffee", categories[0].Label)
}

func TestGetDrink_NotFoundMapsTo404(t *testing.T) {
	server := setupMenuServer(t, catalogRepoMock{})

	resp, err := http.Get(server.URL + "/api/v1/menu/drinks/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListDrinks_RepositoryDownMapsTo503(t *testing.T) {
	server := setupMenuServer(t, catalogRepoMock{err: assert.AnError})

	resp, err := http.Get(server.URL + "/api/v1/menu/drinks")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
