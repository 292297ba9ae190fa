package catalog

import (
	"context"
	"errors"
)

var ErrDrinkNotFound = errors.New("drink not found")

// Drink is one menu entry.
type Drink struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Extra       string   `bson:"extra" json:"extra"`
	Price       float64  `bson:"price" json:"price"`
	Favourite   bool     `bson:"favourite" json:"favourite"`
	CategoryID  string   `bson:"categoryId" json:"categoryId"`
	PicURLs     []string `bson:"picUrl" json:"picUrl"`
}

// Category groups drinks on the menu.
type Category struct {
	ID    string `bson:"_id,omitempty" json:"categoryId"`
	Label string `bson:"label" json:"label"`
}

// Repository defines read access to the drink catalog. The catalog is
// maintained upstream; this backend only ever reads it.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListDrinks(ctx context.Context, categoryID string) ([]Drink, error)
	GetDrink(ctx context.Context, id string) (*Drink, error)
}
