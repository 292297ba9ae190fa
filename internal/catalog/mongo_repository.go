package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type mongoRepository struct {
	drinks     *mongo.Collection
	categories *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		drinks:     db.Collection("drinks"),
		categories: db.Collection("categories"),
	}
}

func (m *mongoRepository) ListCategories(ctx context.Context) ([]Category, error) {
	cursor, err := m.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

func (m *mongoRepository) ListDrinks(ctx context.Context, categoryID string) ([]Drink, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}

	cursor, err := m.drinks.Find(ctx, filter, options.Find().SetSort(bson.M{"title": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query drinks: %w", err)
	}
	defer cursor.Close(ctx)

	var drinks []Drink
	if err := cursor.All(ctx, &drinks); err != nil {
		return nil, fmt.Errorf("failed to decode drinks: %w", err)
	}

	return drinks, nil
}

func (m *mongoRepository) GetDrink(ctx context.Context, id string) (*Drink, error) {
	var drink Drink

	err := m.drinks.FindOne(ctx, bson.M{"_id": id}).Decode(&drink)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink: %w", err)
	}

	return &drink, nil
}
