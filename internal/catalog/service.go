package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"
)

// Service answers menu queries through a read-through cache. Cache problems
// are logged and absorbed; the repository stays the source of truth.
type Service struct {
	repo  Repository
	cache Cache
	sfg   singleflight.Group // Prevents cache stampede
}

// NewService wires a repository with an optional cache; cache may be nil.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return cached(ctx, s, "categories", func() ([]Category, error) {
		return s.repo.ListCategories(ctx)
	})
}

func (s *Service) Drinks(ctx context.Context, categoryID string) ([]Drink, error) {
	key := "drinks:all"
	if categoryID != "" {
		key = fmt.Sprintf("drinks:%s", categoryID)
	}
	return cached(ctx, s, key, func() ([]Drink, error) {
		return s.repo.ListDrinks(ctx, categoryID)
	})
}

func (s *Service) Drink(ctx context.Context, id string) (*Drink, error) {
	drinks, err := cached(ctx, s, fmt.Sprintf("drink:%s", id), func() ([]Drink, error) {
		d, err := s.repo.GetDrink(ctx, id)
		if err != nil {
			return nil, err
		}
		return []Drink{*d}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(drinks) == 0 {
		return nil, ErrDrinkNotFound
	}
	return &drinks[0], nil
}

// cached collapses concurrent lookups for the same key and fills the cache
// in the background on a miss.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() ([]T, error)) ([]T, error) {
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		if s.cache != nil {
			data, err := s.cache.Get(ctx, key)
			if err == nil {
				var out []T
				if err2 := json.Unmarshal(data, &out); err2 == nil {
					return out, nil
				}
				log.Printf("decode cached %q failed, refetching", key)
			} else if !errors.Is(err, ErrCacheMiss) {
				log.Printf("cache get error: %v", err) // log cache error but continue
			}
		}

		out, errGet := fetch()
		if errGet != nil {
			return nil, errGet
		}

		if s.cache != nil {
			go func() {
				data, err := json.Marshal(out)
				if err != nil {
					return
				}
				if errSet := s.cache.Set(context.Background(), key, data); errSet != nil {
					log.Printf("cache set error: %v", errSet)
				}
			}()
		}

		return out, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]T), nil
}
