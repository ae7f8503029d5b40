// Package catalog serves the read-only restaurant and menu listings.
package catalog

import (
	"context"
	"strconv"
	"strings"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/store"
)

type Service struct {
	restaurants store.RestaurantStore
}

func NewService(restaurants store.RestaurantStore) *Service {
	return &Service{restaurants: restaurants}
}

// ListRestaurants matches search as a literal, case-insensitive substring
// of name or cuisine. A blank search returns everything.
func (s *Service) ListRestaurants(ctx context.Context, search string) ([]models.Restaurant, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	restaurants, err := s.restaurants.ListRestaurants(ctx, search)
	if err != nil {
		return nil, apperrors.Wrap("listing restaurants", err)
	}
	return restaurants, nil
}

func (s *Service) GetRestaurant(ctx context.Context, rawID string) (*models.Restaurant, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	r, err := s.restaurants.FindRestaurant(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap("finding restaurant", err)
	}
	return r, nil
}

// GetMenu returns an empty, non-nil slice for a restaurant with no items.
func (s *Service) GetMenu(ctx context.Context, rawID string) (int, []models.MenuItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return 0, nil, err
	}
	items, err := s.restaurants.ListMenu(ctx, id)
	if err != nil {
		return 0, nil, apperrors.Wrap("listing menu", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return id, items, nil
}

// ParseID accepts only a plain base-10 integer; "12abc" is rejected.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewFieldError("restaurantId", "Invalid restaurant ID")
	}
	return id, nil
}
