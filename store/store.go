// Package store defines the persistence boundary. Implementations return
// *apperrors.NotFoundError for missing records, *apperrors.ConflictError for
// unique key violations, and *apperrors.StoreError for everything else.
package store

import (
	"context"

	"food-ordering-api/models"
)

type RestaurantStore interface {
	// ListRestaurants returns restaurants whose name or cuisine contains
	// search, case-insensitively, ordered by id. An empty search returns all.
	ListRestaurants(ctx context.Context, search string) ([]models.Restaurant, error)
	FindRestaurant(ctx context.Context, id int) (*models.Restaurant, error)
	// ListMenu returns the restaurant's items ordered by id.
	ListMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error)
	CountRestaurants(ctx context.Context) (int64, error)
	InsertCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type OrderStore interface {
	// CreateOrder assigns order.ID from a store-wide increasing sequence.
	CreateOrder(ctx context.Context, order *models.Order) error
	// ListOrdersByUser returns at most limit orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string, limit int) ([]models.Order, error)
	FindOrder(ctx context.Context, id int64, userID string) (*models.Order, error)
}

type Store interface {
	RestaurantStore
	UserStore
	OrderStore
	Ping(ctx context.Context) error
	Close() error
}
