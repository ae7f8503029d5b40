// Package memory is a process-lifetime store. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
)

type Store struct {
	mu          sync.RWMutex
	restaurants map[int]models.Restaurant
	menu        map[int]models.MenuItem
	users       map[string]models.User
	emails      map[string]string // email -> user id
	orders      map[int64]models.Order
	lastOrderID int64
}

func New() *Store {
	return &Store{
		restaurants: make(map[int]models.Restaurant),
		menu:        make(map[int]models.MenuItem),
		users:       make(map[string]models.User),
		emails:      make(map[string]string),
		orders:      make(map[int64]models.Order),
	}
}

func (s *Store) ListRestaurants(_ context.Context, search string) ([]models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(search)
	out := make([]models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if search == "" ||
			strings.Contains(strings.ToLower(r.Name), search) ||
			strings.Contains(strings.ToLower(r.Cuisine), search) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindRestaurant(_ context.Context, id int) (*models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Restaurant not found")
	}
	return &r, nil
}

func (s *Store) ListMenu(_ context.Context, restaurantID int) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MenuItem, 0)
	for _, item := range s.menu {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountRestaurants(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.restaurants)), nil
}

func (s *Store) InsertCatalog(_ context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range restaurants {
		if _, exists := s.restaurants[r.ID]; exists {
			return apperrors.NewConflictError("restaurant already exists")
		}
	}
	for _, r := range restaurants {
		s.restaurants[r.ID] = r
	}
	for _, item := range items {
		s.menu[item.ID] = item
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return apperrors.NewConflictError("User already exists")
	}
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return &u, nil
}

func (s *Store) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastOrderID++
	order.ID = s.lastOrderID
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (s *Store) ListOrdersByUser(_ context.Context, userID string, limit int) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) FindOrder(_ context.Context, id int64, userID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, apperrors.NewNotFoundError("Order not found")
	}
	o = cloneOrder(o)
	return &o, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// cloneOrder copies the items slice so callers never share backing arrays
// with the stored record.
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
