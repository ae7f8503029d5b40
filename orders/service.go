// Package orders places orders, lists a customer's history and projects
// the display status of a single order.
package orders

import (
	"context"
	"strconv"
	"strings"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"
	"food-ordering-api/store"
	"food-ordering-api/validation"
)

// HistoryLimit caps ListOrders.
const HistoryLimit = 10

const unknownRestaurant = "Unknown"

type PlaceOrderRequest struct {
	RestaurantID    int                `json:"restaurantId" validate:"required"`
	Items           []models.OrderItem `json:"items" validate:"required,min=1"`
	Total           models.Total       `json:"total" validate:"required"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
}

var placeOrderMessages = map[string]string{
	"restaurantId":    "Restaurant ID is required",
	"items":           "Order must contain at least one item",
	"total":           "Total amount is required",
	"deliveryAddress": "Delivery address is required",
}

// PlacedOrder is the stored order plus a confirmation line.
type PlacedOrder struct {
	*models.Order
	Message string `json:"message"`
}

type Service struct {
	orders      store.OrderStore
	restaurants store.RestaurantStore
	now         func() time.Time
}

func NewService(orders store.OrderStore, restaurants store.RestaurantStore) *Service {
	return &Service{orders: orders, restaurants: restaurants, now: time.Now}
}

func (s *Service) PlaceOrder(ctx context.Context, user *models.User, req PlaceOrderRequest) (*PlacedOrder, error) {
	if err := validation.StructMessages(req, placeOrderMessages); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		switch {
		case item.Quantity == 0:
			item.Quantity = 1
		case item.Quantity < 0:
			return nil, apperrors.NewFieldError("items", "Item quantity must be positive")
		}
		items[i] = item
	}

	name := unknownRestaurant
	r, err := s.restaurants.FindRestaurant(ctx, req.RestaurantID)
	switch _, notFound := apperrors.IsNotFoundError(err); {
	case err == nil:
		name = r.Name
	case !notFound:
		return nil, apperrors.Wrap("finding restaurant", err)
	}

	now := s.now().UTC()
	order := &models.Order{
		UserID:            user.ID,
		RestaurantID:      req.RestaurantID,
		RestaurantName:    name,
		Items:             items,
		Total:             req.Total,
		DeliveryAddress:   req.DeliveryAddress,
		CustomerName:      user.Name,
		Status:            models.StatusConfirmed,
		EstimatedDelivery: now.Add(models.DeliveryWindow),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.Wrap("creating order", err)
	}

	return &PlacedOrder{Order: order, Message: "Order placed successfully!"}, nil
}

// ListOrders returns the caller's most recent orders as stored.
func (s *Service) ListOrders(ctx context.Context, user *models.User) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, user.ID, HistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap("listing orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, user *models.User, rawID string) (*models.Order, error) {
	id, err := ParseOrderID(rawID)
	if err != nil {
		return nil, err
	}
	return s.Lookup(ctx, user, id)
}

// Lookup fetches an order owned by user with its derived status. The
// stored record is not modified.
func (s *Service) Lookup(ctx context.Context, user *models.User, id int64) (*models.Order, error) {
	order, err := s.orders.FindOrder(ctx, id, user.ID)
	if err != nil {
		return nil, apperrors.Wrap("finding order", err)
	}
	view := *order
	view.Items = append([]models.OrderItem(nil), order.Items...)
	view.Status = statemachine.DeriveStatus(order.Status, s.now().Sub(order.CreatedAt))
	return &view, nil
}

func ParseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.NewFieldError("orderId", "Order ID must be a number")
	}
	return id, nil
}
