package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"
	"food-ordering-api/store"
	"food-ordering-api/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	ann = &models.User{ID: "ann-id", Name: "Ann", Email: "ann@x.com"}
	ben = &models.User{ID: "ben-id", Name: "Ben", Email: "ben@x.com"}
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T) (*Service, *memory.Store, *clock) {
	t.Helper()
	st := memory.New()
	store.Seed(context.Background(), st, zap.NewNop())
	c := &clock{t: time.Date(2026, 5, 4, 19, 0, 0, 0, time.UTC)}
	svc := NewService(st, st)
	svc.now = c.now
	return svc, st, c
}

func pizzaOrder() PlaceOrderRequest {
	return PlaceOrderRequest{
		RestaurantID:    1,
		Items:           []models.OrderItem{{ItemID: 1, Name: "Margherita Pizza", Price: 299, Quantity: 1}},
		Total:           "299",
		DeliveryAddress: "12 Elm St",
	}
}

func TestPlaceOrder(t *testing.T) {
	svc, _, c := newService(t)

	placed, err := svc.PlaceOrder(context.Background(), ann, pizzaOrder())
	require.NoError(t, err)

	assert.Equal(t, "Order placed successfully!", placed.Message)
	assert.Positive(t, placed.ID)
	assert.Equal(t, "Pizza Palace", placed.RestaurantName)
	assert.Equal(t, "Ann", placed.CustomerName)
	assert.Equal(t, ann.ID, placed.UserID)
	assert.Equal(t, models.StatusConfirmed, placed.Status)
	assert.Equal(t, c.t, placed.CreatedAt)
	assert.Equal(t, c.t.Add(30*time.Minute), placed.EstimatedDelivery)
	assert.Equal(t, models.Total("299"), placed.Total)
}

func TestPlaceOrder_UnknownRestaurant(t *testing.T) {
	svc, _, _ := newService(t)
	req := pizzaOrder()
	req.RestaurantID = 999

	placed, err := svc.PlaceOrder(context.Background(), ann, req)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", placed.RestaurantName)
}

func TestPlaceOrder_DefaultsQuantity(t *testing.T) {
	svc, _, _ := newService(t)
	req := pizzaOrder()
	req.Items[0].Quantity = 0

	placed, err := svc.PlaceOrder(context.Background(), ann, req)
	require.NoError(t, err)
	assert.Equal(t, 1, placed.Items[0].Quantity)

	req.Items[0].Quantity = -2
	_, err = svc.PlaceOrder(context.Background(), ann, req)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestPlaceOrder_FirstMissingField(t *testing.T) {
	svc, _, _ := newService(t)

	cases := map[string]struct {
		mutate func(*PlaceOrderRequest)
		field  string
		want   string
	}{
		"restaurant": {func(r *PlaceOrderRequest) { r.RestaurantID = 0; r.Total = "" }, "restaurantId", "Restaurant ID is required"},
		"nil items":  {func(r *PlaceOrderRequest) { r.Items = nil }, "items", "Order must contain at least one item"},
		"no items":   {func(r *PlaceOrderRequest) { r.Items = []models.OrderItem{} }, "items", "Order must contain at least one item"},
		"total":      {func(r *PlaceOrderRequest) { r.Total = ""; r.DeliveryAddress = "" }, "total", "Total amount is required"},
		"address":    {func(r *PlaceOrderRequest) { r.DeliveryAddress = "" }, "deliveryAddress", "Delivery address is required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := pizzaOrder()
			tc.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), ann, req)

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.want, ve.Message)
		})
	}
}

func TestListOrders_OwnerOnly(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, ann, pizzaOrder())
	require.NoError(t, err)

	annOrders, err := svc.ListOrders(ctx, ann)
	require.NoError(t, err)
	require.Len(t, annOrders, 1)
	assert.Equal(t, 1, annOrders[0].RestaurantID)
	assert.Equal(t, placed.Items, annOrders[0].Items)

	benOrders, err := svc.ListOrders(ctx, ben)
	require.NoError(t, err)
	assert.NotNil(t, benOrders)
	assert.Empty(t, benOrders)
}

func TestListOrders_MostRecentTen(t *testing.T) {
	svc, _, c := newService(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 12; i++ {
		placed, err := svc.PlaceOrder(ctx, ann, pizzaOrder())
		require.NoError(t, err)
		ids = append(ids, placed.ID)
		c.t = c.t.Add(time.Minute)
	}

	list, err := svc.ListOrders(ctx, ann)
	require.NoError(t, err)
	require.Len(t, list, HistoryLimit)
	assert.Equal(t, ids[11], list[0].ID)
	assert.Equal(t, ids[2], list[9].ID)
}

func TestGetOrder_DerivedStatus(t *testing.T) {
	svc, st, c := newService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, ann, pizzaOrder())
	require.NoError(t, err)

	c.t = placed.CreatedAt.Add(26 * time.Minute)
	got, err := svc.GetOrder(ctx, ann, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)

	again, err := svc.GetOrder(ctx, ann, "1")
	require.NoError(t, err)
	assert.Equal(t, got.Status, again.Status)

	stored, err := st.FindOrder(ctx, placed.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestGetOrder_NeverRegresses(t *testing.T) {
	svc, _, c := newService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, ann, pizzaOrder())
	require.NoError(t, err)

	prev := -1
	for minute := 0; minute <= 45; minute++ {
		c.t = placed.CreatedAt.Add(time.Duration(minute) * time.Minute)
		got, err := svc.Lookup(ctx, ann, placed.ID)
		require.NoError(t, err)
		r := statemachine.Rank(got.Status)
		assert.GreaterOrEqual(t, r, prev, "minute %d", minute)
		prev = r
	}
	assert.Equal(t, statemachine.Rank(models.StatusDelivered), prev)
}

func TestGetOrder_Errors(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, ann, pizzaOrder())
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, ann, "12abc")
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Order ID must be a number", ve.Message)

	_, err = svc.Lookup(ctx, ben, placed.ID)
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Order not found", nf.Message)
}

type failingOrders struct {
	store.OrderStore
}

func (failingOrders) CreateOrder(context.Context, *models.Order) error {
	return errors.New("disk full")
}

func TestPlaceOrder_StoreFailure(t *testing.T) {
	st := memory.New()
	svc := NewService(failingOrders{}, st)

	_, err := svc.PlaceOrder(context.Background(), ann, pizzaOrder())

	var se *apperrors.StoreError
	assert.ErrorAs(t, err, &se)
}
