package catalog

import (
	"context"
	"errors"
	"testing"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/store"
	"food-ordering-api/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *Service {
	t.Helper()
	st := memory.New()
	store.Seed(context.Background(), st, zap.NewNop())
	return NewService(st)
}

func TestListRestaurants(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	all, err := svc.ListRestaurants(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	pizza, err := svc.ListRestaurants(ctx, "  PIZZA ")
	require.NoError(t, err)
	require.Len(t, pizza, 1)
	assert.Equal(t, 1, pizza[0].ID)

	none, err := svc.ListRestaurants(ctx, "thai")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetMenu(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	id, items, err := svc.GetMenu(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ID, items[i].ID)
		assert.Equal(t, 1, items[i].RestaurantID)
	}

	_, empty, err := svc.GetMenu(ctx, "404")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetMenu_InvalidID(t *testing.T) {
	svc := newService(t)

	for _, raw := range []string{"abc", "12abc", "", "1.5"} {
		_, _, err := svc.GetMenu(context.Background(), raw)
		ve, ok := apperrors.IsValidationError(err)
		require.True(t, ok, raw)
		assert.Equal(t, "Invalid restaurant ID", ve.Message)
	}
}

func TestGetRestaurant(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	r, err := svc.GetRestaurant(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Sushi House", r.Name)

	_, err = svc.GetRestaurant(ctx, "99")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

type brokenStore struct {
	store.RestaurantStore
}

func (brokenStore) ListRestaurants(context.Context, string) ([]models.Restaurant, error) {
	return nil, errors.New("socket closed")
}

func TestListRestaurants_StoreError(t *testing.T) {
	svc := NewService(brokenStore{})

	_, err := svc.ListRestaurants(context.Background(), "")

	var se *apperrors.StoreError
	assert.ErrorAs(t, err, &se)
}
