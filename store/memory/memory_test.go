package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ store.Store = (*Store)(nil)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	store.Seed(context.Background(), s, zap.NewNop())
	return s
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := seeded(t)
	store.Seed(context.Background(), s, zap.NewNop())

	n, err := s.CountRestaurants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestListRestaurants_Search(t *testing.T) {
	s := seeded(t)

	all, err := s.ListRestaurants(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}

	byCuisine, err := s.ListRestaurants(context.Background(), "japan")
	require.NoError(t, err)
	require.Len(t, byCuisine, 1)
	assert.Equal(t, "Sushi House", byCuisine[0].Name)

	byName, err := s.ListRestaurants(context.Background(), "bar")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 6, byName[0].ID)
}

func TestListMenu(t *testing.T) {
	s := seeded(t)

	menu, err := s.ListMenu(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, menu, 4)
	assert.Equal(t, []int{5, 6, 7, 8}, []int{menu[0].ID, menu[1].ID, menu[2].ID, menu[3].ID})

	empty, err := s.ListMenu(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "ann@x.com"}))
	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "ann@x.com"})

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestOrders_SequenceAndOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		o := &models.Order{UserID: "ann", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.CreateOrder(ctx, o))
		assert.Equal(t, int64(i+1), o.ID)
	}
	require.NoError(t, s.CreateOrder(ctx, &models.Order{UserID: "ben", CreatedAt: base}))

	list, err := s.ListOrdersByUser(ctx, "ann", 10)
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, int64(12), list[0].ID)
	assert.Equal(t, int64(3), list[9].ID)

	_, err = s.FindOrder(ctx, 1, "ben")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	found, err := s.FindOrder(ctx, 13, "ben")
	require.NoError(t, err)
	assert.Equal(t, "ben", found.UserID)
}

func TestFindOrder_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	o := &models.Order{UserID: "ann", Status: models.StatusConfirmed, Items: []models.OrderItem{{ItemID: 1, Price: 299}}}
	require.NoError(t, s.CreateOrder(ctx, o))

	got, err := s.FindOrder(ctx, o.ID, "ann")
	require.NoError(t, err)
	got.Status = models.StatusDelivered
	got.Items[0].Price = 1

	again, err := s.FindOrder(ctx, o.ID, "ann")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, again.Status)
	assert.Equal(t, 299, again.Items[0].Price)
}

func TestCreateOrder_ConcurrentIDsUnique(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := &models.Order{UserID: "ann"}
			if err := s.CreateOrder(ctx, o); err == nil {
				ids <- o.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}
