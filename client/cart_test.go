package client

import (
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	margherita = models.MenuItem{ID: 1, RestaurantID: 1, Name: "Margherita Pizza", Price: 299}
	garlic     = models.MenuItem{ID: 3, RestaurantID: 1, Name: "Garlic Bread", Price: 149}
	sushi      = models.MenuItem{ID: 9, RestaurantID: 3, Name: "Salmon Sushi", Price: 450}
)

func TestCart_AddIncrementsExistingLine(t *testing.T) {
	var c Cart
	c.Add(margherita)
	c.Add(garlic)
	c.Add(margherita)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 1, c.RestaurantID())
	assert.Equal(t, "747.00", c.Total())
}

func TestCart_ChangeQuantityRemovesAtZero(t *testing.T) {
	var c Cart
	c.Add(margherita)
	c.Add(garlic)

	c.ChangeQuantity(0, 2)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.ChangeQuantity(1, -1)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Margherita Pizza", c.Items()[0].Name)

	c.ChangeQuantity(5, -1)
	assert.Equal(t, 1, c.Len())
}

func TestCart_OtherRestaurantStartsFresh(t *testing.T) {
	var c Cart
	c.Add(margherita)
	c.Add(sushi)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].ItemID)
	assert.Equal(t, 3, c.RestaurantID())

	c.SelectRestaurant(3)
	assert.Equal(t, 1, c.Len())
	c.SelectRestaurant(1)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "0.00", c.Total())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	var c Cart
	c.Add(margherita)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
