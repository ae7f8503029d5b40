package client

import (
	"fmt"

	"food-ordering-api/models"
)

// Cart holds line items for one restaurant until the order is placed. It
// is local state only and not safe for concurrent use.
type Cart struct {
	restaurantID int
	items        []models.OrderItem
}

func (c *Cart) RestaurantID() int {
	return c.restaurantID
}

// SelectRestaurant switches restaurants. Items from another restaurant are
// dropped.
func (c *Cart) SelectRestaurant(id int) {
	if id != c.restaurantID {
		c.items = nil
	}
	c.restaurantID = id
}

// Add puts one of item in the cart, incrementing an existing line.
func (c *Cart) Add(item models.MenuItem) {
	c.SelectRestaurant(item.RestaurantID)
	for i := range c.items {
		if c.items[i].ItemID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.OrderItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// ChangeQuantity adjusts the line at index by delta and removes it once the
// quantity drops to zero or below.
func (c *Cart) ChangeQuantity(index, delta int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items[index].Quantity += delta
	if c.items[index].Quantity <= 0 {
		c.Remove(index)
	}
}

func (c *Cart) Remove(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the lines.
func (c *Cart) Items() []models.OrderItem {
	return append([]models.OrderItem(nil), c.items...)
}

// Total is the sum of price times quantity with two decimals, the form the
// order endpoint stores.
func (c *Cart) Total() string {
	sum := 0
	for _, item := range c.items {
		sum += item.Price * max(item.Quantity, 1)
	}
	return fmt.Sprintf("%.2f", float64(sum))
}
