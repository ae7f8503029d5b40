package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// OrderStatus is the display vocabulary of an order
type OrderStatus string

const (
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
)

// DeliveryWindow is added to the creation time to get EstimatedDelivery.
const DeliveryWindow = 30 * time.Minute

type Order struct {
	ID                int64       `json:"orderId" gorm:"primaryKey;autoIncrement" bson:"orderId"`
	UserID            string      `json:"userId" gorm:"size:36;not null;index:idx_orders_user_created,priority:1" bson:"userId"`
	RestaurantID      int         `json:"restaurantId" gorm:"not null" bson:"restaurantId"`
	RestaurantName    string      `json:"restaurantName" gorm:"not null" bson:"restaurantName"`
	Items             []OrderItem `json:"items" gorm:"serializer:json;type:text;not null" bson:"items"`
	Total             Total       `json:"total" gorm:"not null" bson:"total"`
	DeliveryAddress   string      `json:"deliveryAddress" gorm:"not null" bson:"deliveryAddress"`
	CustomerName      string      `json:"customerName" gorm:"not null" bson:"customerName"`
	Status            OrderStatus `json:"status" gorm:"not null;default:'confirmed'" bson:"status"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery" gorm:"not null" bson:"estimatedDelivery"`
	CreatedAt         time.Time   `json:"createdAt" gorm:"index:idx_orders_user_created,priority:2" bson:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is a snapshot of a menu line at order time.
type OrderItem struct {
	ItemID   int    `json:"itemId" bson:"itemId"`
	Name     string `json:"name" bson:"name"`
	Price    int    `json:"price" bson:"price"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// Total is the order amount as sent by the client. It is kept as text;
// JSON numbers are accepted and stored in their decimal form.
type Total string

var errTotalType = errors.New("total must be a string or a number")

func (t *Total) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Total(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errTotalType
	}
	*t = Total(n.String())
	return nil
}
