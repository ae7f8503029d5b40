package models

// Restaurant is seeded catalog data and never changes afterwards.
type Restaurant struct {
	ID           int     `json:"id" gorm:"primaryKey;autoIncrement:false" bson:"restaurantId"`
	Name         string  `json:"name" gorm:"not null" bson:"name"`
	Cuisine      string  `json:"cuisine" gorm:"not null" bson:"cuisine"`
	Rating       float64 `json:"rating" gorm:"not null" bson:"rating"`
	DeliveryTime string  `json:"deliveryTime" gorm:"not null" bson:"deliveryTime"`
	Image        string  `json:"image" gorm:"not null" bson:"image"`
}

// MenuItem belongs to a restaurant by RestaurantID. The reference is not
// enforced by any store.
type MenuItem struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement:false" bson:"itemId"`
	RestaurantID int    `json:"restaurantId" gorm:"index;not null" bson:"restaurantId"`
	Name         string `json:"name" gorm:"not null" bson:"name"`
	Price        int    `json:"price" gorm:"not null" bson:"price"` // whole currency units
	Description  string `json:"description" gorm:"not null" bson:"description"`
	Image        string `json:"image" gorm:"not null" bson:"image"`
}
