package store

import (
	"context"

	"food-ordering-api/models"

	"go.uber.org/zap"
)

// Seed inserts the sample catalog when no restaurants exist yet. Failures
// are logged and do not stop startup.
func Seed(ctx context.Context, s RestaurantStore, logger *zap.Logger) {
	count, err := s.CountRestaurants(ctx)
	if err != nil {
		logger.Error("seed: counting restaurants", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Info("seed: restaurants already exist, skipping", zap.Int64("restaurants", count))
		return
	}

	restaurants, items := SampleCatalog()
	if err := s.InsertCatalog(ctx, restaurants, items); err != nil {
		logger.Error("seed: inserting catalog, continuing without seed data", zap.Error(err))
		return
	}
	logger.Info("seed: catalog inserted",
		zap.Int("restaurants", len(restaurants)),
		zap.Int("menu_items", len(items)),
	)
}

// SampleCatalog returns fresh copies of the demo restaurants and menus.
func SampleCatalog() ([]models.Restaurant, []models.MenuItem) {
	restaurants := []models.Restaurant{
		{ID: 1, Name: "Pizza Palace", Cuisine: "Italian", Rating: 4.5, DeliveryTime: "25-30 min", Image: "🍕"},
		{ID: 2, Name: "Burger King", Cuisine: "American", Rating: 4.2, DeliveryTime: "20-25 min", Image: "🍔"},
		{ID: 3, Name: "Sushi House", Cuisine: "Japanese", Rating: 4.7, DeliveryTime: "30-35 min", Image: "🍣"},
		{ID: 4, Name: "Taco Fiesta", Cuisine: "Mexican", Rating: 4.4, DeliveryTime: "20-25 min", Image: "🌮"},
		{ID: 5, Name: "Curry Express", Cuisine: "Indian", Rating: 4.6, DeliveryTime: "30-35 min", Image: "🍛"},
		{ID: 6, Name: "Noodle Bar", Cuisine: "Chinese", Rating: 4.3, DeliveryTime: "25-30 min", Image: "🍜"},
	}
	items := []models.MenuItem{
		{RestaurantID: 1, ID: 1, Name: "Margherita Pizza", Price: 299, Description: "Classic tomato and mozzarella", Image: "🍕"},
		{RestaurantID: 1, ID: 2, Name: "Pepperoni Pizza", Price: 399, Description: "Pepperoni and cheese", Image: "🍕"},
		{RestaurantID: 1, ID: 3, Name: "Garlic Bread", Price: 149, Description: "Fresh baked garlic bread", Image: "🥖"},
		{RestaurantID: 1, ID: 4, Name: "Caesar Salad", Price: 199, Description: "Fresh romaine with caesar dressing", Image: "🥗"},

		{RestaurantID: 2, ID: 5, Name: "Classic Burger", Price: 249, Description: "Beef patty with lettuce and tomato", Image: "🍔"},
		{RestaurantID: 2, ID: 6, Name: "Cheese Burger", Price: 299, Description: "Burger with melted cheese", Image: "🍔"},
		{RestaurantID: 2, ID: 7, Name: "French Fries", Price: 99, Description: "Crispy golden fries", Image: "🍟"},
		{RestaurantID: 2, ID: 8, Name: "Onion Rings", Price: 129, Description: "Crispy battered onion rings", Image: "🧅"},

		{RestaurantID: 3, ID: 9, Name: "Salmon Sushi", Price: 599, Description: "Fresh salmon rolls", Image: "🍣"},
		{RestaurantID: 3, ID: 10, Name: "Tuna Sushi", Price: 549, Description: "Premium tuna rolls", Image: "🍣"},
		{RestaurantID: 3, ID: 11, Name: "Miso Soup", Price: 149, Description: "Traditional Japanese soup", Image: "🍲"},
		{RestaurantID: 3, ID: 12, Name: "Tempura", Price: 349, Description: "Lightly battered vegetables", Image: "🍤"},

		{RestaurantID: 4, ID: 13, Name: "Beef Tacos", Price: 279, Description: "Seasoned beef with fresh toppings", Image: "🌮"},
		{RestaurantID: 4, ID: 14, Name: "Chicken Quesadilla", Price: 319, Description: "Grilled chicken and cheese", Image: "🫓"},
		{RestaurantID: 4, ID: 15, Name: "Guacamole", Price: 179, Description: "Fresh avocado dip", Image: "🥑"},
		{RestaurantID: 4, ID: 16, Name: "Nachos", Price: 229, Description: "Loaded nachos with cheese", Image: "🌮"},

		{RestaurantID: 5, ID: 17, Name: "Butter Chicken", Price: 399, Description: "Creamy tomato curry", Image: "🍛"},
		{RestaurantID: 5, ID: 18, Name: "Chicken Biryani", Price: 349, Description: "Fragrant spiced rice", Image: "🍛"},
		{RestaurantID: 5, ID: 19, Name: "Naan Bread", Price: 49, Description: "Fresh baked flatbread", Image: "🫓"},
		{RestaurantID: 5, ID: 20, Name: "Samosas", Price: 99, Description: "Spiced potato pastries", Image: "🥟"},

		{RestaurantID: 6, ID: 21, Name: "Chicken Lo Mein", Price: 329, Description: "Stir-fried noodles", Image: "🍜"},
		{RestaurantID: 6, ID: 22, Name: "Sweet & Sour Chicken", Price: 379, Description: "Crispy chicken in tangy sauce", Image: "🍗"},
		{RestaurantID: 6, ID: 23, Name: "Spring Rolls", Price: 149, Description: "Crispy vegetable rolls", Image: "🥟"},
		{RestaurantID: 6, ID: 24, Name: "Fried Rice", Price: 249, Description: "Wok-fried rice with vegetables", Image: "🍚"},
	}
	return restaurants, items
}
