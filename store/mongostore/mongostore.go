// Package mongostore keeps the four collections in MongoDB. Order ids come
// from a counters document incremented atomically per insert.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"food-ordering-api/apperrors"
	"food-ordering-api/config"
	"food-ordering-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	restaurantsCollection = "restaurants"
	menuItemsCollection   = "menuitems"
	ordersCollection      = "orders"
	usersCollection       = "users"
	countersCollection    = "counters"

	orderSequence = "orders"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects, pings the primary and makes sure indexes exist.
func Open(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetServerSelectionTimeout(30 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info("mongo connected", zap.String("database", cfg.MongoDatabase))
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		restaurantsCollection: {
			{Keys: bson.D{{Key: "restaurantId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		menuItemsCollection: {
			{Keys: bson.D{{Key: "restaurantId", Value: 1}, {Key: "itemId", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("creating %s indexes: %w", name, err)
		}
	}
	return nil
}

func (s *Store) ListRestaurants(ctx context.Context, search string) ([]models.Restaurant, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"cuisine": re},
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "restaurantId", Value: 1}})

	restaurants := make([]models.Restaurant, 0)
	if err := s.findAll(ctx, restaurantsCollection, filter, opts, &restaurants); err != nil {
		return nil, apperrors.NewStoreError("listing restaurants", err)
	}
	return restaurants, nil
}

func (s *Store) FindRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.Collection(restaurantsCollection).FindOne(ctx, bson.M{"restaurantId": id}).Decode(&r)
	if err != nil {
		return nil, translate("finding restaurant", err, "Restaurant not found")
	}
	return &r, nil
}

func (s *Store) ListMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "itemId", Value: 1}})

	items := make([]models.MenuItem, 0)
	if err := s.findAll(ctx, menuItemsCollection, bson.M{"restaurantId": restaurantID}, opts, &items); err != nil {
		return nil, apperrors.NewStoreError("listing menu", err)
	}
	return items, nil
}

func (s *Store) CountRestaurants(ctx context.Context) (int64, error) {
	n, err := s.db.Collection(restaurantsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewStoreError("counting restaurants", err)
	}
	return n, nil
}

func (s *Store) InsertCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	if len(restaurants) > 0 {
		docs := make([]interface{}, len(restaurants))
		for i := range restaurants {
			docs[i] = restaurants[i]
		}
		if _, err := s.db.Collection(restaurantsCollection).InsertMany(ctx, docs); err != nil {
			return translate("inserting restaurants", err, "")
		}
	}
	if len(items) > 0 {
		docs := make([]interface{}, len(items))
		for i := range items {
			docs[i] = items[i]
		}
		if _, err := s.db.Collection(menuItemsCollection).InsertMany(ctx, docs); err != nil {
			return translate("inserting menu items", err, "")
		}
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		return translate("creating user", err, "")
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate("finding user", err, "User not found")
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate("finding user", err, "User not found")
	}
	return &u, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	id, err := s.nextSequence(ctx, orderSequence)
	if err != nil {
		return apperrors.NewStoreError("allocating order id", err)
	}
	order.ID = id
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	if _, err := s.db.Collection(ordersCollection).InsertOne(ctx, order); err != nil {
		return translate("creating order", err, "")
	}
	return nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "orderId", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	orders := make([]models.Order, 0)
	if err := s.findAll(ctx, ordersCollection, bson.M{"userId": userID}, opts, &orders); err != nil {
		return nil, apperrors.NewStoreError("listing orders", err)
	}
	return orders, nil
}

func (s *Store) FindOrder(ctx context.Context, id int64, userID string) (*models.Order, error) {
	var o models.Order
	err := s.db.Collection(ordersCollection).
		FindOne(ctx, bson.M{"orderId": id, "userId": userID}).
		Decode(&o)
	if err != nil {
		return nil, translate("finding order", err, "Order not found")
	}
	return &o, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return apperrors.NewStoreError("pinging mongo", err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) nextSequence(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *Store) findAll(ctx context.Context, collection string, filter interface{}, opts *options.FindOptions, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func translate(op string, err error, notFound string) error {
	switch {
	case notFound != "" && errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NewNotFoundError(notFound)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.NewConflictError("duplicate key while " + op)
	default:
		return apperrors.NewStoreError(op, err)
	}
}
