// Package gormstore persists the catalog, users and orders through gorm,
// on sqlite by default or mysql.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"food-ordering-api/apperrors"
	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// Open picks the dialector for cfg.Driver and migrates the schema.
func Open(cfg config.StoreConfig, log *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Driver)
	}

	s, err := New(dialector)
	if err != nil {
		return nil, err
	}
	log.Info("database connected and migrated", zap.String("driver", cfg.Driver))
	return s, nil
}

func New(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) ListRestaurants(ctx context.Context, search string) ([]models.Restaurant, error) {
	restaurants := make([]models.Restaurant, 0)
	search = strings.ToLower(search)
	// sqlite LOWER only folds ASCII, so non-ASCII terms are matched here.
	ascii := isASCII(search)
	query := s.db.WithContext(ctx)
	if search != "" && ascii {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(cuisine) LIKE ? ESCAPE '!'", pattern, pattern)
	}
	if err := query.Order("id asc").Find(&restaurants).Error; err != nil {
		return nil, apperrors.NewStoreError("listing restaurants", err)
	}
	if ascii {
		return restaurants, nil
	}

	matched := restaurants[:0]
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Name), search) || strings.Contains(strings.ToLower(r.Cuisine), search) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (s *Store) FindRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate("finding restaurant", err, "Restaurant not found")
	}
	return &r, nil
}

func (s *Store) ListMenu(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.NewStoreError("listing menu", err)
	}
	return items, nil
}

func (s *Store) CountRestaurants(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&n).Error; err != nil {
		return 0, apperrors.NewStoreError("counting restaurants", err)
	}
	return n, nil
}

func (s *Store) InsertCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(restaurants) > 0 {
			if err := tx.Create(&restaurants).Error; err != nil {
				return err
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate("inserting catalog", err, "")
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate("creating user", err, "")
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate("finding user", err, "User not found")
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate("finding user", err, "User not found")
	}
	return &u, nil
}

// CreateOrder leaves ID zero so the autoincrement primary key assigns it.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = 0
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return translate("creating order", err, "")
	}
	return nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperrors.NewStoreError("listing orders", err)
	}
	return orders, nil
}

func (s *Store) FindOrder(ctx context.Context, id int64, userID string) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		return nil, translate("finding order", err, "Order not found")
	}
	return &o, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.NewStoreError("getting connection pool", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewStoreError("pinging database", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(op string, err error, notFound string) error {
	switch {
	case notFound != "" && errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFoundError(notFound)
	case isDuplicate(err):
		return apperrors.NewConflictError("duplicate " + strings.TrimPrefix(op, "creating "))
	default:
		return apperrors.NewStoreError(op, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// escapeLike escapes LIKE wildcards with '!', which both sqlite and mysql
// accept as an ESCAPE character without quoting rules.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
