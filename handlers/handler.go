// Package handlers adapts the account, catalog and order services to gin.
package handlers

import (
	"context"
	"net/http"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, req auth.SignupRequest) (*auth.Session, error)
	Authenticate(ctx context.Context, req auth.LoginRequest) (*auth.Session, error)
}

type CatalogService interface {
	ListRestaurants(ctx context.Context, search string) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, rawID string) (*models.Restaurant, error)
	GetMenu(ctx context.Context, rawID string) (int, []models.MenuItem, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, user *models.User, req orders.PlaceOrderRequest) (*orders.PlacedOrder, error)
	ListOrders(ctx context.Context, user *models.User) ([]models.Order, error)
	GetOrder(ctx context.Context, user *models.User, rawID string) (*models.Order, error)
	Lookup(ctx context.Context, user *models.User, id int64) (*models.Order, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Accounts       AccountService
	Catalog        CatalogService
	Orders         OrderService
	Store          Pinger
	ServiceName    string
	TrackInterval  time.Duration
	AllowedOrigins []string
	Logger         *zap.Logger
}

type Handler struct {
	accounts      AccountService
	catalog       CatalogService
	orders        OrderService
	store         Pinger
	service       string
	trackInterval time.Duration
	upgrader      websocket.Upgrader
	logger        *zap.Logger
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := d.TrackInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Handler{
		accounts:      d.Accounts,
		catalog:       d.Catalog,
		orders:        d.Orders,
		store:         d.Store,
		service:       d.ServiceName,
		trackInterval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(d.AllowedOrigins),
		},
		logger: logger,
	}
}

// originChecker mirrors the CORS allowlist for websocket upgrades. Requests
// without an Origin header are not from a browser and are let through.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}
