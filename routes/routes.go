package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins []string
	AuthLimiter    *middleware.RateLimiter
	Logger         *zap.Logger
}

// NewRouter builds the engine with the global middleware chain and every
// route registered.
func NewRouter(h *handlers.Handler, v middleware.Verifier, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	SetupRoutes(r, h, v, opts.AuthLimiter)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, v middleware.Verifier, limiter *middleware.RateLimiter) {
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id", h.GetRestaurant)
		public.GET("/restaurants/:id/menu", h.GetMenu)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Auth ───────────────────────────────────────────────────────
	accounts := r.Group("/api/auth")
	if limiter != nil {
		accounts.Use(limiter.Handler())
	}
	{
		accounts.POST("/signup", h.Signup)
		accounts.POST("/register", h.Signup)
		accounts.POST("/login", h.Login)
	}
	r.GET("/api/auth/me", middleware.AuthRequired(v), h.Me)

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/orders")
	customer.Use(middleware.AuthRequired(v))
	{
		customer.POST("", h.PlaceOrder)
		customer.GET("", h.GetMyOrders)
		customer.GET("/:id", h.GetOrderDetail)
	}

	// Browsers cannot send headers on an upgrade, so tracking has its own
	// auth that also reads ?token=.
	r.GET("/api/orders/:id/track", middleware.WebSocketAuth(v), h.TrackOrder)
}
