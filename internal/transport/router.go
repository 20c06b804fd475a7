package transport

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"yaarfetch-be/internal/config"
	"yaarfetch-be/internal/middleware"
)

type Handlers struct {
	Orders   *OrderHandler
	Offers   *OfferHandler
	Matches  *MatchHandler
	Messages *MessageHandler
	Reviews  *ReviewHandler
	Users    *UserHandler
}

// NewRouter wires the REST surface: CORS, request logging, identity
// extraction, first-seen user provisioning and rate limiting apply to
// every route; RequireAuth guards the mutating and participant-scoped
// endpoints.
func NewRouter(cfg *config.Config, users middleware.UserProvisioner, h Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Auth(cfg.JWTSecret))
	r.Use(middleware.ProvisionUser(users))
	r.Use(middleware.RateLimit())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	orders := api.Group("/orders")
	{
		orders.POST("", middleware.RequireAuth(), h.Orders.Create)
		orders.GET("", h.Orders.List)
		orders.GET("/my-orders", middleware.RequireAuth(), h.Orders.ListMine)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id", middleware.RequireAuth(), h.Orders.Update)
	}

	offers := api.Group("/offers")
	{
		offers.POST("", middleware.RequireAuth(), h.Offers.Create)
		offers.GET("", h.Offers.List)
		offers.GET("/my-offers", middleware.RequireAuth(), h.Offers.ListMine)
		offers.GET("/:id", h.Offers.Get)
		offers.PUT("/:id", middleware.RequireAuth(), h.Offers.Update)
		offers.DELETE("/:id", middleware.RequireAuth(), h.Offers.Delete)
	}

	matches := api.Group("/matches")
	{
		matches.POST("", middleware.RequireAuth(), h.Matches.Create)
		matches.GET("", middleware.RequireAuth(), h.Matches.ListMine)
		matches.GET("/order/:orderId", h.Matches.ListForOrder)
		matches.GET("/offer/:offerId", h.Matches.ListForOffer)
		matches.GET("/:id", h.Matches.Get)
		matches.PUT("/:id/status", middleware.RequireAuth(), h.Matches.UpdateStatus)
	}

	messages := api.Group("/messages")
	{
		messages.POST("", middleware.RequireAuth(), h.Messages.Send)
		messages.GET("/match/:matchId", middleware.RequireAuth(), h.Messages.ListForMatch)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", middleware.RequireAuth(), h.Reviews.Create)
		reviews.GET("/user/:userId", h.Reviews.ListForUser)
		reviews.GET("/:id", h.Reviews.Get)
	}

	userRoutes := api.Group("/users")
	{
		userRoutes.GET("/profile", middleware.RequireAuth(), h.Users.GetProfile)
		userRoutes.PUT("/profile", middleware.RequireAuth(), h.Users.UpdateProfile)
	}

	return r
}
