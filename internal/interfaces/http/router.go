package http

import (
	"github.com/gin-gonic/gin"

	"habita/internal/infrastructure/config"
	"habita/internal/infrastructure/ratelimit"
	"habita/internal/interfaces/http/handlers"
	"habita/internal/interfaces/http/middleware"
	"habita/internal/shared/authorization"
	"habita/internal/shared/logger"
)

// Dependencies carries everything the router needs. The CLI wires it up
// after building the infrastructure and application layers.
type Dependencies struct {
	Config *config.Config

	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    ratelimit.RateLimiter

	WebhookHandler *handlers.WebhookHandler
	AuthHandler    *handlers.AuthHandler
	PlanHandler    *handlers.PlanHandler
	BillingHandler *handlers.BillingHandler
	ListingHandler *handlers.ListingHandler
	AdminHandler   *handlers.AdminHandler

	Logger logger.Interface
}

// loginRateLimit throttles credential guessing per client IP.
var loginRateLimit = ratelimit.RateLimitConfig{
	RequestsPerMinute: 10,
	RequestsPerHour:   60,
	RequestsPerDay:    300,
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(deps.Config.Server.Mode)
	RegisterValidations()

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(deps.Logger))
	engine.Use(middleware.SecurityHeaders())
	// Engine-level so OPTIONS preflights are answered; the webhook path gets
	// the permissive policy, everything else the origin whitelist.
	engine.Use(middleware.CORSWithWebhook(deps.Config.Server.AllowedOrigins, "/api/payments"))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Provider notifications bypass the origin whitelist; the webhook carries
	// no browser credentials and must accept calls from provider infra.
	webhook := engine.Group("/api/payments")
	webhook.POST("/webhook", deps.WebhookHandler.HandlePaymentNotification)

	api := engine.Group("/api")

	registerAuthRoutes(api, deps)
	registerPlanRoutes(api, deps)
	registerBillingRoutes(api, deps)
	registerListingRoutes(api, deps)
	registerAdminRoutes(api, deps)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, deps Dependencies) {
	auth := api.Group("/auth")
	if deps.RateLimiter != nil {
		auth.Use(middleware.RateLimit(deps.RateLimiter, "auth", loginRateLimit, deps.Logger))
	}
	auth.POST("/register", deps.AuthHandler.Register)
	auth.POST("/login", deps.AuthHandler.Login)
	auth.POST("/refresh", deps.AuthHandler.Refresh)

	me := api.Group("/users/me")
	me.Use(deps.AuthMiddleware.RequireAuth())
	me.GET("", deps.AuthHandler.GetProfile)
	me.PUT("", deps.AuthHandler.UpdateProfile)
	me.POST("/password", deps.AuthHandler.ChangePassword)
	me.GET("/listings", deps.ListingHandler.ListMine)
}

func registerPlanRoutes(api *gin.RouterGroup, deps Dependencies) {
	api.GET("/plans", deps.PlanHandler.ListPlans)
}

func registerBillingRoutes(api *gin.RouterGroup, deps Dependencies) {
	billing := api.Group("/billing")
	billing.Use(deps.AuthMiddleware.RequireAuth())
	billing.POST("/checkout", deps.BillingHandler.InitiateCheckout)
	billing.GET("/entitlement", deps.BillingHandler.GetEntitlement)
	billing.GET("/entitlements", deps.BillingHandler.ListEntitlements)
}

func registerListingRoutes(api *gin.RouterGroup, deps Dependencies) {
	listings := api.Group("/listings")

	listings.GET("", deps.ListingHandler.Search)
	listings.GET("/:sid", deps.AuthMiddleware.OptionalAuth(), deps.ListingHandler.Get)

	owned := listings.Group("")
	owned.Use(deps.AuthMiddleware.RequireAuth())
	owned.POST("", deps.ListingHandler.Create)
	owned.PUT("/:sid", deps.ListingHandler.Update)
	owned.POST("/:sid/publish", deps.ListingHandler.Publish)
	owned.POST("/:sid/archive", deps.ListingHandler.Archive)
	owned.PUT("/:sid/featured", deps.ListingHandler.SetFeatured)
	owned.POST("/:sid/images", deps.ListingHandler.AddImage)
	owned.DELETE("/:sid/images/:imageID", deps.ListingHandler.RemoveImage)
}

func registerAdminRoutes(api *gin.RouterGroup, deps Dependencies) {
	admin := api.Group("/admin")
	admin.Use(deps.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())
	admin.POST("/entitlements", deps.AdminHandler.GrantEntitlement)
	admin.PATCH("/entitlements/:sid", deps.AdminHandler.AdjustEntitlement)
	admin.GET("/users/:sid/entitlements", deps.AdminHandler.ListUserEntitlements)
	admin.POST("/maintenance/expire-sweep", deps.AdminHandler.RunExpireSweep)
}
