package api

import (
	"context"
	"net/http"
	"time"

	"chef-virtual/internal/api/handlers/health"
	orderHandler "chef-virtual/internal/api/handlers/order"
	recipeHandler "chef-virtual/internal/api/handlers/recipe"
	webhookHandler "chef-virtual/internal/api/handlers/webhook"
	"chef-virtual/internal/api/middleware"
	"chef-virtual/internal/core/catalog"
	"chef-virtual/internal/core/chef"
	"chef-virtual/internal/core/matching"
	"chef-virtual/internal/core/notify"
	"chef-virtual/internal/core/orders"
	"chef-virtual/internal/core/pipeline"
	"chef-virtual/internal/core/session"
	"chef-virtual/internal/core/users"
	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 120 * time.Second
	// Request body limit (1MB); recipe requests and webhook payloads are small.
	maxBodySize = 1 << 20
)

// SetupRouter wires the HTTP surface: recipe generation, order submission
// and the WhatsApp webhook.
func SetupRouter(cfg *config.Config, sessions *session.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.String("model", cfg.OpenAI.Model),
		zap.String("catalog_url", cfg.Catalog.BaseURL),
		zap.String("orders_url", cfg.Orders.BaseURL),
		zap.Int("fuzzy_threshold", cfg.Matching.FuzzyThreshold),
	)

	registry := users.NewRegistry()
	chefSvc := chef.NewService(cfg)
	catalogClient := catalog.NewClient(cfg)
	ordersClient := orders.NewClient(cfg)
	resolver := matching.NewResolver(cfg.Matching.FuzzyThreshold)
	pipelineSvc := pipeline.NewService(resolver)

	// Per-request timeout and config injection for the health endpoint.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(registry, chefSvc, catalogClient, pipelineSvc)
		api.POST("/recipes", recipes.HandleGenerate)

		ordersH := orderHandler.NewHandler(ordersClient)
		api.POST("/orders", ordersH.HandleSubmit)
	}

	if cfg.WhatsApp.Enabled {
		notifier := notify.NewWhatsAppClient(&cfg.WhatsApp)
		webhook := webhookHandler.NewHandler(cfg, registry, sessions, chefSvc, catalogClient, pipelineSvc, ordersClient, notifier)

		router.GET("/webhook", webhook.HandleVerify)
		router.POST("/webhook", middleware.Deduplication(cfg), webhook.HandleMessage)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Bool("whatsapp_enabled", cfg.WhatsApp.Enabled),
		zap.Bool("session_enabled", cfg.Session.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
