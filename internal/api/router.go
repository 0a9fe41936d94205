package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	authHandler "kind-kitchen/internal/api/handlers/auth"
	"kind-kitchen/internal/api/handlers/health"
	recipeHandler "kind-kitchen/internal/api/handlers/recipe"
	"kind-kitchen/internal/api/middleware"
	authService "kind-kitchen/internal/core/auth"
	recipeService "kind-kitchen/internal/core/recipe"
	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化服務
	store, err := recipeService.NewStore(db)
	if err != nil {
		common.LogError("Failed to initialize recipe store", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize recipe store: %w", err)
	}

	authSvc, err := authService.NewService(db, &cfg.Auth)
	if err != nil {
		common.LogError("Failed to initialize auth service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	common.LogInfo("Services initialized successfully",
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
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
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(store)
		auth := authHandler.NewHandler(authSvc)

		// 食譜路由：讀取公開，寫入需要權杖
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.HandleList)
			recipeGroup.GET("/:id", recipes.HandleGet)

			protected := recipeGroup.Group("")
			protected.Use(middleware.RequireAuth(authSvc))
			{
				protected.POST("", recipes.HandleCreate)
				protected.PATCH("/:id", recipes.HandleUpdate)
				protected.DELETE("/:id", recipes.HandleDelete)
			}
		}

		// 認證路由
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", auth.HandleSignup)
			authGroup.POST("/login", auth.HandleLogin)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
