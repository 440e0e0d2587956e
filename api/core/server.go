package core

import (
	"net/http"
	"time"

	"github.com/NathanHymers98/spacebar/api"
	"github.com/NathanHymers98/spacebar/api/common"
	handlerArticles "github.com/NathanHymers98/spacebar/api/handler/articles"
	"github.com/NathanHymers98/spacebar/api/handler/assets"
	handlerReferences "github.com/NathanHymers98/spacebar/api/handler/references"
	"github.com/NathanHymers98/spacebar/api/middleware"
	"github.com/NathanHymers98/spacebar/cache"
	"github.com/NathanHymers98/spacebar/config"
	"github.com/NathanHymers98/spacebar/internal/articles"
	"github.com/NathanHymers98/spacebar/internal/auth"
	"github.com/NathanHymers98/spacebar/internal/references"
	"github.com/NathanHymers98/spacebar/internal/uploader"
	"github.com/NathanHymers98/spacebar/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	CacheProvider  cache.Provider
	Repositories   *Repositories
}

// 启动gin
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.CommitHash == "n/a" {
		router.Use(gin.Logger())
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ServerDomain},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = cfg.UploadMaxBytes()

	// 请求ID追踪
	router.Use(middleware.RequestID())

	// 速率限制
	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
	}

	router.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks": gin.H{
				"database": checkDatabaseHealth(deps.DB),
				"cache":    checkCacheHealth(deps.CacheProvider),
				"storage":  checkStorageHealth(c.Request.Context(), deps.StorageFactory),
			},
		}
		httpStatus := http.StatusOK
		for _, checkResult := range health["checks"].(gin.H) {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(httpStatus, health)
	})
	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	// 创建服务和处理器（依赖注入）
	helper := uploader.NewHelper(deps.StorageFactory, cfg.ServerDomain+cfg.UploadedAssetsBaseURL)
	articleService := articles.NewService(deps.Repositories.ArticlesRepo, helper, cfg.UploadMaxBytes())
	referenceService := references.NewService(
		deps.Repositories.ReferencesRepo,
		deps.Repositories.ArticlesRepo,
		helper,
		deps.CacheProvider,
		cfg.UploadMaxBytes(),
		cfg.CacheReferenceTTL,
	)
	loginService := auth.NewLoginService(deps.Repositories.UsersRepo, api.GenerateToken)

	articleHandler := handlerArticles.NewHandler(articleService)
	referenceHandler := handlerReferences.NewHandler(referenceService)
	assetHandler := assets.NewHandler(deps.StorageFactory)
	loginHandler := api.NewLoginHandler(loginService)

	// 公开资源访问，封面等公共文件
	uploadsGroup := router.Group(cfg.UploadedAssetsBaseURL)
	uploadsGroup.Use(apiRateLimiter.Middleware())
	{
		uploadsGroup.GET("/*path", assetHandler.Serve) // GET /uploads/{directory}/{filename}
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) { // 所有API禁止缓存
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(authRateLimiter.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc) // POST /api/auth/login
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(apiRateLimiter.Middleware())
		adminGroup.Use(middleware.BearerAuth())
		adminGroup.Use(middleware.RequireRole("admin", "user"))
		{
			// 文章管理
			adminGroup.GET("/article", articleHandler.List)       // GET /api/admin/article
			adminGroup.POST("/article", articleHandler.Create)    // POST /api/admin/article
			adminGroup.GET("/article/:id", articleHandler.Get)    // GET /api/admin/article/{id}
			adminGroup.PUT("/article/:id", articleHandler.Update) // PUT /api/admin/article/{id}

			// 参考文件管理
			adminGroup.POST("/article/:id/references", referenceHandler.Upload) // POST /api/admin/article/{id}/references
			adminGroup.GET("/article/:id/references", referenceHandler.List)    // GET /api/admin/article/{id}/references

			adminGroup.GET("/references/:id/download", referenceHandler.Download) // GET /api/admin/references/{id}/download
			adminGroup.PUT("/references/:id", referenceHandler.Update)            // PUT /api/admin/references/{id}
			adminGroup.DELETE("/references/:id", referenceHandler.Delete)         // DELETE /api/admin/references/{id}
		}
	}

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
