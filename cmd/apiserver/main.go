package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sofrahq/sofra/internal/apiserver/cache"
	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/apiserver/guard"
	"github.com/sofrahq/sofra/internal/apiserver/handler"
	"github.com/sofrahq/sofra/internal/apiserver/middleware"
	"github.com/sofrahq/sofra/internal/auth/preview"
	"github.com/sofrahq/sofra/internal/auth/session"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/config"
	"github.com/sofrahq/sofra/internal/i18n"
	"github.com/sofrahq/sofra/pkg/logger"
	"github.com/sofrahq/sofra/pkg/metrics"
	"github.com/sofrahq/sofra/pkg/qr"
	"github.com/sofrahq/sofra/pkg/trace"
	"github.com/sofrahq/sofra/pkg/utils"
	"github.com/sofrahq/sofra/pkg/version"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Sofra API Server",
		Long:  `Sofra API Server hosts the restaurant management API and the public menu endpoints`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file, like apiserver.yaml")
	rootCmd.AddCommand(versionCmd)
}

// initLogger builds the application logger from configuration. Logging must
// be available before anything else can fail, so errors here are fatal.
func initLogger(cfg *config.APIServerConfig) *zap.Logger {
	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return lg
}

// buildRouter wires middleware, handlers and routes into a gin engine.
func buildRouter(cfg *config.APIServerConfig, lg *zap.Logger, db database.Database, store session.Store, mc *cache.MenuCache, m *metrics.Metrics) (*gin.Engine, error) {
	pv, err := preview.NewService(cfg.Preview)
	if err != nil {
		return nil, fmt.Errorf("init preview service: %w", err)
	}

	g := guard.New(db, lg)
	generator := qr.NewMenuQRGenerator(cfg.Server.PublicBaseURL, cfg.QR.Size)

	authHandler := handler.NewAuth(db, store, m, lg, cfg.Session.TTL)
	userHandler := handler.NewUser(db, lg)
	restaurantHandler := handler.NewRestaurant(db, g, pv, mc, m, cfg.Server.PublicBaseURL, lg)
	categoryHandler := handler.NewCategory(db, g, mc, lg)
	menuItemHandler := handler.NewMenuItem(db, g, mc, lg)
	socialHandler := handler.NewSocial(db, g, mc, lg)
	qrHandler := handler.NewQRCode(db, g, generator, m, lg)
	activityHandler := handler.NewActivity(db, g, lg)
	publicHandler := handler.NewPublic(db, pv, mc, m, lg)

	router := gin.New()
	router.Use(middleware.Recovery(lg))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(utils.FirstNonEmpty(cfg.Tracing.ServiceName, cnst.AppName)))
	}
	router.Use(middleware.RequestLogger(lg))
	router.Use(middleware.Lang())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(m.Middleware())

	api := router.Group("/api")

	// Unauthenticated endpoints
	api.POST("/auth/login", authHandler.Login)
	api.GET("/public/restaurants/:id/menu", publicHandler.MenuByID)
	api.GET("/menus/:slug", publicHandler.MenuBySlug)

	// Endpoints behind a session cookie
	authed := api.Group("")
	authed.Use(middleware.SessionAuth(store, db, lg))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
		authed.PUT("/auth/password", authHandler.ChangePassword)

		authed.GET("/restaurants", restaurantHandler.List)
		authed.POST("/restaurants", restaurantHandler.Create)
		authed.GET("/restaurants/:id", restaurantHandler.Get)
		authed.PUT("/restaurants/:id", restaurantHandler.Update)
		authed.DELETE("/restaurants/:id", restaurantHandler.Delete)
		authed.POST("/restaurants/:id/preview-token", restaurantHandler.PreviewToken)

		authed.GET("/restaurants/:id/categories", categoryHandler.List)
		authed.POST("/restaurants/:id/categories", categoryHandler.Create)
		authed.PUT("/categories/:id", categoryHandler.Update)
		authed.DELETE("/categories/:id", categoryHandler.Delete)

		authed.GET("/restaurants/:id/menu-items", menuItemHandler.ListByRestaurant)
		authed.GET("/categories/:id/menu-items", menuItemHandler.ListByCategory)
		authed.POST("/restaurants/:id/menu-items", menuItemHandler.Create)
		authed.PUT("/menu-items/:id", menuItemHandler.Update)
		authed.DELETE("/menu-items/:id", menuItemHandler.Delete)

		authed.GET("/restaurants/:id/social-media", socialHandler.List)
		authed.POST("/restaurants/:id/social-media", socialHandler.Create)
		authed.PUT("/social-media/:id", socialHandler.Update)
		authed.DELETE("/social-media/:id", socialHandler.Delete)

		authed.GET("/restaurants/:id/qr-codes", qrHandler.List)
		authed.POST("/restaurants/:id/qr-codes", qrHandler.Create)
		authed.DELETE("/qr-codes/:id", qrHandler.Delete)
		authed.GET("/qr-codes/:id/image", qrHandler.Image)

		authed.GET("/restaurants/:id/activity", activityHandler.ListByRestaurant)

		// Super admin only
		admin := authed.Group("")
		admin.Use(middleware.RequireSuperAdmin(lg))
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.GET("/users/:id", userHandler.Get)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.GET("/activity", activityHandler.ListGlobal)
		}
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router, nil
}

func run() {
	// Load configuration
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg := initLogger(cfg)
	defer func() { _ = lg.Sync() }()

	lg.Info("Starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	// Load translation catalogs. Responses fall back to raw message ids
	// when the catalogs are missing.
	i18nPath := utils.FirstNonEmpty(cfg.I18n.Path, "configs/i18n")
	if err := i18n.InitTranslator(i18nPath); err != nil {
		lg.Warn("Failed to load translations",
			zap.String("path", i18nPath),
			zap.Error(err))
	}

	// Initialize tracing
	if cfg.Tracing.Enabled {
		shutdownTracing, err := trace.InitTracing(context.Background(), &cfg.Tracing, lg)
		if err != nil {
			lg.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				lg.Error("Failed to shutdown tracing", zap.Error(err))
			}
		}()
	}

	// Initialize database based on configuration
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		lg.Fatal("Failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Seed the bootstrap super admin when the user table has none
	if err := database.EnsureSuperAdmin(context.Background(), db, cfg.SuperAdmin.Username, cfg.SuperAdmin.Password); err != nil {
		lg.Fatal("Failed to ensure super admin account", zap.Error(err))
	}

	// Initialize session store
	store, err := session.NewStore(lg, &cfg.Session)
	if err != nil {
		lg.Fatal("Failed to initialize session store",
			zap.String("type", cfg.Session.Type),
			zap.Error(err))
	}

	m := metrics.New(cfg.Metrics)

	// Public menu cache, optionally backed by redis when an address is
	// configured. A nil cache disables caching entirely.
	var menuCache *cache.MenuCache
	if cfg.Cache.Enabled {
		var redisClient redis.Cmdable
		if cfg.Cache.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.Redis.Addr,
				Username: cfg.Cache.Redis.Username,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			if err := client.Ping(context.Background()).Err(); err != nil {
				lg.Fatal("Failed to connect to cache redis",
					zap.String("addr", cfg.Cache.Redis.Addr),
					zap.Error(err))
			}
			redisClient = client
		}
		menuCache = cache.New(cache.Config{
			RedisClient: redisClient,
			TTL:         cfg.Cache.TTL,
			MaxEntries:  cfg.Cache.MaxEntries,
		}, lg)
	}

	router, err := buildRouter(cfg, lg, db, store, menuCache, m)
	if err != nil {
		lg.Fatal("Failed to build router", zap.Error(err))
	}

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		lg.Info("Server is running", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("failed to shutdown server", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
