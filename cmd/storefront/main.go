package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/api/router"
	"github.com/fekuna/omnipos-storefront/internal/broker"
	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/checkout"
	"github.com/fekuna/omnipos-storefront/internal/database"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/middleware"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"github.com/fekuna/omnipos-storefront/internal/session"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"

	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront/internal/cart/repository"

	catH "github.com/fekuna/omnipos-storefront/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-storefront/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront/internal/category/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	couponRepoPkg "github.com/fekuna/omnipos-storefront/internal/coupon/repository"
	homeH "github.com/fekuna/omnipos-storefront/internal/home/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront/internal/order/repository"

	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-storefront/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	siteH "github.com/fekuna/omnipos-storefront/internal/site/handler"
	siteRepoPkg "github.com/fekuna/omnipos-storefront/internal/site/repository"
	siteUCPkg "github.com/fekuna/omnipos-storefront/internal/site/usecase"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Messages
	tr, err := i18n.New(cfg.Shop.Locale)
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Shop.TimeZone)
	if err != nil {
		appLogger.Warn("Unknown shop time zone, using local time", zap.String("tz", cfg.Shop.TimeZone), zap.Error(err))
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Initialize Redis
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Connect to Database
	var db *sqlx.DB
	if cfg.Cart.UsesPostgres() {
		dbConfig := &database.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		}
		db, err = database.NewPostgres(dbConfig)
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := database.Migrate(dbConfig); err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	}

	// 6. Cart storage
	var carts cart.Repository
	switch cfg.Cart.StorageDriver {
	case "redis":
		if redisClient == nil {
			appLogger.Fatal("Cart storage redis needs REDIS_ENABLED=true")
		}
		carts = cartRepoPkg.NewRedisRepository(redisClient, cfg.Cart.SlotPrefix, cfg.Cart.SlotTTL)
	case "postgres":
		carts = cartRepoPkg.NewPGRepository(db)
	default:
		appLogger.Warn("Carts are kept in memory and lost on restart")
		carts = cartRepoPkg.NewMemoryRepository()
	}

	// 7. Initialize Elasticsearch
	var esIndex prodUCPkg.SearchIndex
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, search goes to the catalog API", zap.Error(err))
		} else {
			esIndex = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. Catalog API
	apiClient := storeapi.NewClient(&storeapi.Config{
		BaseURL: cfg.StoreAPI.BaseURL,
		Timeout: cfg.StoreAPI.Timeout,
	}, nil)

	catRepo := catRepoPkg.NewHTTPRepository(apiClient)
	prodRepo := prodRepoPkg.NewHTTPRepository(apiClient)
	siteRepo := siteRepoPkg.NewHTTPRepository(apiClient)
	couponRepo := couponRepoPkg.NewHTTPRepository(apiClient)
	orderRepo := orderRepoPkg.NewHTTPRepository(apiClient)

	// 9. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, redisClient, cfg.Cache.ProductTTL, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esIndex, cfg.Cache.ProductTTL, appLogger)
	siteUC := siteUCPkg.NewSiteUseCase(siteRepo, redisClient, cfg.Cache.SiteConfigTTL, appLogger)

	if esIndex != nil {
		go func() {
			n, err := prodUC.Reindex(ctx)
			if err != nil {
				appLogger.Error("Product reindex failed", zap.Int("indexed", n), zap.Error(err))
				return
			}
			appLogger.Info("Product index rebuilt", zap.Int("indexed", n))
		}()
	}

	// 10. Kafka
	var publisher *checkout.EventPublisher
	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.CatalogTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()

		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderTopic,
		})
		defer producer.Close()
		publisher = checkout.NewEventPublisher(producer)

		catalogListener := prodListenerPkg.NewCatalogListener(consumer, prodUC, catUC, appLogger)
		go catalogListener.Start(ctx)
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.CatalogTopic))
	}

	// 11. Sessions
	reminderTitle := cfg.Shop.ReminderTitle
	if reminderTitle == "" {
		reminderTitle = tr.T("cart.reminder_title", nil)
	}
	registry := session.NewRegistry(&session.StoreBuilder{
		Carts:     carts,
		Orders:    orderRepo,
		Publisher: publisher,
		Shop: checkout.Shop{
			Name:          cfg.Shop.Name,
			Address:       cfg.Shop.Address,
			WhatsAppPhone: cfg.Shop.WhatsAppPhone,
			Location:      loc,
		},
		Translator:       tr,
		Title:            cfg.Shop.Title,
		ReminderTitle:    reminderTitle,
		ReminderInterval: cfg.Cart.ReminderInterval,
		Logger:           appLogger.Named("session"),
	}, cfg.Session.TTL, appLogger)
	defer registry.Close()
	go registry.Run(ctx, cfg.Session.SweepInterval)

	// 12. Initialize Handlers
	var locker checkoutH.Locker
	if redisClient != nil {
		locker = redisClient
	}
	handlers := &router.Handlers{
		Home:     homeH.NewHomeHandler(catUC, prodUC, siteUC, tr, appLogger),
		Category: catH.NewCategoryHandler(catUC, tr, appLogger),
		Product:  prodH.NewProductHandler(prodUC, tr, appLogger),
		Site:     siteH.NewSiteHandler(siteUC, tr, appLogger),
		Cart:     cartH.NewCartHandler(prodUC, tr, appLogger),
		Checkout: checkoutH.NewCheckoutHandler(couponRepo, siteUC, locker, tr, appLogger),
	}
	mux := router.SetupRouter(handlers, router.SessionConfig{
		Registry:   registry,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
	}, tr, appLogger)

	// 13. Start HTTP Server
	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 14. Start gRPC Server
	port := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLogger(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	cancel()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
