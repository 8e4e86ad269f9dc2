package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-pricing-service/config"
	"github.com/fekuna/omnipos-pricing-service/internal/lookup"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/middleware"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/search"
	"github.com/fekuna/omnipos-pricing-service/migrations"

	calcH "github.com/fekuna/omnipos-pricing-service/internal/calculation/handler"
	calcRepoPkg "github.com/fekuna/omnipos-pricing-service/internal/calculation/repository"
	calcUCPkg "github.com/fekuna/omnipos-pricing-service/internal/calculation/usecase"

	"github.com/fekuna/omnipos-pricing-service/internal/dashboard"
	dashH "github.com/fekuna/omnipos-pricing-service/internal/dashboard/handler"
	dashUCPkg "github.com/fekuna/omnipos-pricing-service/internal/dashboard/usecase"

	importListenerPkg "github.com/fekuna/omnipos-pricing-service/internal/importer/listener"

	prodH "github.com/fekuna/omnipos-pricing-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-pricing-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-pricing-service/internal/product/usecase"

	partH "github.com/fekuna/omnipos-pricing-service/internal/sparepart/handler"
	partRepoPkg "github.com/fekuna/omnipos-pricing-service/internal/sparepart/repository"
	partUCPkg "github.com/fekuna/omnipos-pricing-service/internal/sparepart/usecase"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
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
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := i18n.Init(); err != nil {
		log.Fatalf("load locales: %v", err)
	}
	if path := cfg.I18n.ExtraLocale; path != "" {
		if err := i18n.Load(path); err != nil {
			log.Printf("Failed to load extra locale %s: %v", path, err)
		}
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := postgres.Migrate(db, migrations.FS, "."); err != nil {
		appLogger.Fatal("Could not run migrations", zap.Error(err))
	}

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	partRepo := partRepoPkg.NewPGRepository(db)
	calcRepo := calcRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Elasticsearch. Search falls back to SQL without it.
	var searcher dashboard.Searcher
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, search uses the database", zap.Error(err))
		esClient = nil
	} else {
		searcher = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 7. Initialize UseCases
	masters := lookup.NewMasterLookup(prodRepo, partRepo, redisClient, cfg.Pricing.LookupCacheTTL, appLogger)

	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, masters, cfg.Pricing.HighValueThreshold, appLogger)
	partUC := partUCPkg.NewSparePartUseCase(partRepo, esClient, masters, appLogger)
	calcUC := calcUCPkg.NewCalculationUseCase(calcRepo, masters, cfg.Pricing.ReconcileWorkers, appLogger)
	dashUC := dashUCPkg.NewDashboardUseCase(prodRepo, partRepo, searcher, cfg.Pricing.HighValueThreshold, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Initialize Kafka import listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		importListener := importListenerPkg.NewImportListener(kafkaConsumer, map[string]importListenerPkg.BulkUploader{
			importListenerPkg.KindProducts:          prodUC,
			importListenerPkg.KindSpareParts:        partUC,
			importListenerPkg.KindPriceCalculations: calcUC,
		}, appLogger)
		go importListener.Start(ctx)
	}

	// 9. Initialize Handlers
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	partHandler := partH.NewSparePartHandler(partUC, appLogger)
	calcHandler := calcH.NewCalculationHandler(calcUC, appLogger)
	dashHandler := dashH.NewDashboardHandler(dashUC, appLogger)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(chimw.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/products", prodHandler.Routes())
		r.Mount("/spare-parts", partHandler.Routes())
		r.Mount("/price-calculations", calcHandler.Routes())
		r.Get("/dashboard", dashHandler.Overview)
		r.Get("/search", dashHandler.Search)
	})

	httpServer := &http.Server{
		Addr:              withColon(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 10. Start gRPC Server
	lis, err := net.Listen("tcp", withColon(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLoggingInterceptor(appLogger)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
