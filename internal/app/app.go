package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailadapter "github.com/Abdurahmanit/GroupProject/shop-service/internal/adapter/email"
	mongoadapter "github.com/Abdurahmanit/GroupProject/shop-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/shop-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/shop-service/internal/adapter/redis"
	s3adapter "github.com/Abdurahmanit/GroupProject/shop-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/tracer"
	httpserver "github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/handler"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/router"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const producerName = "shop-service"

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *httpserver.Server
	metricsServer  *httpserver.Server
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
	tracerProvider *tracer.Provider
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	tp, err := tracer.Init(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	application := &App{cfg: cfg, log: appLogger, tracerProvider: tp}

	appLogger.Info("Initializing MongoDB client...")
	application.mongoClient, err = mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	db := application.mongoClient.Database(cfg.MongoDB.Database)

	appLogger.Info("Initializing Redis client...")
	application.redisClient, err = redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}

	appLogger.Info("Connecting to NATS...")
	application.natsConn, err = natsadapter.NewConnection(cfg.NATS, appLogger)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	publisher, err := natsadapter.NewPublisher(application.natsConn, producerName)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	appLogger.Info("Initializing object storage...")
	photos, err := s3adapter.NewStorage(ctx, cfg.S3, appLogger)
	if err != nil {
		application.closeResources(ctx)
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	var mailer service.Mailer
	if cfg.SMTP.Host != "" {
		sender, err := emailadapter.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			application.closeResources(ctx)
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		mailer = sender
	} else {
		appLogger.Info("SMTP host not configured, password reset notices are disabled")
	}

	userRepo := mongoadapter.NewUserRepository(db, appLogger)
	orderRepo := mongoadapter.NewOrderRepository(db, appLogger)
	categoryRepo := mongoadapter.NewCategoryRepository(db, appLogger)
	productRepo := mongoadapter.NewProductRepository(db, appLogger)
	categoryCache := redisadapter.NewCategoryCache(application.redisClient)
	appLogger.Info("Repositories initialized")

	m := metrics.New("shop")
	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := service.NewAuthService(userRepo, tokens, auth.NewBcryptHasher(0), publisher, mailer, m, appLogger)
	orderService := service.NewOrderService(orderRepo, publisher, m, appLogger)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, categoryCache, photos, cfg.CategoryCache.TTL, m, appLogger)

	mux := router.New(router.Deps{
		Auth:           handler.NewAuthHandler(authService, appLogger),
		Orders:         handler.NewOrderHandler(orderService, appLogger),
		Catalog:        handler.NewCatalogHandler(catalogService, appLogger),
		Tokens:         tokens,
		Users:          userRepo,
		Metrics:        m,
		Log:            appLogger,
		RequestTimeout: cfg.HTTPServer.RequestTimeout,
	})
	application.server = httpserver.NewServer(cfg.HTTPServer, mux, appLogger)

	if cfg.Metrics.Port != "" {
		metricsCfg := cfg.HTTPServer
		metricsCfg.Port = cfg.Metrics.Port
		application.metricsServer = httpserver.NewServer(metricsCfg, m.Handler(), appLogger.Named("metrics"))
	}

	return application, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.Start(); err != nil {
				a.log.Errorf("Prometheus metrics server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Stop(shutdownCtx); err != nil {
			a.log.Errorf("Error stopping metrics server: %v", err)
		}
	}

	a.closeResources(shutdownCtx)
	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}

// closeResources releases whatever New managed to open, in reverse dependency order.
func (a *App) closeResources(ctx context.Context) {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}

	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		} else {
			a.log.Info("NATS connection drained")
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}
}
