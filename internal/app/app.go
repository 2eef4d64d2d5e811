package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/config"
	"github.com/kirinyoku/evently/internal/metrics"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/postgres"
	"github.com/kirinyoku/evently/internal/redis"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/storage"
	httpgin "github.com/kirinyoku/evently/internal/transport/http/gin"
	"github.com/kirinyoku/evently/migrations"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	services   *service.Services
	pubsub     *redisrepo.CatalogPubSub
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	rabbit     *broker.RabbitMQ
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	// Initialize dependencies
	pgxPool, err := postgres.New(ctx, postgres.Config{
		DSN:              cfg.Postgres.DSN(),
		MaxConns:         cfg.Postgres.MaxConns,
		MinConns:         cfg.Postgres.MinConns,
		AppName:          cfg.Postgres.AppName,
		StatementTimeout: cfg.Postgres.StatementTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := migrations.Apply(ctx, pgxPool); err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	rdb, err := redis.New(ctx, redis.Config{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		ClientName:  cfg.Redis.ClientName,
		PoolSize:    cfg.Redis.PoolSize,
		ReadTimeout: cfg.Redis.ReadTimeout,
	})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	gateway, err := newGateway(cfg.Payment)
	if err != nil {
		pgxPool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to initialize payment gateway: %w", err)
	}

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.Cloudinary.Enabled() {
		cld, err := storage.NewCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			pgxPool.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
		}
		uploader = cld
	} else {
		logger.Warn("cloudinary not configured, file uploads disabled")
	}

	var publisher broker.Publisher = broker.Nop{}
	var rabbit *broker.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		rabbit = broker.NewRabbitMQ(cfg.RabbitMQ.URL)
		publisher = rabbit
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewCatalogPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, redisrepo.KeyRateLimitPrefix(), cfg.RateLimit.Limit, cfg.RateLimit.Window)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, redisrepo.IdempotencyConfig{
		LockTTL:   cfg.Cache.IdempotencyLockTTL,
		ResultTTL: cfg.Cache.IdempotencyTTL,
		ScopeTTL: map[string]time.Duration{
			redisrepo.IdemScopeCheckout: cfg.Cache.IdempotencyCheckoutTTL,
		},
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenTTL)

	// Initialize services
	services := service.NewServices(service.Deps{
		Store:     store,
		Cache:     cache,
		PubSub:    pubsub,
		Limiter:   limiter,
		Hasher:    auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Tokens:    tokens,
		Gateway:   gateway,
		Publisher: publisher,
		Logger:    logger,
	}, service.Config{
		Catalog: catalog.Config{
			DetailsTTL: cfg.Cache.DetailsTTL,
			ListingTTL: cfg.Cache.ListingTTL,
		},
		Currency:  cfg.Payment.Currency,
		PublicURL: cfg.Server.PublicURL,
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, tokens, uploader, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		services: services,
		pubsub:   pubsub,
		pool:     pgxPool,
		rdb:      rdb,
		rabbit:   rabbit,
	}, nil
}

// newGateway returns nil when no provider is configured.
func newGateway(cfg config.PaymentConfig) (payment.Gateway, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "stripe":
		return payment.WithRetry(payment.NewStripe(cfg.StripeSecretKey), cfg.MaxRetries), nil
	case "midtrans":
		return payment.WithRetry(payment.NewMidtrans(cfg.MidtransServerKey, cfg.MidtransProd), cfg.MaxRetries), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop cache entries changed on other instances
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, kind string, id int64) {
			metrics.CatalogChanges.WithLabelValues(kind).Inc()
			if err := a.services.Catalog.Invalidate(ctx, kind, id); err != nil {
				a.logger.Warn("catalog invalidation failed", "kind", kind, "id", id, "error", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("catalog subscriber: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

func (a *App) close() {
	if a.rabbit != nil {
		if err := a.rabbit.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", "error", err)
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Warn("failed to close redis client", "error", err)
	}

	a.pool.Close()
}
