package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Payment    PaymentConfig
	Cloudinary CloudinaryConfig
	RabbitMQ   RabbitMQConfig
	RateLimit  RateLimitConfig
	Cache      CacheConfig
	LogLevel   slog.Level
}

type ServerConfig struct {
	Host string
	Port int
	// PublicURL is used to build checkout return links.
	PublicURL string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	ClientName  string
	PoolSize    int
	ReadTimeout time.Duration
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
	MaxConns int32
	MinConns int32
	// AppName is sent as application_name on every session.
	AppName          string
	StatementTimeout time.Duration
}

// DSN returns a libpq style connection URL.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration
	BcryptCost  int
}

type PaymentConfig struct {
	// Provider is "stripe", "midtrans" or empty to disable payments.
	Provider          string
	StripeSecretKey   string
	MidtransServerKey string
	MidtransProd      bool
	Currency          string
	MaxRetries        uint64
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type RabbitMQConfig struct {
	URL string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type CacheConfig struct {
	DetailsTTL time.Duration
	ListingTTL time.Duration
	// IdempotencyTTL is how long purchase and reservation responses replay.
	IdempotencyTTL time.Duration
	// IdempotencyCheckoutTTL is shorter since a replayed checkout URL must
	// still point at a live gateway session.
	IdempotencyCheckoutTTL time.Duration
	IdempotencyLockTTL     time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host:      stringEnv("SERVER_HOST", "localhost"),
		Port:      serverPort,
		PublicURL: strings.TrimRight(stringEnv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", serverPort)), "/"),
	}

	postgresPort, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresMaxConns, err := intEnv("POSTGRES_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresMinConns, err := intEnv("POSTGRES_MIN_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	statementTimeout, err := durationEnv("POSTGRES_STATEMENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     stringEnv("POSTGRES_HOST", "localhost"),
		Port:     postgresPort,
		SSLMode:  stringEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: int32(postgresMaxConns),
		MinConns: int32(postgresMinConns),

		AppName:          stringEnv("POSTGRES_APP_NAME", "evently"),
		StatementTimeout: statementTimeout,
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisPoolSize, err := intEnv("REDIS_POOL_SIZE", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisReadTimeout, err := durationEnv("REDIS_READ_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:        stringEnv("REDIS_ADDR", "localhost:6380"),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          redisDB,
		ClientName:  stringEnv("REDIS_CLIENT_NAME", "evently"),
		PoolSize:    redisPoolSize,
		ReadTimeout: redisReadTimeout,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}

	tokenTTL, err := durationEnv("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bcryptCost, err := intEnv("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authCfg := AuthConfig{
		JWTSecret:   jwtSecret,
		JWTIssuer:   stringEnv("JWT_ISSUER", "evently"),
		JWTAudience: stringEnv("JWT_AUDIENCE", "evently-api"),
		TokenTTL:    tokenTTL,
		BcryptCost:  bcryptCost,
	}

	paymentCfg, err := paymentConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rateLimit, err := intEnv("RATE_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rateWindow, err := durationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detailsTTL, err := durationEnv("CACHE_DETAILS_TTL", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	listingTTL, err := durationEnv("CACHE_LISTING_TTL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idemTTL, err := durationEnv("IDEMPOTENCY_TTL", 2*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idemCheckoutTTL, err := durationEnv("IDEMPOTENCY_CHECKOUT_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idemLockTTL, err := durationEnv("IDEMPOTENCY_LOCK_TTL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(stringEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("%s: invalid LOG_LEVEL: %w", op, err)
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Auth:     authCfg,
		Payment:  paymentCfg,
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		RabbitMQ: RabbitMQConfig{URL: os.Getenv("RABBITMQ_URL")},
		RateLimit: RateLimitConfig{
			Limit:  rateLimit,
			Window: rateWindow,
		},
		Cache: CacheConfig{
			DetailsTTL:             detailsTTL,
			ListingTTL:             listingTTL,
			IdempotencyTTL:         idemTTL,
			IdempotencyCheckoutTTL: idemCheckoutTTL,
			IdempotencyLockTTL:     idemLockTTL,
		},
		LogLevel: level,
	}, nil
}

func paymentConfig() (PaymentConfig, error) {
	maxRetries, err := intEnv("PAYMENT_MAX_RETRIES", 3)
	if err != nil {
		return PaymentConfig{}, err
	}

	cfg := PaymentConfig{
		Provider:          strings.ToLower(os.Getenv("PAYMENT_PROVIDER")),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransProd:      strings.EqualFold(os.Getenv("MIDTRANS_ENV"), "production"),
		Currency:          strings.ToLower(stringEnv("PAYMENT_CURRENCY", "usd")),
		MaxRetries:        uint64(maxRetries),
	}

	switch cfg.Provider {
	case "":
	case "stripe":
		if cfg.StripeSecretKey == "" {
			return cfg, fmt.Errorf("missing STRIPE_SECRET_KEY")
		}
	case "midtrans":
		if cfg.MidtransServerKey == "" {
			return cfg, fmt.Errorf("missing MIDTRANS_SERVER_KEY")
		}
	default:
		return cfg, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}
