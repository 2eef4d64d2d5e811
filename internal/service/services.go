package service

import (
	"log/slog"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/payment"
	postgres "github.com/kirinyoku/evently/internal/repository/postgres"
	redis "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service/account"
	"github.com/kirinyoku/evently/internal/service/admin"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/service/inventory"
	"github.com/kirinyoku/evently/internal/service/payments"
	"github.com/kirinyoku/evently/internal/service/promotion"
	"github.com/kirinyoku/evently/internal/service/provider"
	"github.com/kirinyoku/evently/internal/service/tickets"
)

type Services struct {
	Account   *account.Service
	Catalog   *catalog.Service
	Provider  *provider.Service
	Admin     *admin.Service
	Promotion *promotion.Service
	Inventory *inventory.Service
	Tickets   *tickets.Service
	Payments  *payments.Service
}

type Config struct {
	Catalog   catalog.Config
	Currency  string
	PublicURL string
}

type Deps struct {
	Store     *postgres.Store
	Cache     *redis.Cache
	PubSub    *redis.CatalogPubSub
	Limiter   inventory.Limiter
	Hasher    *auth.PasswordHasher
	Tokens    *auth.TokenManager
	Gateway   payment.Gateway
	Publisher broker.Publisher
	Logger    *slog.Logger
}

func NewServices(d Deps, cfg Config) *Services {
	cat := catalog.New(d.Store, d.Cache, d.PubSub, d.Logger, cfg.Catalog)

	return &Services{
		Account:   account.New(d.Store, d.Hasher, d.Tokens),
		Catalog:   cat,
		Provider:  provider.New(d.Store, cat),
		Admin:     admin.New(d.Store, cat, d.Gateway, d.Logger, admin.Config{Currency: cfg.Currency}),
		Promotion: promotion.New(d.Store),
		Inventory: inventory.New(d.Store, cat, d.Limiter, d.Publisher, d.Logger),
		Tickets:   tickets.New(d.Store, tickets.Config{Currency: cfg.Currency}),
		Payments:  payments.New(d.Store, d.Gateway, d.Publisher, d.Logger, payments.Config{Currency: cfg.Currency, PublicURL: cfg.PublicURL}),
	}
}
