package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/uow"
)

type Config struct {
	Currency string
}

// Service reviews service-provider submissions.
type Service struct {
	store   *postgresrepo.Store
	changes catalog.Changes
	gateway payment.Gateway
	logger  *slog.Logger
	uow     *uow.UoW
	cfg     Config
}

// New builds the admin service. gateway may be nil when payments are disabled.
func New(
	store *postgresrepo.Store,
	changes catalog.Changes,
	gateway payment.Gateway,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	return &Service{
		store:   store,
		changes: changes,
		gateway: gateway,
		logger:  logger,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

func (s *Service) PendingEvents(ctx context.Context) ([]domain.Event, error) {
	const op = "service.admin.PendingEvents"

	events, err := s.store.Events().ListByStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Service) PendingPlaces(ctx context.Context) ([]domain.Place, error) {
	const op = "service.admin.PendingPlaces"

	places, err := s.store.Places().ListByStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

// ApproveEvent publishes a pending event. After commit the event and its
// ticket types are mirrored to the payment gateway as a product with prices.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event does not exist.
//   - error: domain.ErrInvalidTransition if the event is not pending.
func (s *Service) ApproveEvent(ctx context.Context, eventID int64) error {
	const op = "service.admin.ApproveEvent"

	err := s.reviewEvent(ctx, eventID, func(a domain.Approval) (domain.Approval, error) {
		return a.Approve()
	}, func(ctx context.Context) {
		s.syncProduct(ctx, eventID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RejectEvent rejects a pending event with a note for its owner.
//
// Returns:
//   - error: domain.ErrNoteRequired if note is blank.
func (s *Service) RejectEvent(ctx context.Context, eventID int64, note string) error {
	const op = "service.admin.RejectEvent"

	err := s.reviewEvent(ctx, eventID, func(a domain.Approval) (domain.Approval, error) {
		return a.Reject(note)
	}, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) reviewEvent(
	ctx context.Context,
	eventID int64,
	transition func(domain.Approval) (domain.Approval, error),
	onCommit uow.AfterCommit,
) error {
	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		events := s.store.Events().With(tx)

		e, err := events.LockByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		next, err := transition(e.Approval)
		if err != nil {
			return err
		}

		if err := events.SetApproval(ctx, eventID, next); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.changes.EventChanged(ctx, eventID)
		})
		if onCommit != nil {
			after(onCommit)
		}

		return nil
	})
}

func (s *Service) ApprovePlace(ctx context.Context, placeID int64) error {
	const op = "service.admin.ApprovePlace"

	if err := s.reviewPlace(ctx, placeID, func(a domain.Approval) (domain.Approval, error) {
		return a.Approve()
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) RejectPlace(ctx context.Context, placeID int64, note string) error {
	const op = "service.admin.RejectPlace"

	if err := s.reviewPlace(ctx, placeID, func(a domain.Approval) (domain.Approval, error) {
		return a.Reject(note)
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) reviewPlace(
	ctx context.Context,
	placeID int64,
	transition func(domain.Approval) (domain.Approval, error),
) error {
	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		places := s.store.Places().With(tx)

		p, err := places.LockByID(ctx, placeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPlaceNotFound
			}
			return err
		}

		next, err := transition(p.Approval)
		if err != nil {
			return err
		}

		if err := places.SetApproval(ctx, placeID, next); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.changes.PlaceChanged(ctx, placeID)
		})

		return nil
	})
}

// syncProduct creates the gateway product of an event and a price per ticket
// type that has none yet. Failures are logged and retried on the next approval.
func (s *Service) syncProduct(ctx context.Context, eventID int64) {
	if s.gateway == nil {
		return
	}

	log := s.logger.With("event_id", eventID, "provider", s.gateway.Name())

	e, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		log.Warn("product sync: load event failed", "error", err)
		return
	}

	productID := ""
	if e.GatewayProductID != nil {
		productID = *e.GatewayProductID
	}

	if productID == "" {
		productID, err = s.gateway.CreateProduct(ctx, e.Name, e.Description)
		if err != nil {
			if errors.Is(err, payment.ErrUnsupported) {
				log.Debug("product sync skipped")
				return
			}
			log.Warn("product sync: create product failed", "error", err)
			return
		}

		if err := s.store.Events().SetGatewayProduct(ctx, eventID, productID); err != nil {
			log.Warn("product sync: store product failed", "error", err)
			return
		}
	}

	for _, tt := range e.TicketTypes {
		if tt.GatewayPriceID != nil && *tt.GatewayPriceID != "" {
			continue
		}

		priceID, err := s.gateway.CreatePrice(ctx, productID, tt.PriceCents, s.cfg.Currency)
		if err != nil {
			log.Warn("product sync: create price failed", "ticket_type_id", tt.ID, "error", err)
			continue
		}

		if err := s.store.Events().SetGatewayPrice(ctx, tt.ID, priceID); err != nil {
			log.Warn("product sync: store price failed", "ticket_type_id", tt.ID, "error", err)
		}
	}
}
