package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/metrics"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/uow"
)

// Limiter throttles purchases per caller.
type Limiter interface {
	Allow(ctx context.Context, suffix string) (redisrepo.Decision, error)
}

type Service struct {
	store     *postgresrepo.Store
	changes   catalog.Changes
	limiter   Limiter
	publisher broker.Publisher
	logger    *slog.Logger
	uow       *uow.UoW
	now       func() time.Time
}

func New(
	store *postgresrepo.Store,
	changes catalog.Changes,
	limiter Limiter,
	publisher broker.Publisher,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = broker.Nop{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:     store,
		changes:   changes,
		limiter:   limiter,
		publisher: publisher,
		logger:    logger,
		uow:       uow.NewUoW(store),
		now:       time.Now,
	}
}

// PurchaseTickets takes quantity units of a ticket type for a user. The stock
// check, the decrement, the pending reservation and one ticket per unit are
// written in a single transaction; concurrent buyers of the last units
// serialize on the ticket type row.
//
// Parameters:
//   - ctx: request-scoped context.
//   - userID: the buyer.
//   - ticketTypeID: the ticket type to buy.
//   - quantity: number of tickets, must be positive.
//
// Returns:
//   - *postgresrepo.Purchase: the pending reservation and its tickets.
//   - error: inventory.ErrInvalidQuantity if quantity is not positive.
//   - error: inventory.RateLimitedError if the caller exceeded the purchase rate.
//   - error: inventory.ErrTicketTypeNotFound if the type or its event is missing or deleted.
//   - error: inventory.ErrEventNotApproved if the event is not approved.
//   - error: inventory.ErrInsufficientQuantity if fewer than quantity units remain.
func (s *Service) PurchaseTickets(
	ctx context.Context,
	userID, ticketTypeID int64,
	quantity int,
) (*postgresrepo.Purchase, error) {
	const op = "service.inventory.PurchaseTickets"

	if quantity <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	if err := s.throttle(ctx, userID); err != nil {
		metrics.TicketPurchases.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var purchase *postgresrepo.Purchase

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		p, err := s.store.Reservations().
			With(tx).
			PurchaseTickets(ctx, userID, ticketTypeID, quantity)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s: %w", op, ErrTicketTypeNotFound)
			case errors.Is(err, repository.ErrNotApproved):
				return fmt.Errorf("%s: %w", op, ErrEventNotApproved)
			case errors.Is(err, repository.ErrInsufficientQuantity):
				return fmt.Errorf("%s: %w", op, ErrInsufficientQuantity)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		purchase = p

		after(func(ctx context.Context) {
			s.changes.EventChanged(ctx, *p.Reservation.EventID)
			s.publishPurchase(ctx, p)
		})

		return nil
	})
	if err != nil {
		metrics.TicketPurchases.WithLabelValues(outcome(err, ErrInsufficientQuantity)).Inc()
		return nil, err
	}

	metrics.TicketPurchases.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.TicketsIssued.Add(float64(len(purchase.Tickets)))

	return purchase, nil
}

func (s *Service) publishPurchase(ctx context.Context, p *postgresrepo.Purchase) {
	codes := make([]string, 0, len(p.Tickets))
	for _, t := range p.Tickets {
		codes = append(codes, t.Code)
	}

	msg := broker.TicketsPurchased{
		ReservationID: p.Reservation.ID,
		UserID:        p.Reservation.UserID,
		EventID:       *p.Reservation.EventID,
		TicketTypeID:  *p.Reservation.TicketTypeID,
		Quantity:      p.Reservation.Quantity,
		TotalCents:    p.Reservation.TotalCents,
		Codes:         codes,
		OccurredAt:    s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, broker.QueueTicketsPurchased, msg); err != nil {
		s.logger.Warn("publish tickets purchased failed",
			"reservation_id", p.Reservation.ID, "error", err)
	}
}

// ReservePlace books one calendar date of a place for a user. The date is
// truncated to its UTC day.
//
// Returns:
//   - *domain.Reservation: the pending reservation.
//   - error: inventory.ErrDateInPast if the date is before today.
//   - error: inventory.ErrPlaceNotFound, inventory.ErrPlaceNotApproved.
//   - error: inventory.ErrDateBlocked if the owner blocked the date.
//   - error: inventory.ErrDateReserved if another live reservation holds the date.
func (s *Service) ReservePlace(
	ctx context.Context,
	userID, placeID int64,
	date time.Time,
) (*domain.Reservation, error) {
	const op = "service.inventory.ReservePlace"

	day := domain.Day(date)
	if day.Before(domain.Day(s.now())) {
		return nil, fmt.Errorf("%s: %w", op, ErrDateInPast)
	}

	var res *domain.Reservation

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		r, err := s.store.Reservations().
			With(tx).
			ReservePlace(ctx, userID, placeID, day)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s: %w", op, ErrPlaceNotFound)
			case errors.Is(err, repository.ErrNotApproved):
				return fmt.Errorf("%s: %w", op, ErrPlaceNotApproved)
			case errors.Is(err, repository.ErrDateBlocked):
				return fmt.Errorf("%s: %w", op, ErrDateBlocked)
			case errors.Is(err, repository.ErrDateReserved):
				return fmt.Errorf("%s: %w", op, ErrDateReserved)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		res = r

		after(func(ctx context.Context) {
			s.changes.PlaceChanged(ctx, placeID)
		})

		return nil
	})
	if err != nil {
		metrics.PlaceReservations.WithLabelValues(outcome(err, ErrDateReserved)).Inc()
		return nil, err
	}

	metrics.PlaceReservations.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return res, nil
}

// CancelReservation cancels a pending reservation of the caller. Ticket
// reservations return their units to the ticket type in the same transaction;
// place reservations free the date.
//
// Returns:
//   - error: inventory.ErrReservationNotFound, inventory.ErrForbidden.
//   - error: inventory.ErrReservationNotPending if it is confirmed or cancelled.
func (s *Service) CancelReservation(ctx context.Context, userID, reservationID int64) error {
	const op = "service.inventory.CancelReservation"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		reservations := s.store.Reservations().With(tx)

		r, err := reservations.LockByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrReservationNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if r.UserID != userID {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		if err := reservations.SetStatus(
			ctx,
			r.ID,
			domain.ReservationPending,
			domain.ReservationCancelled,
		); err != nil {
			if errors.Is(err, repository.ErrInvalidState) {
				return fmt.Errorf("%s: %w", op, ErrReservationNotPending)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		switch r.Kind {
		case domain.ReservationTickets:
			if err := reservations.Restock(ctx, *r.TicketTypeID, r.Quantity); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			after(func(ctx context.Context) {
				s.changes.EventChanged(ctx, *r.EventID)
			})
		case domain.ReservationPlace:
			after(func(ctx context.Context) {
				s.changes.PlaceChanged(ctx, *r.PlaceID)
			})
		}

		return nil
	})
}

func (s *Service) throttle(ctx context.Context, userID int64) error {
	if s.limiter == nil {
		return nil
	}

	d, err := s.limiter.Allow(ctx, "purchase:"+strconv.FormatInt(userID, 10))
	if err != nil {
		// Fail open.
		s.logger.Warn("rate limiter unavailable", "user_id", userID, "error", err)
		return nil
	}

	if !d.Allowed {
		return RateLimitedError{RetryAfter: d.RetryAfter}
	}

	return nil
}

func outcome(err, conflict error) string {
	switch {
	case errors.Is(err, conflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrTicketTypeNotFound),
		errors.Is(err, ErrEventNotApproved),
		errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrPlaceNotApproved),
		errors.Is(err, ErrDateBlocked):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
