package payments

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirinyoku/evently/internal/broker"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/metrics"
	"github.com/kirinyoku/evently/internal/payment"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	"github.com/kirinyoku/evently/internal/uow"
)

type Config struct {
	Currency string
	// PublicURL is where the gateway sends the buyer back when the request
	// names no return links.
	PublicURL string
}

// Service drives hosted checkout for reservations and settles them from the
// gateway's view of each session.
type Service struct {
	store     *postgresrepo.Store
	gateway   payment.Gateway
	publisher broker.Publisher
	logger    *slog.Logger
	uow       *uow.UoW
	cfg       Config
	now       func() time.Time
}

// New builds the payments service. A nil gateway disables every operation.
func New(
	store *postgresrepo.Store,
	gateway payment.Gateway,
	publisher broker.Publisher,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if publisher == nil {
		publisher = broker.Nop{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	return &Service{
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		uow:       uow.NewUoW(store),
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateCheckout opens a gateway checkout session for a pending reservation of
// the caller and records it as the reservation's payment. Retrying replaces an
// earlier unpaid session.
//
// Returns:
//   - *domain.Payment: the pending payment with its checkout URL.
//   - error: payments.ErrReservationNotFound, payments.ErrNotOwner,
//     payments.ErrReservationNotPending, payments.ErrAlreadyPaid.
//   - error: payment.ErrGateway if the gateway call failed.
func (s *Service) CreateCheckout(
	ctx context.Context,
	userID, reservationID int64,
	successURL, cancelURL string,
) (*domain.Payment, error) {
	const op = "service.payments.CreateCheckout"

	if s.gateway == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrPaymentsDisabled)
	}

	res, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case res.UserID != userID:
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	case res.Status == domain.ReservationConfirmed:
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyPaid)
	case res.Status != domain.ReservationPending:
		return nil, fmt.Errorf("%s: %w", op, ErrReservationNotPending)
	case res.TotalCents <= 0:
		return nil, fmt.Errorf("%s: %w", op, ErrNothingToPay)
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := s.checkoutRequest(ctx, res, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	back := fmt.Sprintf("%s/me/reservations/%d", s.cfg.PublicURL, reservationID)
	req.SuccessURL = cmp.Or(successURL, back+"?checkout=success")
	req.CancelURL = cmp.Or(cancelURL, back+"?checkout=cancelled")

	co, err := s.gateway.CreateCheckout(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p := &domain.Payment{
		ReservationID:  res.ID,
		UserID:         userID,
		AmountCents:    res.TotalCents,
		Provider:       s.gateway.Name(),
		Status:         domain.PaymentPending,
		TransactionRef: co.TransactionRef,
		CheckoutURL:    co.URL,
	}

	p.ID, err = s.store.Payments().Upsert(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyPaid)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Service) checkoutRequest(
	ctx context.Context,
	res *domain.Reservation,
	user *domain.User,
) (payment.CheckoutRequest, error) {
	req := payment.CheckoutRequest{
		// Unique per attempt.
		ReferenceID:   fmt.Sprintf("res-%d-%d", res.ID, s.now().Unix()),
		UnitAmount:    res.TotalCents,
		Quantity:      1,
		Currency:      s.cfg.Currency,
		CustomerEmail: user.Email,
	}

	if user.GatewayCustomer != nil {
		req.CustomerID = *user.GatewayCustomer
	}

	switch res.Kind {
	case domain.ReservationTickets:
		e, err := s.store.Events().GetByID(ctx, *res.EventID)
		if err != nil {
			return req, err
		}

		req.Description = e.Name
		for _, tt := range e.TicketTypes {
			if tt.ID != *res.TicketTypeID {
				continue
			}

			req.Description = e.Name + " - " + tt.Name
			if tt.PriceCents*int64(res.Quantity) == res.TotalCents {
				req.UnitAmount = tt.PriceCents
				req.Quantity = int64(res.Quantity)
				if tt.GatewayPriceID != nil {
					req.PriceID = *tt.GatewayPriceID
				}
			}
		}
	case domain.ReservationPlace:
		p, err := s.store.Places().GetByID(ctx, *res.PlaceID)
		if err != nil {
			return req, err
		}

		req.Description = p.Name
		if res.ReservedDate != nil {
			req.Description += " on " + res.ReservedDate.Format(time.DateOnly)
		}
	}

	return req, nil
}

// Reconcile asks the gateway for the state of a checkout session and applies
// it. Sessions replaced by a later checkout still resolve. A paid session
// confirms its reservation in the same transaction that marks the payment
// succeeded; a failed or expired current session marks the payment failed.
// Settled payments are returned unchanged, so notifications may repeat.
//
// Returns:
//   - *domain.Payment: the payment after reconciliation.
//   - error: payments.ErrPaymentNotFound if no payment carries the reference.
//   - error: payments.ErrReservationNotPending if a paid session belongs to a
//     reservation that was cancelled meanwhile.
func (s *Service) Reconcile(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	const op = "service.payments.Reconcile"

	if s.gateway == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrPaymentsDisabled)
	}

	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
	}

	if _, err := s.store.Payments().GetByRef(ctx, transactionRef); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status, err := s.gateway.Status(ctx, transactionRef)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		out       *domain.Payment
		confirmed *domain.Reservation
	)

	err = s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		confirmed = nil

		paymentsRepo := s.store.Payments().With(tx)

		p, err := paymentsRepo.LockByRef(ctx, transactionRef)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		out = p

		if p.Status == domain.PaymentSucceeded {
			return nil
		}

		switch status {
		case payment.StatusPaid:
			reservations := s.store.Reservations().With(tx)

			if err := reservations.SetStatus(
				ctx,
				p.ReservationID,
				domain.ReservationPending,
				domain.ReservationConfirmed,
			); err != nil {
				if errors.Is(err, repository.ErrInvalidState) {
					return fmt.Errorf("%s: %w", op, ErrReservationNotPending)
				}
				return fmt.Errorf("%s: %w", op, err)
			}

			if err := paymentsRepo.MarkSucceeded(ctx, p.ID, transactionRef); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			res, err := reservations.GetByID(ctx, p.ReservationID)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			now := s.now()
			p.Status = domain.PaymentSucceeded
			p.TransactionRef = transactionRef
			p.PaidAt = &now
			confirmed = res
		case payment.StatusFailed:
			// A superseded session failing leaves the current one payable.
			if p.Status == domain.PaymentFailed || p.TransactionRef != transactionRef {
				return nil
			}

			if err := paymentsRepo.SetStatus(ctx, p.ID, domain.PaymentFailed); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			p.Status = domain.PaymentFailed
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentReconciliations.WithLabelValues(out.Provider, string(out.Status)).Inc()

	if confirmed != nil {
		s.publishConfirmed(ctx, out, confirmed)
	}

	return out, nil
}

func (s *Service) publishConfirmed(ctx context.Context, p *domain.Payment, res *domain.Reservation) {
	msg := broker.ReservationConfirmed{
		ReservationID:  res.ID,
		UserID:         res.UserID,
		Kind:           string(res.Kind),
		AmountCents:    p.AmountCents,
		Provider:       p.Provider,
		TransactionRef: p.TransactionRef,
		OccurredAt:     s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, broker.QueueReservationConfirmed, msg); err != nil {
		s.logger.Warn("publish reservation confirmed failed",
			"reservation_id", res.ID, "error", err)
	}
}

// PaymentFor returns the payment of one of the caller's reservations.
func (s *Service) PaymentFor(ctx context.Context, userID, reservationID int64) (*domain.Payment, error) {
	const op = "service.payments.PaymentFor"

	p, err := s.store.Payments().GetByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	return p, nil
}

// CreateCustomer registers the caller with the gateway once and remembers the
// customer ID.
//
// Returns:
//   - string: the gateway customer ID.
//   - error: payment.ErrUnsupported if the provider has no customer objects.
func (s *Service) CreateCustomer(ctx context.Context, userID int64) (string, error) {
	const op = "service.payments.CreateCustomer"

	if s.gateway == nil {
		return "", fmt.Errorf("%s: %w", op, ErrPaymentsDisabled)
	}

	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if u.GatewayCustomer != nil && *u.GatewayCustomer != "" {
		return *u.GatewayCustomer, nil
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}

	id, err := s.gateway.CreateCustomer(ctx, u.Email, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Users().SetGatewayCustomer(ctx, userID, id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// PortalSession returns a self-service billing portal URL for the caller.
//
// Returns:
//   - error: payments.ErrNoCustomer if CreateCustomer was never called.
func (s *Service) PortalSession(ctx context.Context, userID int64, returnURL string) (string, error) {
	const op = "service.payments.PortalSession"

	if s.gateway == nil {
		return "", fmt.Errorf("%s: %w", op, ErrPaymentsDisabled)
	}

	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if u.GatewayCustomer == nil || *u.GatewayCustomer == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoCustomer)
	}

	url, err := s.gateway.CreatePortalSession(ctx, *u.GatewayCustomer, returnURL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}
