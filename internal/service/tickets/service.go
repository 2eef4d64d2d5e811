package tickets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirinyoku/evently/internal/document"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
)

type Config struct {
	Currency string
}

type Service struct {
	store *postgresrepo.Store
	cfg   Config
}

func New(store *postgresrepo.Store, cfg Config) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}

	return &Service{store: store, cfg: cfg}
}

// MyTickets lists the caller's tickets of pending and confirmed reservations.
func (s *Service) MyTickets(ctx context.Context, userID int64) ([]domain.TicketView, error) {
	const op = "service.tickets.MyTickets"

	out, err := s.store.Tickets().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// MyPlaceReservations lists the caller's place bookings, newest first.
func (s *Service) MyPlaceReservations(ctx context.Context, userID int64) ([]domain.PlaceReservationView, error) {
	const op = "service.tickets.MyPlaceReservations"

	out, err := s.store.Reservations().ListPlaceReservationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetReservation returns one of the caller's reservations.
//
// Returns:
//   - error: tickets.ErrReservationNotFound if it does not exist.
//   - error: tickets.ErrNotOwner if it belongs to another user.
func (s *Service) GetReservation(ctx context.Context, userID, reservationID int64) (*domain.Reservation, error) {
	const op = "service.tickets.GetReservation"

	r, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if r.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	return r, nil
}

// ReservationTicketsPDF renders every ticket of a confirmed ticket reservation,
// one page each.
//
// Returns:
//   - []byte: the PDF document.
//   - error: tickets.ErrNotConfirmed unless the reservation is confirmed.
func (s *Service) ReservationTicketsPDF(ctx context.Context, userID, reservationID int64) ([]byte, error) {
	const op = "service.tickets.ReservationTicketsPDF"

	r, err := s.GetReservation(ctx, userID, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if r.Kind != domain.ReservationTickets {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongKind)
	}

	if r.Status != domain.ReservationConfirmed {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfirmed)
	}

	views, err := s.store.Tickets().ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pdf, err := s.renderTickets(ctx, userID, views)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pdf, nil
}

// TicketPDF renders a single ticket of the caller.
func (s *Service) TicketPDF(ctx context.Context, userID int64, ticketID uuid.UUID) ([]byte, error) {
	const op = "service.tickets.TicketPDF"

	v, err := s.store.Tickets().GetView(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if v.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	if v.ReservationStatus != domain.ReservationConfirmed {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfirmed)
	}

	pdf, err := s.renderTickets(ctx, userID, []domain.TicketView{*v})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pdf, nil
}

// PlaceReservationPDF renders the booking sheet of a live place reservation.
//
// Returns:
//   - error: tickets.ErrCancelled if the reservation was cancelled.
func (s *Service) PlaceReservationPDF(ctx context.Context, userID, reservationID int64) ([]byte, error) {
	const op = "service.tickets.PlaceReservationPDF"

	v, err := s.store.Reservations().GetPlaceReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if v.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	if v.Status == domain.ReservationCancelled {
		return nil, fmt.Errorf("%s: %w", op, ErrCancelled)
	}

	holder, err := s.holderName(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking := document.PlaceBooking{
		ReservationID: v.ID,
		PlaceName:     v.PlaceName,
		Location:      v.PlaceLocation,
		Total:         s.money(v.TotalCents),
		Status:        string(v.Status),
		HolderName:    holder,
	}
	if v.ReservedDate != nil {
		booking.Date = *v.ReservedDate
	}

	var buf bytes.Buffer
	if err := document.WritePlaceBooking(&buf, booking); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func (s *Service) renderTickets(ctx context.Context, userID int64, views []domain.TicketView) ([]byte, error) {
	holder, err := s.holderName(ctx, userID)
	if err != nil {
		return nil, err
	}

	pages := make([]document.TicketPage, 0, len(views))
	for _, v := range views {
		pages = append(pages, document.TicketPage{
			Code:           v.Code,
			EventName:      v.EventName,
			StartsAt:       v.EventStartsAt,
			Location:       v.LocationAddress,
			TicketTypeName: v.TicketTypeName,
			Price:          s.money(v.PriceCents),
			HolderName:     holder,
		})
	}

	var buf bytes.Buffer
	if err := document.WriteTickets(&buf, pages); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *Service) holderName(ctx context.Context, userID int64) (string, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}

	return name, nil
}

func (s *Service) money(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2) + " " + strings.ToUpper(s.cfg.Currency)
}
