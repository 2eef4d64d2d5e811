package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type ReservationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReservationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// inTx runs fn on the bound transaction, or in a fresh serializable one when
// the repo is not bound.
func (r *ReservationRepo) inTx(ctx context.Context, fn func(db DB) error) error {
	if r.db != nil {
		return fn(r.db)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Purchase is the outcome of a ticket purchase.
type Purchase struct {
	Reservation domain.Reservation
	Tickets     []domain.Ticket
}

// PurchaseTickets decrements the remaining quantity of a ticket type and mints
// one ticket per unit under a pending reservation, all in one transaction.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - userID: the buyer.
//   - ticketTypeID: the ticket type to buy from.
//   - quantity: number of units, must be positive.
//
// Returns:
//   - *Purchase: the reservation and its tickets.
//   - error: repository.ErrNotFound if the ticket type or its event is missing or deleted.
//   - error: repository.ErrNotApproved if the event is not approved.
//   - error: repository.ErrInsufficientQuantity if fewer than quantity units remain.
func (r *ReservationRepo) PurchaseTickets(
	ctx context.Context,
	userID int64,
	ticketTypeID int64,
	quantity int,
) (*Purchase, error) {
	const op = "postgresrepo.ReservationRepo.PurchaseTickets"

	var out *Purchase
	err := r.inTx(ctx, func(db DB) error {
		p, err := r.purchaseCore(ctx, db, userID, ticketTypeID, quantity)
		out = p
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *ReservationRepo) purchaseCore(
	ctx context.Context,
	db DB,
	userID int64,
	ticketTypeID int64,
	quantity int,
) (*Purchase, error) {
	const op = "postgresrepo.ReservationRepo.purchaseCore"

	var (
		eventID    int64
		priceCents int64
		remaining  int
		status     string
	)

	if err := db.QueryRow(ctx,
		`SELECT tt.event_id, tt.price_cents, tt.quantity, e.approval_status
		 FROM ticket_types tt
		 JOIN events e ON e.id = tt.event_id
		 WHERE tt.id = $1 AND `+live("tt")+` AND `+live("e")+`
		 FOR UPDATE OF tt`,
		ticketTypeID,
	).Scan(&eventID, &priceCents, &remaining, &status); err != nil {
		return nil, wrapDBErr(op, err)
	}

	if domain.ApprovalStatus(status) != domain.ApprovalApproved {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotApproved)
	}

	if remaining < quantity {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrInsufficientQuantity)
	}

	tag, err := db.Exec(ctx,
		`UPDATE ticket_types
		 SET quantity = quantity - $2, version = version + 1
		 WHERE id = $1 AND quantity >= $2`,
		ticketTypeID, quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrInsufficientQuantity)
		}
		return nil, wrapDBErr(op, err)
	}

	if tag.RowsAffected() != 1 {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrInsufficientQuantity)
	}

	res := domain.Reservation{
		UserID:       userID,
		Kind:         domain.ReservationTickets,
		EventID:      &eventID,
		TicketTypeID: &ticketTypeID,
		Quantity:     quantity,
		TotalCents:   priceCents * int64(quantity),
		Status:       domain.ReservationPending,
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO reservations(user_id, kind, event_id, ticket_type_id, quantity, total_cents, status)
		 VALUES ($1, 'tickets', $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		userID, eventID, ticketTypeID, quantity, res.TotalCents, string(res.Status),
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	tickets := make([]domain.Ticket, 0, quantity)
	batch := &pgx.Batch{}
	for i := 0; i < quantity; i++ {
		t := domain.Ticket{
			ID:            uuid.New(),
			ReservationID: res.ID,
			TicketTypeID:  ticketTypeID,
			EventID:       eventID,
			UserID:        userID,
			Code:          NewRedemptionCode(),
			CreatedAt:     res.CreatedAt,
		}
		tickets = append(tickets, t)

		batch.Queue(
			`INSERT INTO tickets(id, reservation_id, ticket_type_id, event_id, user_id, code)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.ID, t.ReservationID, t.TicketTypeID, t.EventID, t.UserID, t.Code,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &Purchase{Reservation: res, Tickets: tickets}, nil
}

// ReservePlace creates a pending reservation of a place for one calendar date.
//
// Returns:
//   - error: repository.ErrNotFound if the place is missing or deleted.
//   - error: repository.ErrNotApproved if the place is not approved.
//   - error: repository.ErrDateBlocked if the owner blocked the date.
//   - error: repository.ErrDateReserved if a live reservation already holds the date.
func (r *ReservationRepo) ReservePlace(
	ctx context.Context,
	userID int64,
	placeID int64,
	date time.Time,
) (*domain.Reservation, error) {
	const op = "postgresrepo.ReservationRepo.ReservePlace"

	var out *domain.Reservation
	err := r.inTx(ctx, func(db DB) error {
		res, err := r.reservePlaceCore(ctx, db, userID, placeID, date)
		out = res
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *ReservationRepo) reservePlaceCore(
	ctx context.Context,
	db DB,
	userID int64,
	placeID int64,
	date time.Time,
) (*domain.Reservation, error) {
	const op = "postgresrepo.ReservationRepo.reservePlaceCore"

	places := (&PlaceRepo{}).With(db)

	place, err := places.LockByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !place.Approval.IsApproved() {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotApproved)
	}

	blocked, err := places.IsDateBlocked(ctx, placeID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if blocked {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrDateBlocked)
	}

	var taken bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE place_id = $1 AND reserved_date = $2 AND status <> 'cancelled'
		 )`,
		placeID, date,
	).Scan(&taken); err != nil {
		return nil, wrapDBErr(op, err)
	}
	if taken {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrDateReserved)
	}

	res := domain.Reservation{
		UserID:       userID,
		Kind:         domain.ReservationPlace,
		PlaceID:      &placeID,
		ReservedDate: &date,
		Quantity:     1,
		TotalCents:   place.PriceCents,
		Status:       domain.ReservationPending,
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO reservations(user_id, kind, place_id, reserved_date, quantity, total_cents, status)
		 VALUES ($1, 'place', $2, $3, 1, $4, $5)
		 RETURNING id, created_at, updated_at`,
		userID, placeID, date, res.TotalCents, string(res.Status),
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if errors.Is(translateDBErr(err), repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrDateReserved)
		}
		return nil, wrapDBErr(op, err)
	}

	return &res, nil
}

const reservationColumns = `r.id, r.user_id, r.kind, r.event_id, r.ticket_type_id, r.place_id,
	r.reserved_date, r.quantity, r.total_cents, r.status, r.created_at, r.updated_at`

func scanReservation(row pgx.Row, extra ...any) (*domain.Reservation, error) {
	var res domain.Reservation
	var kind, status string

	dest := []any{
		&res.ID,
		&res.UserID,
		&kind,
		&res.EventID,
		&res.TicketTypeID,
		&res.PlaceID,
		&res.ReservedDate,
		&res.Quantity,
		&res.TotalCents,
		&status,
		&res.CreatedAt,
		&res.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	res.Kind = domain.ReservationKind(kind)
	res.Status = domain.ReservationStatus(status)

	return &res, nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "postgresrepo.ReservationRepo.GetByID"

	res, err := scanReservation(r.handle().QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return res, nil
}

func (r *ReservationRepo) LockByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const op = "postgresrepo.ReservationRepo.LockByID"

	res, err := scanReservation(r.handle().QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return res, nil
}

// ListPlaceReservationsByUser lists a user's place bookings, newest first.
func (r *ReservationRepo) ListPlaceReservationsByUser(ctx context.Context, userID int64) ([]domain.PlaceReservationView, error) {
	const op = "postgresrepo.ReservationRepo.ListPlaceReservationsByUser"

	rows, err := r.handle().Query(ctx,
		`SELECT `+reservationColumns+`, p.name, p.location
		 FROM reservations r
		 JOIN places p ON p.id = r.place_id
		 WHERE r.user_id = $1 AND r.kind = 'place'
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.PlaceReservationView
	for rows.Next() {
		var v domain.PlaceReservationView
		res, err := scanReservation(rows, &v.PlaceName, &v.PlaceLocation)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		v.Reservation = *res
		out = append(out, v)
	}

	return out, wrapDBErr(op, rows.Err())
}

// GetPlaceReservation returns one place booking with its place details.
func (r *ReservationRepo) GetPlaceReservation(ctx context.Context, id int64) (*domain.PlaceReservationView, error) {
	const op = "postgresrepo.ReservationRepo.GetPlaceReservation"

	var v domain.PlaceReservationView
	res, err := scanReservation(r.handle().QueryRow(ctx,
		`SELECT `+reservationColumns+`, p.name, p.location
		 FROM reservations r
		 JOIN places p ON p.id = r.place_id
		 WHERE r.id = $1 AND r.kind = 'place'`,
		id,
	), &v.PlaceName, &v.PlaceLocation)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	v.Reservation = *res

	return &v, nil
}

// SetStatus moves a reservation between statuses. It only succeeds when the
// current status equals from.
func (r *ReservationRepo) SetStatus(
	ctx context.Context,
	id int64,
	from, to domain.ReservationStatus,
) error {
	const op = "postgresrepo.ReservationRepo.SetStatus"

	tag, err := r.handle().Exec(ctx,
		`UPDATE reservations SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidState)
	}

	return nil
}

// Restock returns quantity units to a ticket type.
func (r *ReservationRepo) Restock(ctx context.Context, ticketTypeID int64, quantity int) error {
	const op = "postgresrepo.ReservationRepo.Restock"

	if _, err := r.handle().Exec(ctx,
		`UPDATE ticket_types SET quantity = quantity + $2, version = version + 1 WHERE id = $1`,
		ticketTypeID, quantity,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
