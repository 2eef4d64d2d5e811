package postgresrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// NewRedemptionCode returns a fresh random, human-typable ticket code.
func NewRedemptionCode() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

const ticketViewColumns = `t.id, t.reservation_id, t.ticket_type_id, t.event_id, t.user_id, t.code,
	t.is_used, t.used_at, t.created_at,
	e.name, e.starts_at, e.location_address, tt.name, tt.price_cents, r.status`

const ticketViewFrom = `FROM tickets t
	JOIN reservations r ON r.id = t.reservation_id
	JOIN events e ON e.id = t.event_id
	JOIN ticket_types tt ON tt.id = t.ticket_type_id`

func scanTicketView(row pgx.Row) (*domain.TicketView, error) {
	var v domain.TicketView
	var status string

	if err := row.Scan(
		&v.ID,
		&v.ReservationID,
		&v.TicketTypeID,
		&v.EventID,
		&v.UserID,
		&v.Code,
		&v.IsUsed,
		&v.UsedAt,
		&v.CreatedAt,
		&v.EventName,
		&v.EventStartsAt,
		&v.LocationAddress,
		&v.TicketTypeName,
		&v.PriceCents,
		&status,
	); err != nil {
		return nil, err
	}

	v.ReservationStatus = domain.ReservationStatus(status)

	return &v, nil
}

// ListByUser lists a user's tickets of non-cancelled reservations.
func (r *TicketRepo) ListByUser(ctx context.Context, userID int64) ([]domain.TicketView, error) {
	const op = "postgresrepo.TicketRepo.ListByUser"

	rows, err := r.handle().Query(ctx,
		`SELECT `+ticketViewColumns+` `+ticketViewFrom+`
		 WHERE t.user_id = $1 AND r.status <> 'cancelled'
		 ORDER BY e.starts_at, t.created_at`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketView
	for rows.Next() {
		v, err := scanTicketView(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *v)
	}

	return out, wrapDBErr(op, rows.Err())
}

func (r *TicketRepo) ListByReservation(ctx context.Context, reservationID int64) ([]domain.TicketView, error) {
	const op = "postgresrepo.TicketRepo.ListByReservation"

	rows, err := r.handle().Query(ctx,
		`SELECT `+ticketViewColumns+` `+ticketViewFrom+`
		 WHERE t.reservation_id = $1
		 ORDER BY t.created_at, t.code`,
		reservationID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketView
	for rows.Next() {
		v, err := scanTicketView(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *v)
	}

	return out, wrapDBErr(op, rows.Err())
}

func (r *TicketRepo) GetView(ctx context.Context, id uuid.UUID) (*domain.TicketView, error) {
	const op = "postgresrepo.TicketRepo.GetView"

	v, err := scanTicketView(r.handle().QueryRow(ctx,
		`SELECT `+ticketViewColumns+` `+ticketViewFrom+` WHERE t.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return v, nil
}

// LockByCode locks a ticket and returns it with the owner of its event.
func (r *TicketRepo) LockByCode(ctx context.Context, code string) (*domain.TicketView, int64, error) {
	const op = "postgresrepo.TicketRepo.LockByCode"

	var ownerID int64
	row := r.handle().QueryRow(ctx,
		`SELECT `+ticketViewColumns+`, e.owner_id `+ticketViewFrom+`
		 WHERE t.code = $1
		 FOR UPDATE OF t`,
		code,
	)

	var v domain.TicketView
	var status string
	if err := row.Scan(
		&v.ID,
		&v.ReservationID,
		&v.TicketTypeID,
		&v.EventID,
		&v.UserID,
		&v.Code,
		&v.IsUsed,
		&v.UsedAt,
		&v.CreatedAt,
		&v.EventName,
		&v.EventStartsAt,
		&v.LocationAddress,
		&v.TicketTypeName,
		&v.PriceCents,
		&status,
		&ownerID,
	); err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	v.ReservationStatus = domain.ReservationStatus(status)

	return &v, ownerID, nil
}

// MarkUsed flips a ticket to used exactly once.
//
// Returns:
//   - error: repository.ErrAlreadyUsed if the ticket was already redeemed.
func (r *TicketRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.TicketRepo.MarkUsed"

	tag, err := r.handle().Exec(ctx,
		`UPDATE tickets SET is_used = true, used_at = now()
		 WHERE id = $1 AND NOT is_used`,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrAlreadyUsed)
	}

	return nil
}
