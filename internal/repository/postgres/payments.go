package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type PaymentRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PaymentRepo) With(db DB) *PaymentRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PaymentRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const paymentColumns = `id, reservation_id, user_id, amount_cents, provider, status,
	transaction_ref, checkout_url, created_at, paid_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var status string

	if err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.UserID,
		&p.AmountCents,
		&p.Provider,
		&status,
		&p.TransactionRef,
		&p.CheckoutURL,
		&p.CreatedAt,
		&p.PaidAt,
	); err != nil {
		return nil, err
	}

	p.Status = domain.PaymentStatus(status)

	return &p, nil
}

// Upsert records a new checkout attempt for a reservation. A reservation has at
// most one payment row; a retry points it at the new session unless it already
// succeeded. Every session is also kept in payment_attempts so an earlier one
// still resolves to the payment when it is paid later.
//
// Returns:
//   - error: repository.ErrConflict if the reservation is already paid.
func (r *PaymentRepo) Upsert(ctx context.Context, p *domain.Payment) (int64, error) {
	const op = "postgresrepo.PaymentRepo.Upsert"

	var id int64
	err := r.handle().QueryRow(ctx,
		`WITH p AS (
			INSERT INTO payments(reservation_id, user_id, amount_cents, provider, status, transaction_ref, checkout_url)
			VALUES ($1, $2, $3, $4, 'pending', $5, $6)
			ON CONFLICT (reservation_id) DO UPDATE
			SET amount_cents = EXCLUDED.amount_cents,
			    provider = EXCLUDED.provider,
			    status = 'pending',
			    transaction_ref = EXCLUDED.transaction_ref,
			    checkout_url = EXCLUDED.checkout_url,
			    created_at = now()
			WHERE payments.status <> 'succeeded'
			RETURNING id
		 )
		 INSERT INTO payment_attempts(transaction_ref, payment_id, checkout_url)
		 SELECT $5, id, $6 FROM p
		 ON CONFLICT (transaction_ref) DO UPDATE SET payment_id = EXCLUDED.payment_id
		 RETURNING payment_id`,
		p.ReservationID, p.UserID, p.AmountCents, p.Provider, p.TransactionRef, p.CheckoutURL,
	).Scan(&id)
	if err != nil {
		// The conditional DO UPDATE returns no row for an already paid reservation.
		return 0, wrapConflict(op, err)
	}

	return id, nil
}

func wrapConflict(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}
	return wrapDBErr(op, err)
}

const paymentByRef = `FROM payments
	WHERE id = (SELECT payment_id FROM payment_attempts WHERE transaction_ref = $1)`

// LockByRef locks the payment that any of its checkout sessions belongs to.
func (r *PaymentRepo) LockByRef(ctx context.Context, ref string) (*domain.Payment, error) {
	const op = "postgresrepo.PaymentRepo.LockByRef"

	p, err := scanPayment(r.handle().QueryRow(ctx,
		`SELECT `+paymentColumns+` `+paymentByRef+` FOR UPDATE`,
		ref,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return p, nil
}

// GetByRef resolves current and superseded checkout sessions alike.
func (r *PaymentRepo) GetByRef(ctx context.Context, ref string) (*domain.Payment, error) {
	const op = "postgresrepo.PaymentRepo.GetByRef"

	p, err := scanPayment(r.handle().QueryRow(ctx,
		`SELECT `+paymentColumns+` `+paymentByRef,
		ref,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return p, nil
}

// MarkSucceeded settles a payment through the session that was paid, which may
// be an earlier one than the payment currently points at.
func (r *PaymentRepo) MarkSucceeded(ctx context.Context, id int64, ref string) error {
	const op = "postgresrepo.PaymentRepo.MarkSucceeded"

	tag, err := r.handle().Exec(ctx,
		`UPDATE payments
		 SET status = 'succeeded',
		     paid_at = now(),
		     transaction_ref = $2,
		     checkout_url = COALESCE(
		         (SELECT checkout_url FROM payment_attempts WHERE transaction_ref = $2),
		         checkout_url)
		 WHERE id = $1 AND status <> 'succeeded'`,
		id, ref,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidState)
	}

	return nil
}

func (r *PaymentRepo) GetByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	const op = "postgresrepo.PaymentRepo.GetByReservation"

	p, err := scanPayment(r.handle().QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reservation_id = $1`,
		reservationID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return p, nil
}

func (r *PaymentRepo) SetStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	const op = "postgresrepo.PaymentRepo.SetStatus"

	tag, err := r.handle().Exec(ctx,
		`UPDATE payments
		 SET status = $2,
		     paid_at = CASE WHEN $2 = 'succeeded' THEN now() ELSE paid_at END
		 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}
