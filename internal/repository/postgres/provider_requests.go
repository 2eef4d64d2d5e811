package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type ProviderRequestRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ProviderRequestRepo) With(db DB) *ProviderRequestRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ProviderRequestRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const providerRequestColumns = `id, user_id, documents, payment_link, approval_status, admin_note,
	requested_at, reviewed_at`

func scanProviderRequest(row pgx.Row) (*domain.ProviderRequest, error) {
	var pr domain.ProviderRequest
	var status string

	if err := row.Scan(
		&pr.ID,
		&pr.UserID,
		&pr.Documents,
		&pr.PaymentLink,
		&status,
		&pr.Approval.Note,
		&pr.RequestedAt,
		&pr.ReviewedAt,
	); err != nil {
		return nil, err
	}

	pr.Approval.Status = domain.ApprovalStatus(status)

	return &pr, nil
}

// Create inserts a pending request.
//
// Returns:
//   - error: repository.ErrConflict if the user already has a pending request.
func (r *ProviderRequestRepo) Create(ctx context.Context, pr *domain.ProviderRequest) (int64, error) {
	const op = "postgresrepo.ProviderRequestRepo.Create"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO provider_requests(user_id, documents, payment_link, approval_status)
		 VALUES ($1, $2, $3, 'pending')
		 RETURNING id`,
		pr.UserID, documentsOrEmpty(pr.Documents), pr.PaymentLink,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *ProviderRequestRepo) HasPending(ctx context.Context, userID int64) (bool, error) {
	const op = "postgresrepo.ProviderRequestRepo.HasPending"

	var exists bool
	if err := r.handle().QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM provider_requests WHERE user_id = $1 AND approval_status = 'pending'
		 )`,
		userID,
	).Scan(&exists); err != nil {
		return false, wrapDBErr(op, err)
	}

	return exists, nil
}

func (r *ProviderRequestRepo) LockByID(ctx context.Context, id int64) (*domain.ProviderRequest, error) {
	const op = "postgresrepo.ProviderRequestRepo.LockByID"

	pr, err := scanProviderRequest(r.handle().QueryRow(ctx,
		`SELECT `+providerRequestColumns+` FROM provider_requests WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return pr, nil
}

func (r *ProviderRequestRepo) SetApproval(ctx context.Context, id int64, a domain.Approval) error {
	const op = "postgresrepo.ProviderRequestRepo.SetApproval"

	tag, err := r.handle().Exec(ctx,
		`UPDATE provider_requests
		 SET approval_status = $2, admin_note = $3, reviewed_at = now()
		 WHERE id = $1`,
		id, string(a.Status), a.Note,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *ProviderRequestRepo) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.ProviderRequest, error) {
	return r.list(ctx, "postgresrepo.ProviderRequestRepo.ListByStatus",
		`SELECT `+providerRequestColumns+` FROM provider_requests
		 WHERE approval_status = $1 ORDER BY requested_at`, string(status))
}

func (r *ProviderRequestRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ProviderRequest, error) {
	return r.list(ctx, "postgresrepo.ProviderRequestRepo.ListByUser",
		`SELECT `+providerRequestColumns+` FROM provider_requests
		 WHERE user_id = $1 ORDER BY requested_at DESC`, userID)
}

func (r *ProviderRequestRepo) list(ctx context.Context, op, q string, args ...any) ([]domain.ProviderRequest, error) {
	rows, err := r.handle().Query(ctx, q, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.ProviderRequest
	for rows.Next() {
		pr, err := scanProviderRequest(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *pr)
	}

	return out, wrapDBErr(op, rows.Err())
}
