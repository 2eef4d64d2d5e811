package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type PlaceRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PlaceRepo) With(db DB) *PlaceRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PlaceRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const placeColumns = `p.id, p.owner_id, p.name, p.location, p.place_type, p.max_attendees, p.price_cents,
	p.image_url, p.documents, p.latitude, p.longitude, p.approval_status, p.admin_note,
	p.created_at, p.updated_at`

func scanPlace(row pgx.Row) (*domain.Place, error) {
	var p domain.Place
	var status string

	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Location,
		&p.PlaceType,
		&p.MaxAttendees,
		&p.PriceCents,
		&p.ImageURL,
		&p.Documents,
		&p.Latitude,
		&p.Longitude,
		&status,
		&p.Approval.Note,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Approval.Status = domain.ApprovalStatus(status)

	return &p, nil
}

func (r *PlaceRepo) Create(ctx context.Context, p *domain.Place) (int64, error) {
	const op = "postgresrepo.PlaceRepo.Create"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO places(
			owner_id, name, location, place_type, max_attendees, price_cents,
			image_url, documents, latitude, longitude, approval_status
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		 RETURNING id`,
		p.OwnerID, p.Name, p.Location, p.PlaceType, p.MaxAttendees, p.PriceCents,
		p.ImageURL, documentsOrEmpty(p.Documents), p.Latitude, p.Longitude,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// GetByID returns a live place.
func (r *PlaceRepo) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	const op = "postgresrepo.PlaceRepo.GetByID"

	p, err := scanPlace(r.handle().QueryRow(ctx,
		`SELECT `+placeColumns+` FROM places p WHERE p.id = $1 AND `+live("p"),
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return p, nil
}

// LockByID locks a live place row. Every mutation of the place's calendar
// takes this lock first, so concurrent reservations of one place serialize here.
func (r *PlaceRepo) LockByID(ctx context.Context, id int64) (*domain.Place, error) {
	const op = "postgresrepo.PlaceRepo.LockByID"

	p, err := scanPlace(r.handle().QueryRow(ctx,
		`SELECT `+placeColumns+` FROM places p WHERE p.id = $1 AND `+live("p")+` FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return p, nil
}

func (r *PlaceRepo) ListApproved(ctx context.Context, f domain.PlaceFilter) ([]domain.Place, error) {
	where := []string{live("p"), "p.approval_status = 'approved'"}
	var args []any

	if f.PlaceType != "" {
		args = append(args, f.PlaceType)
		where = append(where, fmt.Sprintf("lower(p.place_type) = lower($%d)", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.location ILIKE $%d OR p.name ILIKE $%d)", len(args), len(args)))
	}

	return r.list(ctx, "postgresrepo.PlaceRepo.ListApproved", where, "p.name, p.id", f.Limit, f.Offset, args...)
}

func (r *PlaceRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return r.list(ctx, "postgresrepo.PlaceRepo.ListByOwner",
		[]string{live("p"), "p.owner_id = $1"}, "p.created_at DESC", 0, 0, ownerID)
}

func (r *PlaceRepo) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.Place, error) {
	return r.list(ctx, "postgresrepo.PlaceRepo.ListByStatus",
		[]string{live("p"), "p.approval_status = $1"}, "p.created_at", 0, 0, string(status))
}

func (r *PlaceRepo) list(
	ctx context.Context,
	op string,
	where []string,
	orderBy string,
	limit, offset int,
	args ...any,
) ([]domain.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places p WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy

	if limit > 0 {
		args = append(args, limit, offset)
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.handle().Query(ctx, q, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *PlaceRepo) Update(ctx context.Context, p *domain.Place) error {
	const op = "postgresrepo.PlaceRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE places SET
			name = $2, location = $3, place_type = $4, max_attendees = $5, price_cents = $6,
			image_url = $7, documents = $8, latitude = $9, longitude = $10,
			approval_status = $11, admin_note = $12, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		p.ID, p.Name, p.Location, p.PlaceType, p.MaxAttendees, p.PriceCents,
		p.ImageURL, documentsOrEmpty(p.Documents), p.Latitude, p.Longitude,
		string(p.Approval.Status), p.Approval.Note,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *PlaceRepo) SetApproval(ctx context.Context, id int64, a domain.Approval) error {
	const op = "postgresrepo.PlaceRepo.SetApproval"

	tag, err := r.handle().Exec(ctx,
		`UPDATE places SET approval_status = $2, admin_note = $3, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
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

func (r *PlaceRepo) SoftDelete(ctx context.Context, id int64) error {
	const op = "postgresrepo.PlaceRepo.SoftDelete"

	tag, err := r.handle().Exec(ctx,
		`UPDATE places SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// BlockDates marks dates unavailable. Dates already present are left untouched.
//
// Returns:
//   - int64: number of dates newly blocked.
func (r *PlaceRepo) BlockDates(ctx context.Context, placeID int64, dates []time.Time, note string) (int64, error) {
	const op = "postgresrepo.PlaceRepo.BlockDates"

	db := r.handle()

	var inserted int64
	for _, d := range dates {
		tag, err := db.Exec(ctx,
			`INSERT INTO place_availability(place_id, date, is_blocked, note)
			 VALUES ($1, $2, true, $3)
			 ON CONFLICT (place_id, date) DO NOTHING`,
			placeID, d, note,
		)
		if err != nil {
			return inserted, wrapDBErr(op, err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// GetAvailability returns an availability row together with the owner of its place.
func (r *PlaceRepo) GetAvailability(ctx context.Context, id int64) (*domain.PlaceAvailability, int64, error) {
	const op = "postgresrepo.PlaceRepo.GetAvailability"

	var pa domain.PlaceAvailability
	var ownerID int64

	if err := r.handle().QueryRow(ctx,
		`SELECT pa.id, pa.place_id, pa.date, pa.is_blocked, pa.note, p.owner_id
		 FROM place_availability pa
		 JOIN places p ON p.id = pa.place_id
		 WHERE pa.id = $1 AND `+live("p"),
		id,
	).Scan(&pa.ID, &pa.PlaceID, &pa.Date, &pa.IsBlocked, &pa.Note, &ownerID); err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	return &pa, ownerID, nil
}

func (r *PlaceRepo) DeleteAvailability(ctx context.Context, id int64) error {
	const op = "postgresrepo.PlaceRepo.DeleteAvailability"

	tag, err := r.handle().Exec(ctx, `DELETE FROM place_availability WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *PlaceRepo) IsDateBlocked(ctx context.Context, placeID int64, date time.Time) (bool, error) {
	const op = "postgresrepo.PlaceRepo.IsDateBlocked"

	var blocked bool
	if err := r.handle().QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM place_availability
			WHERE place_id = $1 AND date = $2 AND is_blocked
		 )`,
		placeID, date,
	).Scan(&blocked); err != nil {
		return false, wrapDBErr(op, err)
	}

	return blocked, nil
}

// Calendar lists blocked and reserved dates of a place within [from, to].
func (r *PlaceRepo) Calendar(ctx context.Context, placeID int64, from, to time.Time) (*domain.PlaceCalendar, error) {
	const op = "postgresrepo.PlaceRepo.Calendar"

	db := r.handle()
	cal := &domain.PlaceCalendar{PlaceID: placeID}

	rows, err := db.Query(ctx,
		`SELECT id, place_id, date, is_blocked, note
		 FROM place_availability
		 WHERE place_id = $1 AND date BETWEEN $2 AND $3 AND is_blocked
		 ORDER BY date`,
		placeID, from, to,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	for rows.Next() {
		var pa domain.PlaceAvailability
		if err := rows.Scan(&pa.ID, &pa.PlaceID, &pa.Date, &pa.IsBlocked, &pa.Note); err != nil {
			rows.Close()
			return nil, wrapDBErr(op, err)
		}
		cal.Blocked = append(cal.Blocked, pa)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err = db.Query(ctx,
		`SELECT reserved_date
		 FROM reservations
		 WHERE place_id = $1 AND reserved_date BETWEEN $2 AND $3 AND status <> 'cancelled'
		 ORDER BY reserved_date`,
		placeID, from, to,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, wrapDBErr(op, err)
		}
		cal.Reserved = append(cal.Reserved, d)
	}

	return cal, wrapDBErr(op, rows.Err())
}
