package postgresrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const eventColumns = `e.id, e.owner_id, e.name, e.event_type, e.starts_at, e.description, e.image_url,
	e.team_a, e.team_b, e.stadium_name, e.performers, e.place_name, e.location_address,
	e.latitude, e.longitude, e.fixed_price_cents, e.documents, e.gateway_product_id,
	e.approval_status, e.admin_note, e.created_at, e.updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var status string

	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Name,
		&e.EventType,
		&e.StartsAt,
		&e.Description,
		&e.ImageURL,
		&e.TeamA,
		&e.TeamB,
		&e.StadiumName,
		&e.Performers,
		&e.PlaceName,
		&e.LocationAddress,
		&e.Latitude,
		&e.Longitude,
		&e.FixedPriceCents,
		&e.Documents,
		&e.GatewayProductID,
		&status,
		&e.Approval.Note,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Approval.Status = domain.ApprovalStatus(status)

	return &e, nil
}

func documentsOrEmpty(d domain.Documents) domain.Documents {
	if d == nil {
		return domain.Documents{}
	}
	return d
}

// Create inserts an event and its ticket types. The event starts pending.
//
// Returns:
//   - int64: the new event ID.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (int64, error) {
	const op = "postgresrepo.EventRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO events(
			owner_id, name, event_type, starts_at, description, image_url,
			team_a, team_b, stadium_name, performers, place_name, location_address,
			latitude, longitude, fixed_price_cents, documents, approval_status
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'pending')
		 RETURNING id`,
		e.OwnerID, e.Name, e.EventType, e.StartsAt, e.Description, e.ImageURL,
		e.TeamA, e.TeamB, e.StadiumName, e.Performers, e.PlaceName, e.LocationAddress,
		e.Latitude, e.Longitude, e.FixedPriceCents, documentsOrEmpty(e.Documents),
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	batch := &pgx.Batch{}
	for _, tt := range e.TicketTypes {
		batch.Queue(
			`INSERT INTO ticket_types(event_id, name, price_cents, quantity)
			 VALUES ($1, $2, $3, $4)`,
			id, tt.Name, tt.PriceCents, tt.Quantity,
		)
	}
	if batch.Len() > 0 {
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return 0, wrapDBErr(op, err)
		}
	}

	return id, nil
}

// GetByID returns a live event with its live ticket types.
//
// Returns:
//   - error: repository.ErrNotFound if the event is missing or soft-deleted.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.GetByID"

	e, err := scanEvent(r.handle().QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 AND `+live("e"),
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if err := r.attachTicketTypes(ctx, []*domain.Event{e}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// LockByID locks a live event row for the rest of the transaction.
func (r *EventRepo) LockByID(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.LockByID"

	e, err := scanEvent(r.handle().QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 AND `+live("e")+` FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return e, nil
}

// ListApproved lists approved events that have not started yet.
func (r *EventRepo) ListApproved(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	where := []string{live("e"), "e.approval_status = 'approved'", "e.starts_at > now()"}
	var args []any

	if f.EventType != "" {
		args = append(args, f.EventType)
		where = append(where, fmt.Sprintf("lower(e.event_type) = lower($%d)", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("e.name ILIKE $%d", len(args)))
	}

	return r.list(ctx, "postgresrepo.EventRepo.ListApproved", where, "e.starts_at", f.Limit, f.Offset, args...)
}

func (r *EventRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Event, error) {
	return r.list(ctx, "postgresrepo.EventRepo.ListByOwner",
		[]string{live("e"), "e.owner_id = $1"}, "e.created_at DESC", 0, 0, ownerID)
}

func (r *EventRepo) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.Event, error) {
	return r.list(ctx, "postgresrepo.EventRepo.ListByStatus",
		[]string{live("e"), "e.approval_status = $1"}, "e.created_at", 0, 0, string(status))
}

func (r *EventRepo) list(
	ctx context.Context,
	op string,
	where []string,
	orderBy string,
	limit, offset int,
	args ...any,
) ([]domain.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events e WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy

	if limit > 0 {
		args = append(args, limit, offset)
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.handle().Query(ctx, q, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var ptrs []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		ptrs = append(ptrs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	if err := r.attachTicketTypes(ctx, ptrs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.Event, 0, len(ptrs))
	for _, e := range ptrs {
		out = append(out, *e)
	}

	return out, nil
}

func (r *EventRepo) attachTicketTypes(ctx context.Context, events []*domain.Event) error {
	const op = "postgresrepo.EventRepo.attachTicketTypes"

	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(events))
	byID := make(map[int64]*domain.Event, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	rows, err := r.handle().Query(ctx,
		`SELECT tt.id, tt.event_id, tt.name, tt.price_cents, tt.quantity, tt.version, tt.gateway_price_id
		 FROM ticket_types tt
		 WHERE tt.event_id = ANY($1) AND `+live("tt")+`
		 ORDER BY tt.price_cents, tt.id`,
		ids,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(
			&tt.ID,
			&tt.EventID,
			&tt.Name,
			&tt.PriceCents,
			&tt.Quantity,
			&tt.Version,
			&tt.GatewayPriceID,
		); err != nil {
			return wrapDBErr(op, err)
		}

		e := byID[tt.EventID]
		e.TicketTypes = append(e.TicketTypes, tt)
	}

	return wrapDBErr(op, rows.Err())
}

// Update writes the editable fields and the approval state of an event.
func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	const op = "postgresrepo.EventRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE events SET
			name = $2, event_type = $3, starts_at = $4, description = $5, image_url = $6,
			team_a = $7, team_b = $8, stadium_name = $9, performers = $10, place_name = $11,
			location_address = $12, latitude = $13, longitude = $14, fixed_price_cents = $15,
			documents = $16, approval_status = $17, admin_note = $18, updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		e.ID, e.Name, e.EventType, e.StartsAt, e.Description, e.ImageURL,
		e.TeamA, e.TeamB, e.StadiumName, e.Performers, e.PlaceName,
		e.LocationAddress, e.Latitude, e.Longitude, e.FixedPriceCents,
		documentsOrEmpty(e.Documents), string(e.Approval.Status), e.Approval.Note,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *EventRepo) SetApproval(ctx context.Context, id int64, a domain.Approval) error {
	const op = "postgresrepo.EventRepo.SetApproval"

	tag, err := r.handle().Exec(ctx,
		`UPDATE events SET approval_status = $2, admin_note = $3, updated_at = now()
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

// SoftDelete hides an event and its ticket types from every read path.
func (r *EventRepo) SoftDelete(ctx context.Context, id int64) error {
	const op = "postgresrepo.EventRepo.SoftDelete"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	if _, err := db.Exec(ctx,
		`UPDATE ticket_types SET deleted_at = now()
		 WHERE event_id = $1 AND deleted_at IS NULL`,
		id,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *EventRepo) CreateTicketType(ctx context.Context, eventID int64, tt domain.TicketType) (int64, error) {
	const op = "postgresrepo.EventRepo.CreateTicketType"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO ticket_types(event_id, name, price_cents, quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		eventID, tt.Name, tt.PriceCents, tt.Quantity,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// UpdateTicketType renames and reprices a live ticket type and adds addQuantity
// to its remaining stock.
func (r *EventRepo) UpdateTicketType(
	ctx context.Context,
	eventID int64,
	tt domain.TicketType,
	addQuantity int,
) error {
	const op = "postgresrepo.EventRepo.UpdateTicketType"

	tag, err := r.handle().Exec(ctx,
		`UPDATE ticket_types
		 SET name = $3, price_cents = $4, quantity = quantity + $5, version = version + 1
		 WHERE id = $1 AND event_id = $2 AND deleted_at IS NULL`,
		tt.ID, eventID, tt.Name, tt.PriceCents, addQuantity,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// SoftDeleteTicketTypesExcept removes every live ticket type of the event whose
// ID is not in keep.
func (r *EventRepo) SoftDeleteTicketTypesExcept(ctx context.Context, eventID int64, keep []int64) (int64, error) {
	const op = "postgresrepo.EventRepo.SoftDeleteTicketTypesExcept"

	if keep == nil {
		keep = []int64{}
	}

	tag, err := r.handle().Exec(ctx,
		`UPDATE ticket_types SET deleted_at = now()
		 WHERE event_id = $1 AND deleted_at IS NULL AND NOT (id = ANY($2))`,
		eventID, keep,
	)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return tag.RowsAffected(), nil
}

func (r *EventRepo) SetGatewayProduct(ctx context.Context, eventID int64, productID string) error {
	const op = "postgresrepo.EventRepo.SetGatewayProduct"

	if _, err := r.handle().Exec(ctx,
		`UPDATE events SET gateway_product_id = $2 WHERE id = $1`,
		eventID, productID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *EventRepo) SetGatewayPrice(ctx context.Context, ticketTypeID int64, priceID string) error {
	const op = "postgresrepo.EventRepo.SetGatewayPrice"

	if _, err := r.handle().Exec(ctx,
		`UPDATE ticket_types SET gateway_price_id = $2 WHERE id = $1`,
		ticketTypeID, priceID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
