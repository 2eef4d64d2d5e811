package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const userColumns = `u.id, u.user_name, u.email, u.password_hash, u.first_name, u.last_name,
	u.birth_date, u.gateway_customer_id, u.created_at,
	COALESCE((SELECT array_agg(ur.role ORDER BY ur.role) FROM user_roles ur WHERE ur.user_id = u.id), '{}')`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var roles []string

	if err := row.Scan(
		&u.ID,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.GatewayCustomer,
		&u.CreatedAt,
		&roles,
	); err != nil {
		return nil, err
	}

	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role(r))
	}

	return &u, nil
}

// Create inserts a user together with its initial roles.
//
// Returns:
//   - int64: the new user ID.
//   - error: repository.ErrConflict if the user name or email is taken.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	const op = "postgresrepo.UserRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO users(user_name, email, password_hash, first_name, last_name, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.UserName, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.BirthDate,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	for _, role := range u.Roles {
		if err := r.GrantRole(ctx, id, role); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.GetByID"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}

// GetByLogin looks a user up by user name or email, case-insensitively.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	const op = "postgresrepo.UserRepo.GetByLogin"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users u
		 WHERE lower(u.user_name) = lower($1) OR lower(u.email) = lower($1)
		 ORDER BY u.id
		 LIMIT 1`,
		login,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}

// GrantRole is idempotent.
func (r *UserRepo) GrantRole(ctx context.Context, userID int64, role domain.Role) error {
	const op = "postgresrepo.UserRepo.GrantRole"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO user_roles(user_id, role) VALUES ($1, $2)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role),
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *UserRepo) RevokeRole(ctx context.Context, userID int64, role domain.Role) error {
	const op = "postgresrepo.UserRepo.RevokeRole"

	if _, err := r.handle().Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`,
		userID, string(role),
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *UserRepo) SetGatewayCustomer(ctx context.Context, userID int64, customerID string) error {
	const op = "postgresrepo.UserRepo.SetGatewayCustomer"

	tag, err := r.handle().Exec(ctx,
		`UPDATE users SET gateway_customer_id = $2 WHERE id = $1`,
		userID, customerID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}
