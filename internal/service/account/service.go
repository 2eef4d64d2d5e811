package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
)

type Registration struct {
	UserName  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

type Service struct {
	store  *postgresrepo.Store
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func New(store *postgresrepo.Store, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Register creates a user holding the User role.
//
// Returns:
//   - int64: the new user ID.
//   - error: account.ErrUserNameRequired, account.ErrInvalidEmail, auth.ErrWeakPassword.
//   - error: account.ErrUserExists if the user name or email is taken.
func (s *Service) Register(ctx context.Context, reg Registration) (int64, error) {
	const op = "service.account.Register"

	if err := normalize(&reg); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.Users().Create(ctx, &domain.User{
		UserName:     reg.UserName,
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		BirthDate:    reg.BirthDate,
		Roles:        []domain.Role{domain.RoleUser},
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func normalize(reg *Registration) error {
	reg.UserName = strings.TrimSpace(reg.UserName)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)

	if reg.UserName == "" {
		return ErrUserNameRequired
	}

	addr, err := mail.ParseAddress(reg.Email)
	if err != nil || addr.Address != reg.Email {
		return ErrInvalidEmail
	}

	return auth.ValidatePassword(reg.Password)
}

// Login checks credentials and issues an access token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, login, password string) (auth.AccessToken, *domain.User, error) {
	const op = "service.account.Login"

	u, err := s.store.Users().GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return auth.AccessToken{}, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return auth.AccessToken{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		return auth.AccessToken{}, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	tok, err := s.tokens.Issue(u)
	if err != nil {
		return auth.AccessToken{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	return tok, u, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "service.account.Profile"

	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// AssignAdmin grants the Admin role. Granting it twice is a no-op.
func (s *Service) AssignAdmin(ctx context.Context, userID int64) error {
	const op = "service.account.AssignAdmin"

	if _, err := s.Profile(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Users().GrantRole(ctx, userID, domain.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
