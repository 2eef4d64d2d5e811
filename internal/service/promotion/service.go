package promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	"github.com/kirinyoku/evently/internal/uow"
)

// Document keys every provider request must carry.
const (
	DocNationalIDFront = "national_id_front"
	DocNationalIDBack  = "national_id_back"
	DocHoldingID       = "holding_id"
)

// Service promotes users to service providers after admin review.
type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store, uow: uow.NewUoW(store)}
}

// Submit files a provider request for a user.
//
// Returns:
//   - int64: the request ID.
//   - error: promotion.ErrMissingDocuments if an identity document is missing.
//   - error: promotion.ErrAlreadyProvider if the user already has the role.
//   - error: promotion.ErrRequestPending if another request awaits review.
func (s *Service) Submit(ctx context.Context, userID int64, docs domain.Documents, paymentLink string) (int64, error) {
	const op = "service.promotion.Submit"

	for _, k := range []string{DocNationalIDFront, DocNationalIDBack, DocHoldingID} {
		if strings.TrimSpace(docs[k]) == "" {
			return 0, fmt.Errorf("%s: %w", op, ErrMissingDocuments)
		}
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		u, err := s.store.Users().With(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrUserNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if u.HasRole(domain.RoleServiceProvider) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyProvider)
		}

		requests := s.store.ProviderRequests().With(tx)

		pending, err := requests.HasPending(ctx, userID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if pending {
			return fmt.Errorf("%s: %w", op, ErrRequestPending)
		}

		id, err = requests.Create(ctx, &domain.ProviderRequest{
			UserID:      userID,
			Documents:   docs,
			PaymentLink: strings.TrimSpace(paymentLink),
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrRequestPending)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})

	return id, err
}

func (s *Service) MyRequests(ctx context.Context, userID int64) ([]domain.ProviderRequest, error) {
	const op = "service.promotion.MyRequests"

	out, err := s.store.ProviderRequests().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) Pending(ctx context.Context) ([]domain.ProviderRequest, error) {
	const op = "service.promotion.Pending"

	out, err := s.store.ProviderRequests().ListByStatus(ctx, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Approve grants the Service Provider role and revokes User in the same
// transaction that approves the request.
//
// Returns:
//   - error: promotion.ErrRequestNotFound, domain.ErrInvalidTransition.
func (s *Service) Approve(ctx context.Context, requestID int64) error {
	const op = "service.promotion.Approve"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		pr, next, err := s.review(ctx, tx, requestID, func(a domain.Approval) (domain.Approval, error) {
			return a.Approve()
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.ProviderRequests().With(tx).SetApproval(ctx, pr.ID, next); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		users := s.store.Users().With(tx)

		if err := users.GrantRole(ctx, pr.UserID, domain.RoleServiceProvider); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := users.RevokeRole(ctx, pr.UserID, domain.RoleUser); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}

// Reject closes the request. The note is optional. Roles stay as they are.
func (s *Service) Reject(ctx context.Context, requestID int64, note string) error {
	const op = "service.promotion.Reject"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		pr, next, err := s.review(ctx, tx, requestID, func(a domain.Approval) (domain.Approval, error) {
			return a.RejectOptionalNote(note)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.ProviderRequests().With(tx).SetApproval(ctx, pr.ID, next); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}

func (s *Service) review(
	ctx context.Context,
	tx postgresrepo.DB,
	requestID int64,
	transition func(domain.Approval) (domain.Approval, error),
) (*domain.ProviderRequest, domain.Approval, error) {
	pr, err := s.store.ProviderRequests().With(tx).LockByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Approval{}, ErrRequestNotFound
		}
		return nil, domain.Approval{}, err
	}

	next, err := transition(pr.Approval)
	if err != nil {
		return nil, domain.Approval{}, err
	}

	return pr, next, nil
}
