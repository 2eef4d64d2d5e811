package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	"github.com/kirinyoku/evently/internal/service/catalog"
	"github.com/kirinyoku/evently/internal/uow"
)

// Service is the service-provider side of the catalog: events, places, their
// calendars and ticket redemption at the door.
type Service struct {
	store   *postgresrepo.Store
	changes catalog.Changes
	uow     *uow.UoW
	now     func() time.Time
}

func New(store *postgresrepo.Store, changes catalog.Changes) *Service {
	return &Service{
		store:   store,
		changes: changes,
		uow:     uow.NewUoW(store),
		now:     time.Now,
	}
}

// CreateEvent stores a pending event with its ticket types.
//
// Returns:
//   - int64: the new event ID.
//   - error: provider.ValidationError if the input is rejected.
func (s *Service) CreateEvent(ctx context.Context, ownerID int64, in EventInput) (int64, error) {
	const op = "service.provider.CreateEvent"

	if err := in.validate(s.now(), true); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	e := &domain.Event{OwnerID: ownerID, Approval: domain.NewApproval()}
	in.apply(e)

	for _, tt := range in.TicketTypes {
		e.TicketTypes = append(e.TicketTypes, domain.TicketType{
			Name:       tt.Name,
			PriceCents: tt.PriceCents,
			Quantity:   tt.Quantity,
		})
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Events().With(tx).Create(ctx, e)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

func (s *Service) ListEvents(ctx context.Context, ownerID int64) ([]domain.Event, error) {
	const op = "service.provider.ListEvents"

	events, err := s.store.Events().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// GetEvent returns one of the caller's events in any approval state.
func (s *Service) GetEvent(ctx context.Context, ownerID, eventID int64) (*domain.Event, error) {
	const op = "service.provider.GetEvent"

	e, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if e.OwnerID != ownerID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return e, nil
}

// UpdateEvent replaces the editable fields of an event and reconciles its
// ticket types: listed existing ones are updated (and optionally restocked),
// listed new ones are created and omitted ones are soft-deleted. Any edit sends
// the event back to pending review with the admin note cleared.
//
// Returns:
//   - error: provider.ErrEventNotFound, provider.ErrForbidden,
//     provider.ErrTicketTypeNotFound or provider.ValidationError.
func (s *Service) UpdateEvent(ctx context.Context, ownerID, eventID int64, in EventInput) error {
	const op = "service.provider.UpdateEvent"

	if err := in.validate(s.now(), false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		events := s.store.Events().With(tx)

		e, err := s.lockOwnedEvent(ctx, events, ownerID, eventID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		in.apply(e)
		e.Approval = e.Approval.Resubmit()

		if err := events.Update(ctx, e); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		keep := make([]int64, 0, len(in.TicketTypes))
		for _, tt := range in.TicketTypes {
			t := domain.TicketType{Name: tt.Name, PriceCents: tt.PriceCents, Quantity: tt.Quantity}

			if tt.ID == nil {
				id, err := events.CreateTicketType(ctx, eventID, t)
				if err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				keep = append(keep, id)
				continue
			}

			t.ID = *tt.ID
			if err := events.UpdateTicketType(ctx, eventID, t, tt.AddQuantity); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%s: %w", op, ErrTicketTypeNotFound)
				}
				return fmt.Errorf("%s: %w", op, err)
			}
			keep = append(keep, t.ID)
		}

		if _, err := events.SoftDeleteTicketTypesExcept(ctx, eventID, keep); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.changes.EventChanged(ctx, eventID)
		})

		return nil
	})
}

// DeleteEvent soft-deletes an event and its ticket types. Issued tickets stay.
func (s *Service) DeleteEvent(ctx context.Context, ownerID, eventID int64) error {
	const op = "service.provider.DeleteEvent"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		events := s.store.Events().With(tx)

		if _, err := s.lockOwnedEvent(ctx, events, ownerID, eventID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := events.SoftDelete(ctx, eventID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.changes.EventChanged(ctx, eventID)
		})

		return nil
	})
}

func (s *Service) lockOwnedEvent(
	ctx context.Context,
	events *postgresrepo.EventRepo,
	ownerID, eventID int64,
) (*domain.Event, error) {
	e, err := events.LockByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if e.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return e, nil
}

// CreatePlace stores a pending place.
func (s *Service) CreatePlace(ctx context.Context, ownerID int64, in PlaceInput) (int64, error) {
	const op = "service.provider.CreatePlace"

	if err := in.validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p := &domain.Place{OwnerID: ownerID, Approval: domain.NewApproval()}
	in.apply(p)

	id, err := s.store.Places().Create(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Service) ListPlaces(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	const op = "service.provider.ListPlaces"

	places, err := s.store.Places().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

func (s *Service) GetPlace(ctx context.Context, ownerID, placeID int64) (*domain.Place, error) {
	const op = "service.provider.GetPlace"

	p, err := s.store.Places().GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlaceNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return p, nil
}

// UpdatePlace replaces the editable fields of a place and resubmits it for review.
func (s *Service) UpdatePlace(ctx context.Context, ownerID, placeID int64, in PlaceInput) error {
	const op = "service.provider.UpdatePlace"

	if err := in.validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		places := s.store.Places().With(tx)

		p, err := s.lockOwnedPlace(ctx, places, ownerID, placeID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		in.apply(p)
		p.Approval = p.Approval.Resubmit()

		if err := places.Update(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.changes.PlaceChanged(ctx, placeID)
		})

		return nil
	})
}

func (s *Service) DeletePlace(ctx context.Context, ownerID, placeID int64) error {
	const op = "service.provider.DeletePlace"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		places := s.store.Places().With(tx)

		if _, err := s.lockOwnedPlace(ctx, places, ownerID, placeID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := places.SoftDelete(ctx, placeID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.changes.PlaceChanged(ctx, placeID)
		})

		return nil
	})
}

// BlockDates marks calendar dates of an owned place unavailable. Dates that are
// already blocked are skipped, so repeating a call is harmless.
//
// Returns:
//   - int64: the number of newly blocked dates.
//   - error: provider.ErrNoDates, provider.ErrPlaceNotFound or provider.ErrForbidden.
func (s *Service) BlockDates(
	ctx context.Context,
	ownerID, placeID int64,
	dates []time.Time,
	note string,
) (int64, error) {
	const op = "service.provider.BlockDates"

	if len(dates) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoDates)
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, domain.Day(d))
	}

	var inserted int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		places := s.store.Places().With(tx)

		if _, err := s.lockOwnedPlace(ctx, places, ownerID, placeID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		n, err := places.BlockDates(ctx, placeID, days, note)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		inserted = n

		return nil
	})

	return inserted, err
}

// UnblockDate removes one availability entry of an owned place.
//
// Returns:
//   - error: provider.ErrAvailabilityNotFound if the entry does not exist.
//   - error: provider.ErrForbidden if the place belongs to someone else.
func (s *Service) UnblockDate(ctx context.Context, ownerID, availabilityID int64) error {
	const op = "service.provider.UnblockDate"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		places := s.store.Places().With(tx)

		pa, placeOwner, err := places.GetAvailability(ctx, availabilityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrAvailabilityNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if placeOwner != ownerID {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		if _, err := places.LockByID(ctx, pa.PlaceID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := places.DeleteAvailability(ctx, availabilityID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrAvailabilityNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}

// Calendar lists blocked and reserved dates of an owned place in [from, to].
func (s *Service) Calendar(ctx context.Context, ownerID, placeID int64, from, to time.Time) (*domain.PlaceCalendar, error) {
	const op = "service.provider.Calendar"

	if _, err := s.GetPlace(ctx, ownerID, placeID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if from.IsZero() {
		from = s.now()
	}

	if to.IsZero() || to.Before(from) {
		to = from.AddDate(0, 0, 30)
	}

	cal, err := s.store.Places().Calendar(ctx, placeID, domain.Day(from), domain.Day(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cal, nil
}

func (s *Service) lockOwnedPlace(
	ctx context.Context,
	places *postgresrepo.PlaceRepo,
	ownerID, placeID int64,
) (*domain.Place, error) {
	p, err := places.LockByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return p, nil
}

// RedeemTicket marks a ticket used at the door. It succeeds once per ticket.
//
// Returns:
//   - *domain.TicketView: the redeemed ticket.
//   - error: provider.ErrTicketNotFound if no ticket carries the code.
//   - error: provider.ErrForbidden if the ticket is for someone else's event.
//   - error: provider.ErrTicketNotConfirmed if its reservation is not paid.
//   - error: provider.ErrTicketUsed if it was already redeemed.
func (s *Service) RedeemTicket(ctx context.Context, ownerID int64, code string) (*domain.TicketView, error) {
	const op = "service.provider.RedeemTicket"

	var ticket *domain.TicketView
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		tickets := s.store.Tickets().With(tx)

		t, eventOwner, err := tickets.LockByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrTicketNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		switch {
		case eventOwner != ownerID:
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		case t.ReservationStatus != domain.ReservationConfirmed:
			return fmt.Errorf("%s: %w", op, ErrTicketNotConfirmed)
		case t.IsUsed:
			return fmt.Errorf("%s: %w", op, ErrTicketUsed)
		}

		if err := tickets.MarkUsed(ctx, t.ID); err != nil {
			if errors.Is(err, repository.ErrAlreadyUsed) {
				return fmt.Errorf("%s: %w", op, ErrTicketUsed)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		now := s.now()
		t.IsUsed = true
		t.UsedAt = &now
		ticket = t

		return nil
	})

	return ticket, err
}
