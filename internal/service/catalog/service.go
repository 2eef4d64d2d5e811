package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/evently/internal/domain"
	"github.com/kirinyoku/evently/internal/repository"
	postgresrepo "github.com/kirinyoku/evently/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/evently/internal/repository/redis"
)

// Changes is told about every committed catalog mutation.
type Changes interface {
	EventChanged(ctx context.Context, eventID int64)
	PlaceChanged(ctx context.Context, placeID int64)
}

type Config struct {
	DetailsTTL     time.Duration
	ListingTTL     time.Duration
	DefaultPage    int
	MaxPage        int
	MaxCalendarDay int
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.CatalogPubSub
	logger *slog.Logger
	cfg    Config
	now    func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.CatalogPubSub,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.DetailsTTL <= 0 {
		cfg.DetailsTTL = 10 * time.Minute
	}

	if cfg.ListingTTL <= 0 {
		cfg.ListingTTL = time.Minute
	}

	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 20
	}

	if cfg.MaxPage <= 0 {
		cfg.MaxPage = 100
	}

	if cfg.MaxCalendarDay <= 0 {
		cfg.MaxCalendarDay = 366
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// ListEvents returns approved upcoming events matching the filter.
// Pages are cached per listing generation.
func (s *Service) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	const op = "service.catalog.ListEvents"

	f.Limit, f.Offset = s.page(f.Limit, f.Offset)

	hash := filterHash(f.EventType, f.Search, f.Limit, f.Offset)

	events, err := cachedListing(ctx, s, redisrepo.KindEvent, hash, func(ctx context.Context) ([]domain.Event, error) {
		return s.store.Events().ListApproved(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// GetEvent returns an approved event with its live ticket types.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event is missing, deleted or not approved.
func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "service.catalog.GetEvent"

	event, err := s.eventDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !event.Approval.IsApproved() {
		return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
	}

	return &event, nil
}

func (s *Service) eventDetails(ctx context.Context, id int64) (domain.Event, error) {
	load := func(ctx context.Context) (domain.Event, error) {
		e, err := s.store.Events().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.Event{}, ErrEventNotFound
			}

			return domain.Event{}, err
		}

		return *e, nil
	}

	if s.cache == nil {
		return load(ctx)
	}

	return redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventDetails(id), s.cfg.DetailsTTL, load)
}

// ListPlaces returns approved places matching the filter.
func (s *Service) ListPlaces(ctx context.Context, f domain.PlaceFilter) ([]domain.Place, error) {
	const op = "service.catalog.ListPlaces"

	f.Limit, f.Offset = s.page(f.Limit, f.Offset)

	hash := filterHash(f.PlaceType, f.Search, f.Limit, f.Offset)

	places, err := cachedListing(ctx, s, redisrepo.KindPlace, hash, func(ctx context.Context) ([]domain.Place, error) {
		return s.store.Places().ListApproved(ctx, f)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

// GetPlace returns an approved place.
//
// Returns:
//   - error: catalog.ErrPlaceNotFound if the place is missing, deleted or not approved.
func (s *Service) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	const op = "service.catalog.GetPlace"

	load := func(ctx context.Context) (domain.Place, error) {
		p, err := s.store.Places().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.Place{}, ErrPlaceNotFound
			}

			return domain.Place{}, err
		}

		return *p, nil
	}

	var (
		place domain.Place
		err   error
	)
	if s.cache == nil {
		place, err = load(ctx)
	} else {
		place, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyPlaceDetails(id), s.cfg.DetailsTTL, load)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !place.Approval.IsApproved() {
		return nil, fmt.Errorf("%s: %w", op, ErrPlaceNotFound)
	}

	return &place, nil
}

// Availability lists blocked and reserved dates of an approved place within
// [from, to]. Zero bounds default to today and thirty days ahead.
//
// Returns:
//   - error: catalog.ErrPlaceNotFound if the place is not publicly visible.
//   - error: catalog.ErrInvalidRange if to precedes from or the range is too long.
func (s *Service) Availability(ctx context.Context, placeID int64, from, to time.Time) (*domain.PlaceCalendar, error) {
	const op = "service.catalog.Availability"

	if from.IsZero() {
		from = domain.Day(s.now())
	}

	if to.IsZero() {
		to = from.AddDate(0, 0, 30)
	}

	from, to = domain.Day(from), domain.Day(to)

	if to.Before(from) || to.Sub(from) > time.Duration(s.cfg.MaxCalendarDay)*24*time.Hour {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	if _, err := s.GetPlace(ctx, placeID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cal, err := s.store.Places().Calendar(ctx, placeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cal, nil
}

// EventChanged drops the cached event and every cached event listing page,
// then tells other instances.
func (s *Service) EventChanged(ctx context.Context, eventID int64) {
	s.changed(ctx, redisrepo.KindEvent, eventID)
}

func (s *Service) PlaceChanged(ctx context.Context, placeID int64) {
	s.changed(ctx, redisrepo.KindPlace, placeID)
}

func (s *Service) changed(ctx context.Context, kind string, id int64) {
	if err := s.Invalidate(ctx, kind, id); err != nil {
		s.logger.Warn("cache invalidation failed", "kind", kind, "id", id, "error", err)
	}

	if s.pubsub == nil {
		return
	}

	if err := s.pubsub.PublishChanged(ctx, kind, id); err != nil {
		s.logger.Warn("catalog change publish failed", "kind", kind, "id", id, "error", err)
	}
}

// Invalidate drops local cache state for one catalog entry. It is also the
// handler of change notifications from other instances.
func (s *Service) Invalidate(ctx context.Context, kind string, id int64) error {
	if s.cache == nil {
		return nil
	}

	switch kind {
	case redisrepo.KindEvent:
		return s.cache.InvalidateEvent(ctx, id)
	case redisrepo.KindPlace:
		return s.cache.InvalidatePlace(ctx, id)
	default:
		return fmt.Errorf("service.catalog.Invalidate: unknown kind %q", kind)
	}
}

func (s *Service) page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.DefaultPage
	}

	if limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// cachedListing serves a listing page from the cache of the scope's current
// generation. Cache failures fall back to the loader.
func cachedListing[T any](
	ctx context.Context,
	s *Service,
	scope, hash string,
	loader func(ctx context.Context) ([]T, error),
) ([]T, error) {
	if s.cache == nil {
		return loader(ctx)
	}

	gen, err := s.cache.ListingGeneration(ctx, scope)
	if err != nil {
		s.logger.Warn("listing generation unavailable", "scope", scope, "error", err)
		return loader(ctx)
	}

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyListing(scope, gen, hash), s.cfg.ListingTTL, loader)
	if err != nil {
		return nil, err
	}

	if out == nil {
		out = []T{}
	}

	return out, nil
}

func filterHash(kind, search string, limit, offset int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d", kind, search, limit, offset)))
	return hex.EncodeToString(sum[:8])
}
