package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency scopes. Each guarded operation keys its results under its own
// scope so the same client key can be reused across operations.
const (
	IdemScopePurchase = "purchase"
	IdemScopePlace    = "place"
	IdemScopeCheckout = "checkout"
)

const (
	idemLockValue    = "LOCK"
	idemResultPrefix = "RES:"
)

// IdemState is what a stored idempotency key currently holds.
type IdemState int

const (
	IdemAbsent IdemState = iota
	IdemInFlight
	IdemDone
)

// IdemKey addresses one guarded request: the caller, the operation scope, the
// resource it targets and the client-supplied key.
type IdemKey struct {
	Scope    string
	Resource int64
	UserID   int64
	Key      string
}

func (k IdemKey) String() string {
	return KeyIdem(k.Scope, k.Resource, k.UserID, k.Key)
}

type IdempotencyConfig struct {
	// LockTTL bounds how long an in-flight request keeps its key.
	LockTTL time.Duration
	// ResultTTL is how long completed responses are replayed.
	ResultTTL time.Duration
	// ScopeTTL overrides ResultTTL for individual scopes.
	ScopeTTL map[string]time.Duration
}

// IdempotencyStore remembers the response of a mutating request under a
// client-supplied key. A key holds either "LOCK" while the first request is in
// flight or "RES:<json>" once it has completed.
type IdempotencyStore struct {
	rdb *redis.Client
	cfg IdempotencyConfig
}

func NewIdempotencyStore(rdb *redis.Client, cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = time.Minute
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 2 * time.Hour
	}
	return &IdempotencyStore{rdb: rdb, cfg: cfg}
}

// ResultTTL is how long a completed response in scope stays replayable.
func (s *IdempotencyStore) ResultTTL(scope string) time.Duration {
	if ttl, ok := s.cfg.ScopeTTL[scope]; ok && ttl > 0 {
		return ttl
	}
	return s.cfg.ResultTTL
}

// Lookup reports the state of k and, once done, the stored response.
func (s *IdempotencyStore) Lookup(ctx context.Context, k IdemKey) (IdemState, string, error) {
	const op = "redisrepo.IdempotencyStore.Lookup"

	v, err := s.rdb.Get(ctx, k.String()).Result()
	if errors.Is(err, redis.Nil) {
		return IdemAbsent, "", nil
	}
	if err != nil {
		return IdemAbsent, "", fmt.Errorf("%s: %w", op, err)
	}

	if payload, ok := strings.CutPrefix(v, idemResultPrefix); ok {
		return IdemDone, payload, nil
	}
	return IdemInFlight, "", nil
}

// AcquireLock claims k for the caller. It returns false when another request
// already holds or completed it.
func (s *IdempotencyStore) AcquireLock(ctx context.Context, k IdemKey) (bool, error) {
	const op = "redisrepo.IdempotencyStore.AcquireLock"

	ok, err := s.rdb.SetNX(ctx, k.String(), idemLockValue, s.cfg.LockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (s *IdempotencyStore) SaveResult(ctx context.Context, k IdemKey, jsonPayload string) error {
	const op = "redisrepo.IdempotencyStore.SaveResult"

	if err := s.rdb.Set(ctx, k.String(), idemResultPrefix+jsonPayload, s.ResultTTL(k.Scope)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Release drops the lock on k so the client can retry a failed request.
func (s *IdempotencyStore) Release(ctx context.Context, k IdemKey) error {
	const op = "redisrepo.IdempotencyStore.Release"

	if err := s.rdb.Del(ctx, k.String()).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
