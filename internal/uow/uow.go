package uow

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"

	postgres "github.com/kirinyoku/evently/internal/repository/postgres"
)

// AfterCommit is a function that runs after a successful transaction commit.
type AfterCommit func(ctx context.Context)

// UoW represents a unit of work.
type UoW struct {
	store      *postgres.Store
	maxRetries uint64
}

func NewUoW(store *postgres.Store) *UoW {
	return &UoW{store: store, maxRetries: 5}
}

// Do runs fn inside a serializable transaction. After a successful commit,
// it executes all after-commit hooks.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts runs fn inside the transaction with the given options. Serialization
// failures and deadlocks restart fn in a fresh transaction with exponential
// backoff; any other error is returned as is. Hooks registered by an aborted
// attempt are discarded.
func (u *UoW) DoWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	attempt := func() error {
		hooks = hooks[:0]

		err := u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgres.DB) error {
			return fn(ctx, tx, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err != nil && !postgres.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond

	if err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(b, u.maxRetries), ctx)); err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
