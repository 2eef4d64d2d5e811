package payment

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kirinyoku/evently/internal/metrics"
)

// Retrying wraps a Gateway and retries calls that failed with ErrTransient.
type Retrying struct {
	next       Gateway
	maxRetries uint64
	initial    time.Duration
}

func WithRetry(next Gateway, maxRetries uint64) *Retrying {
	return &Retrying{next: next, maxRetries: maxRetries, initial: 200 * time.Millisecond}
}

func (r *Retrying) Name() string { return r.next.Name() }

func (r *Retrying) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	return call(ctx, r, "create_checkout", func() (Checkout, error) {
		return r.next.CreateCheckout(ctx, req)
	})
}

func (r *Retrying) Status(ctx context.Context, ref string) (Status, error) {
	return call(ctx, r, "status", func() (Status, error) {
		return r.next.Status(ctx, ref)
	})
}

func (r *Retrying) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	return call(ctx, r, "create_customer", func() (string, error) {
		return r.next.CreateCustomer(ctx, email, name)
	})
}

func (r *Retrying) CreateProduct(ctx context.Context, name, description string) (string, error) {
	return call(ctx, r, "create_product", func() (string, error) {
		return r.next.CreateProduct(ctx, name, description)
	})
}

func (r *Retrying) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (string, error) {
	return call(ctx, r, "create_price", func() (string, error) {
		return r.next.CreatePrice(ctx, productID, unitAmount, currency)
	})
}

func (r *Retrying) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	return call(ctx, r, "create_portal_session", func() (string, error) {
		return r.next.CreatePortalSession(ctx, customerID, returnURL)
	})
}

func call[T any](ctx context.Context, r *Retrying, operation string, fn func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = 5 * r.initial

	out, err := backoff.RetryWithData(func() (T, error) {
		v, err := fn()
		if err != nil && !errors.Is(err, ErrTransient) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx))

	metrics.GatewayCalls.WithLabelValues(operation, result(err)).Inc()

	return out, err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	default:
		return "error"
	}
}
