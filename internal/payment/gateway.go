package payment

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGateway marks every failure reported by or while talking to a gateway.
	ErrGateway = errors.New("payment gateway failure")
	// ErrTransient marks gateway failures worth retrying.
	ErrTransient = errors.New("transient")
	// ErrUnsupported is returned by adapters for operations their provider lacks.
	ErrUnsupported = errors.New("operation not supported by payment provider")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

type CheckoutRequest struct {
	// ReferenceID ties the session back to a reservation.
	ReferenceID   string
	Description   string
	UnitAmount    int64
	Quantity      int64
	Currency      string
	PriceID       string
	CustomerID    string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type Checkout struct {
	TransactionRef string
	URL            string
}

// Gateway is a hosted-checkout payment provider. Amounts are in minor units.
type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error)
	Status(ctx context.Context, transactionRef string) (Status, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	CreateProduct(ctx context.Context, name, description string) (string, error)
	CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

func fail(op string, transient bool, err error) error {
	if transient {
		return fmt.Errorf("%s: %w: %w: %w", op, ErrGateway, ErrTransient, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrGateway, err)
}
