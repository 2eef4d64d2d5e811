package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans uses Snap for hosted checkout and the Core API for status lookups.
// It has no customer, catalog or billing-portal objects.
type Midtrans struct {
	snap snap.Client
	core coreapi.Client
}

func NewMidtrans(serverKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	m := &Midtrans{}
	m.snap.New(serverKey, env)
	m.core.New(serverKey, env)

	return m
}

func (m *Midtrans) Name() string { return "midtrans" }

// CreateCheckout opens a Snap transaction. Midtrans order ids must be unique
// per attempt, so the reference carries the caller's attempt suffix.
func (m *Midtrans) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	const op = "payment.Midtrans.CreateCheckout"

	if err := ctx.Err(); err != nil {
		return Checkout{}, err
	}

	// Amounts arrive in minor units; Midtrans expects whole currency units.
	unit := (req.UnitAmount + 99) / 100

	items := []midtrans.ItemDetails{{
		ID:    req.ReferenceID,
		Name:  truncate(req.Description, 50),
		Price: unit,
		Qty:   int32(req.Quantity),
	}}

	sreq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.ReferenceID,
			GrossAmt: unit * req.Quantity,
		},
		Items: &items,
		Callbacks: &snap.Callbacks{
			Finish: req.SuccessURL,
		},
	}
	if req.CustomerEmail != "" {
		sreq.CustomerDetail = &midtrans.CustomerDetails{Email: req.CustomerEmail}
	}

	resp, mErr := m.snap.CreateTransaction(sreq)
	if mErr != nil {
		return Checkout{}, fail(op, midtransTransient(mErr), mErr)
	}

	return Checkout{TransactionRef: req.ReferenceID, URL: resp.RedirectURL}, nil
}

func (m *Midtrans) Status(ctx context.Context, ref string) (Status, error) {
	const op = "payment.Midtrans.Status"

	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, mErr := m.core.CheckTransaction(ref)
	if mErr != nil {
		return "", fail(op, midtransTransient(mErr), mErr)
	}

	return midtransStatus(res.TransactionStatus, res.FraudStatus), nil
}

func midtransStatus(transactionStatus, fraudStatus string) Status {
	switch transactionStatus {
	case "settlement":
		return StatusPaid
	case "capture":
		if fraudStatus == "" || fraudStatus == "accept" {
			return StatusPaid
		}
		return StatusPending
	case "deny", "cancel", "expire", "failure":
		return StatusFailed
	default:
		return StatusPending
	}
}

func (m *Midtrans) CreateCustomer(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("payment.Midtrans.CreateCustomer: %w", ErrUnsupported)
}

func (m *Midtrans) CreateProduct(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("payment.Midtrans.CreateProduct: %w", ErrUnsupported)
}

func (m *Midtrans) CreatePrice(context.Context, string, int64, string) (string, error) {
	return "", fmt.Errorf("payment.Midtrans.CreatePrice: %w", ErrUnsupported)
}

func (m *Midtrans) CreatePortalSession(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("payment.Midtrans.CreatePortalSession: %w", ErrUnsupported)
}

func midtransTransient(err *midtrans.Error) bool {
	return err.StatusCode == 0 || err.StatusCode == 429 || err.StatusCode >= 500
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
