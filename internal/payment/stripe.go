package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type Stripe struct {
	sc *client.API
}

func NewStripe(secretKey string) *Stripe {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &Stripe{sc: sc}
}

func (s *Stripe) Name() string { return "stripe" }

func (s *Stripe) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	const op = "payment.Stripe.CreateCheckout"

	item := &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(req.Quantity),
	}
	if req.PriceID != "" {
		item.Price = stripe.String(req.PriceID)
	} else {
		item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(req.Currency),
			UnitAmount: stripe.Int64(req.UnitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(req.Description),
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.ReferenceID),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		LineItems:         []*stripe.CheckoutSessionLineItemParams{item},
	}
	params.Context = ctx

	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	sess, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		return Checkout{}, fail(op, stripeTransient(err), err)
	}

	return Checkout{TransactionRef: sess.ID, URL: sess.URL}, nil
}

func (s *Stripe) Status(ctx context.Context, ref string) (Status, error) {
	const op = "payment.Stripe.Status"

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.sc.CheckoutSessions.Get(ref, params)
	if err != nil {
		return "", fail(op, stripeTransient(err), err)
	}

	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return StatusPaid, nil
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}

func (s *Stripe) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	const op = "payment.Stripe.CreateCustomer"

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx

	c, err := s.sc.Customers.New(params)
	if err != nil {
		return "", fail(op, stripeTransient(err), err)
	}

	return c.ID, nil
}

func (s *Stripe) CreateProduct(ctx context.Context, name, description string) (string, error) {
	const op = "payment.Stripe.CreateProduct"

	params := &stripe.ProductParams{
		Name: stripe.String(name),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.Context = ctx

	p, err := s.sc.Products.New(params)
	if err != nil {
		return "", fail(op, stripeTransient(err), err)
	}

	return p.ID, nil
}

func (s *Stripe) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (string, error) {
	const op = "payment.Stripe.CreatePrice"

	params := &stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(unitAmount),
		Currency:   stripe.String(currency),
	}
	params.Context = ctx

	p, err := s.sc.Prices.New(params)
	if err != nil {
		return "", fail(op, stripeTransient(err), err)
	}

	return p.ID, nil
}

func (s *Stripe) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	const op = "payment.Stripe.CreatePortalSession"

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := s.sc.BillingPortalSessions.New(params)
	if err != nil {
		return "", fail(op, stripeTransient(err), err)
	}

	return sess.URL, nil
}

// stripeTransient treats rate limiting, server errors and transport failures
// as retryable.
func stripeTransient(err error) bool {
	var se *stripe.Error
	if errors.As(err, &se) {
		return se.HTTPStatusCode == http.StatusTooManyRequests || se.HTTPStatusCode >= 500
	}
	return true
}
