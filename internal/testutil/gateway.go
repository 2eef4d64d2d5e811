package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kirinyoku/evently/internal/payment"
)

// Gateway is an in-memory payment.Gateway. Sessions start pending; tests settle
// them with SetStatus.
type Gateway struct {
	mu       sync.Mutex
	seq      int
	statuses map[string]payment.Status
	Requests []payment.CheckoutRequest
	Products []string
	Prices   map[string][]int64
}

func NewGateway() *Gateway {
	return &Gateway{
		statuses: map[string]payment.Status{},
		Prices:   map[string][]int64{},
	}
}

func (g *Gateway) Name() string { return "fake" }

func (g *Gateway) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (payment.Checkout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	ref := fmt.Sprintf("cs_%d", g.seq)
	g.statuses[ref] = payment.StatusPending
	g.Requests = append(g.Requests, req)

	return payment.Checkout{TransactionRef: ref, URL: "https://pay.example.com/" + ref}, nil
}

func (g *Gateway) SetStatus(ref string, st payment.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[ref] = st
}

func (g *Gateway) Status(_ context.Context, ref string) (payment.Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.statuses[ref]
	if !ok {
		return "", fmt.Errorf("testutil.Gateway.Status: %w: unknown session %q", payment.ErrGateway, ref)
	}
	return st, nil
}

func (g *Gateway) CreateCustomer(_ context.Context, email, _ string) (string, error) {
	return "cus_" + email, nil
}

func (g *Gateway) CreateProduct(_ context.Context, name, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("prod_%d", len(g.Products)+1)
	g.Products = append(g.Products, name)
	return id, nil
}

func (g *Gateway) CreatePrice(_ context.Context, productID string, unitAmount int64, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Prices[productID] = append(g.Prices[productID], unitAmount)
	return fmt.Sprintf("price_%s_%d", productID, len(g.Prices[productID])), nil
}

func (g *Gateway) CreatePortalSession(_ context.Context, customerID, _ string) (string, error) {
	return "https://portal.example.com/" + customerID, nil
}
