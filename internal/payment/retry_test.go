package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyGateway struct {
	Gateway
	failures int
	err      error
	calls    int
}

func (f *flakyGateway) Name() string { return "flaky" }

func (f *flakyGateway) Status(context.Context, string) (Status, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return StatusPaid, nil
}

func (f *flakyGateway) CreateCustomer(context.Context, string, string) (string, error) {
	f.calls++
	return "", f.err
}

func newTestRetrying(g Gateway, max uint64) *Retrying {
	r := WithRetry(g, max)
	r.initial = time.Millisecond
	return r
}

func TestRetryingRetriesTransientFailures(t *testing.T) {
	g := &flakyGateway{failures: 2, err: fail("test", true, errors.New("503"))}
	r := newTestRetrying(g, 3)

	st, err := r.Status(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, st)
	assert.Equal(t, 3, g.calls)
}

func TestRetryingGivesUpAfterMaxRetries(t *testing.T) {
	g := &flakyGateway{failures: 10, err: fail("test", true, errors.New("503"))}
	r := newTestRetrying(g, 2)

	_, err := r.Status(context.Background(), "cs_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.Equal(t, 3, g.calls)
}

func TestRetryingStopsOnPermanentFailure(t *testing.T) {
	g := &flakyGateway{failures: 10, err: fail("test", false, errors.New("card declined"))}
	r := newTestRetrying(g, 5)

	_, err := r.Status(context.Background(), "cs_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.NotErrorIs(t, err, ErrTransient)
	assert.Equal(t, 1, g.calls)
}

func TestRetryingPassesUnsupportedThrough(t *testing.T) {
	m := NewMidtrans("server-key", false)
	r := newTestRetrying(m, 5)

	_, err := r.CreateCustomer(context.Background(), "a@b.c", "A")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = r.CreatePortalSession(context.Background(), "cus_1", "http://x")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMidtransStatusMapping(t *testing.T) {
	cases := []struct {
		tx, fraud string
		want      Status
	}{
		{"settlement", "", StatusPaid},
		{"capture", "accept", StatusPaid},
		{"capture", "challenge", StatusPending},
		{"pending", "", StatusPending},
		{"expire", "", StatusFailed},
		{"deny", "", StatusFailed},
		{"cancel", "", StatusFailed},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, midtransStatus(c.tx, c.fraud), c.tx+"/"+c.fraud)
	}
}
