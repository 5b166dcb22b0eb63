package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpoker/lnpoker/internal/testutil"
)

// flakyGateway fails a set number of times before succeeding
type flakyGateway struct {
	failures int
	err      error
	calls    int
}

func (g *flakyGateway) CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*Invoice, error) {
	g.calls++
	if g.calls <= g.failures {
		return nil, g.err
	}
	return &Invoice{ID: "inv_1", EncodedPaymentRequest: "lnbc1fake"}, nil
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyGateway{failures: 2, err: ErrUnavailable}
	retrying := NewRetryingGateway(inner, 3, testutil.NopLogger())

	invoice, err := retrying.CreateInvoice(context.Background(), 1000, "memo")
	require.NoError(t, err)
	assert.Equal(t, "inv_1", invoice.ID)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	inner := &flakyGateway{failures: 10, err: ErrUnavailable}
	retrying := NewRetryingGateway(inner, 2, testutil.NopLogger())

	_, err := retrying.CreateInvoice(context.Background(), 1000, "memo")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, inner.calls) // initial attempt plus two retries
}

func TestRetryDoesNotRetryPermanentErrors(t *testing.T) {
	inner := &flakyGateway{failures: 10, err: ErrInvalidAmount}
	retrying := NewRetryingGateway(inner, 5, testutil.NopLogger())

	_, err := retrying.CreateInvoice(context.Background(), -1, "memo")
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyGateway{failures: 10, err: ErrUnavailable}
	retrying := NewRetryingGateway(inner, 5, testutil.NopLogger())

	_, err := retrying.CreateInvoice(ctx, 1000, "memo")
	require.Error(t, err)
}
