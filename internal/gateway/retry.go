package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryingGateway decorates a Gateway with bounded exponential backoff.
// Only ErrUnavailable is retried; invalid amounts fail immediately.
// The core never retries on its own; this decorator is opted into at
// wiring time by the calling collaborator.
type RetryingGateway struct {
	inner       Gateway
	maxRetries  uint64
	maxInterval time.Duration
	logger      *slog.Logger
}

// NewRetryingGateway wraps a gateway with retry behavior
func NewRetryingGateway(inner Gateway, maxRetries uint64, logger *slog.Logger) *RetryingGateway {
	return &RetryingGateway{
		inner:       inner,
		maxRetries:  maxRetries,
		maxInterval: 5 * time.Second,
		logger:      logger,
	}
}

// Ensure RetryingGateway implements the gateway interface
var _ Gateway = (*RetryingGateway)(nil)

// CreateInvoice calls the inner gateway, retrying transient failures
func (g *RetryingGateway) CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*Invoice, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = g.maxInterval

	var invoice *Invoice
	operation := func() error {
		var err error
		invoice, err = g.inner.CreateInvoice(ctx, amountMsats, memo)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUnavailable) {
			g.logger.Warn("invoice gateway unavailable, retrying",
				slog.String("error", err.Error()),
			)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, g.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return invoice, nil
}
