package gateway

import (
	"context"
	"errors"
)

// Errors surfaced by invoice gateways
var (
	ErrUnavailable   = errors.New("invoice gateway unavailable")
	ErrInvalidAmount = errors.New("invalid invoice amount")
)

// Invoice is a payment request minted by the Lightning gateway
type Invoice struct {
	ID                    string
	EncodedPaymentRequest string
}

// Gateway abstracts the external payment-invoice issuer.
// Implementations do not retry; retry policy belongs to the caller.
type Gateway interface {
	// CreateInvoice mints an invoice for the given amount in
	// millisatoshis with the given memo
	CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*Invoice, error)
}
