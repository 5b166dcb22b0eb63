// Package fakegateway provides an in-process invoice gateway for tests
// and local development. Payment requests are deterministic and never
// touch a Lightning node.
package fakegateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/lnpoker/lnpoker/internal/gateway"
)

// Gateway is a fake invoice issuer
type Gateway struct {
	mu sync.Mutex

	// Err, if set, is returned from every CreateInvoice call
	Err error

	counter int
	issued  []Issued
}

// Issued records one minted invoice for assertions
type Issued struct {
	AmountMsats int64
	Memo        string
}

// New creates a new fake gateway
func New() *Gateway {
	return &Gateway{}
}

// Ensure Gateway implements the gateway interface
var _ gateway.Gateway = (*Gateway)(nil)

// CreateInvoice mints a deterministic fake invoice
func (g *Gateway) CreateInvoice(ctx context.Context, amountMsats int64, memo string) (*gateway.Invoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}
	if amountMsats <= 0 {
		return nil, gateway.ErrInvalidAmount
	}

	g.counter++
	g.issued = append(g.issued, Issued{AmountMsats: amountMsats, Memo: memo})

	return &gateway.Invoice{
		ID:                    fmt.Sprintf("inv_%06d", g.counter),
		EncodedPaymentRequest: fmt.Sprintf("lnbc%dn1fake%06d", amountMsats, g.counter),
	}, nil
}

// Fail makes subsequent calls return the given error
func (g *Gateway) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = err
}

// IssuedInvoices returns a copy of all minted invoices
func (g *Gateway) IssuedInvoices() []Issued {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Issued(nil), g.issued...)
}
