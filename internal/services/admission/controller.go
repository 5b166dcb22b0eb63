package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lnpoker/lnpoker/internal/dependencies/clock"
	"github.com/lnpoker/lnpoker/internal/gateway"
	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/services/gamestore"
)

// Config holds configuration for the admission controller
type Config struct {
	// SweepInterval is how often expired reservations are released.
	// Expiry is also enforced lazily by the game store, so a missed
	// sweep never violates correctness.
	SweepInterval time.Duration
}

// DefaultConfig returns default admission configuration
func DefaultConfig() Config {
	return Config{
		SweepInterval: time.Minute,
	}
}

// JoinTicket is the result of a successful join request: a held seat
// and the invoice that must be paid to commit it.
type JoinTicket struct {
	Token                 model.ReservationToken
	InvoiceID             string
	EncodedPaymentRequest string
	ExpiresAt             time.Time
	Game                  *model.Game
}

// Controller orchestrates the join protocol: reserve a seat, mint an
// invoice, then commit or release the reservation. The invoice call
// happens outside the game's critical section; commit re-validates the
// reservation afterward.
type Controller struct {
	games   *gamestore.Controller
	gateway gateway.Gateway
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config

	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewController creates a new admission controller
func NewController(
	games *gamestore.Controller,
	gw gateway.Gateway,
	clock clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Controller{
		games:   games,
		gateway: gw,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// JoinGame reserves a seat for the player and mints a buy-in invoice.
// On any downstream failure the reservation is released; no partial
// state is left behind.
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, player model.PlayerRef) (*JoinTicket, error) {
	res, err := c.games.TryReserveSeat(ctx, gameID, player)
	if err != nil {
		return nil, err
	}

	game, err := c.games.GetGame(ctx, gameID)
	if err != nil {
		_ = c.games.ReleaseSeat(ctx, res.Token)
		return nil, err
	}

	// Buy-in is stored in satoshis; the gateway speaks millisatoshis.
	memo := fmt.Sprintf("Join game %s", gameID)
	invoice, err := c.gateway.CreateInvoice(ctx, game.BuyIn*1000, memo)
	if err != nil {
		c.logger.Warn("invoice issuance failed, releasing seat",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()),
		)
		_ = c.games.ReleaseSeat(ctx, res.Token)
		return nil, err
	}

	if err := c.games.AttachInvoice(ctx, res.Token, invoice.ID); err != nil {
		// The hold expired during the gateway round-trip
		_ = c.games.ReleaseSeat(ctx, res.Token)
		return nil, model.ErrJoinExpired
	}

	c.logger.Info("join invoice issued",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)),
		slog.String("invoice_id", invoice.ID),
	)

	return &JoinTicket{
		Token:                 res.Token,
		InvoiceID:             invoice.ID,
		EncodedPaymentRequest: invoice.EncodedPaymentRequest,
		ExpiresAt:             res.ExpiresAt,
		Game:                  game,
	}, nil
}

// ConfirmPayment commits a reserved seat after the invoice settles.
// Invoked by the payment-notification collaborator.
func (c *Controller) ConfirmPayment(ctx context.Context, token model.ReservationToken) (*model.Game, error) {
	game, err := c.games.CommitSeat(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrReservationExpired) {
			return nil, model.ErrJoinExpired
		}
		return nil, err
	}
	return game, nil
}

// CancelJoin releases a reservation the caller is abandoning
func (c *Controller) CancelJoin(ctx context.Context, token model.ReservationToken) error {
	return c.games.ReleaseSeat(ctx, token)
}

// SweepExpired releases every expired reservation across all games and
// returns the number released
func (c *Controller) SweepExpired(ctx context.Context) int {
	games, err := c.games.ListGames(ctx)
	if err != nil {
		c.logger.Error("sweep failed to list games", slog.String("error", err.Error()))
		return 0
	}

	now := c.clock.Now()
	released := 0
	for _, g := range games {
		for _, seat := range g.Pending {
			if now.After(seat.ExpiresAt) {
				if err := c.games.ReleaseSeat(ctx, seat.Token); err == nil {
					released++
				}
			}
		}
	}

	if released > 0 {
		c.logger.Info("swept expired reservations", slog.Int("released", released))
	}
	return released
}

// Start runs the background sweeper until Stop is called
func (c *Controller) Start(ctx context.Context) {
	c.started = true
	go func() {
		defer close(c.doneCh)
		ticker := time.NewTicker(c.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.SweepExpired(ctx)
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the background sweeper
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	if c.started {
		<-c.doneCh
	}
}
