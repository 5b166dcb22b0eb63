package gamestore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lnpoker/lnpoker/internal/dependencies/clock"
	"github.com/lnpoker/lnpoker/internal/dependencies/random"
	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/storage"
)

const (
	// GameIDLength is the length of generated game ids
	GameIDLength = 12
	// TokenLength is the length of generated reservation tokens
	TokenLength = 24
	// IDAlphabet is the characters used in generated ids
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds configuration for the game store
type Config struct {
	// ReservationTTL is how long a pending seat is held before it
	// expires unconfirmed
	ReservationTTL time.Duration
}

// DefaultConfig returns default game store configuration
func DefaultConfig() Config {
	return Config{
		ReservationTTL: 10 * time.Minute,
	}
}

// Controller owns game records and enforces the capacity invariant:
// for any game, committed players plus live pending holds never exceed
// the player limit. All seat mutations for a game run under that
// game's lock; the check-and-reserve is a single atomic step.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *keyedMutex
	cfg     Config
}

// NewController creates a new game store controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.ReservationTTL == 0 {
		cfg.ReservationTTL = DefaultConfig().ReservationTTL
	}
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newKeyedMutex(),
		cfg:     cfg,
	}
}

// CreateGame creates a game in waiting status with the creator seated
func (c *Controller) CreateGame(ctx context.Context, params model.GameParams, creator model.PlayerRef) (*model.Game, error) {
	if params.BuyIn <= 0 || params.SmallBlind <= 0 || params.BigBlind <= 0 {
		return nil, model.ErrInvalidParameters
	}
	if params.PlayerLimit < 2 {
		return nil, model.ErrInvalidParameters
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:          model.GameID(c.random.String(GameIDLength, IDAlphabet)),
		Status:      model.GameStatusWaiting,
		Pot:         0,
		BuyIn:       params.BuyIn,
		SmallBlind:  params.SmallBlind,
		BigBlind:    params.BigBlind,
		PlayerLimit: params.PlayerLimit,
		Players:     []model.PlayerRef{creator},
		Pending:     []model.PendingSeat{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("creator", string(creator.ID)),
		slog.Int64("buy_in", params.BuyIn),
		slog.Int("player_limit", params.PlayerLimit),
	)

	return game, nil
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ListGames returns a snapshot of all games, creation time ascending
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// TryReserveSeat atomically checks that the player may join and marks
// a seat provisionally held. The check and the hold happen under the
// game's lock so concurrent joins can never oversubscribe the table.
func (c *Controller) TryReserveSeat(ctx context.Context, gameID model.GameID, player model.PlayerRef) (*model.Reservation, error) {
	unlock := c.locks.Lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	c.pruneLocked(ctx, game, now)

	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrGameNotJoinable
	}
	if game.HasPlayer(player.ID) || game.HasPendingFor(player.ID) {
		return nil, model.ErrAlreadyJoined
	}
	if game.SeatsTaken() >= game.PlayerLimit {
		return nil, model.ErrGameFull
	}

	res := &model.Reservation{
		Token:     model.ReservationToken("rsv_" + c.random.String(TokenLength, IDAlphabet)),
		GameID:    gameID,
		PlayerID:  player.ID,
		Email:     player.Email,
		ExpiresAt: now.Add(c.cfg.ReservationTTL),
		CreatedAt: now,
	}

	game.Pending = append(game.Pending, model.PendingSeat{
		Token:     res.Token,
		PlayerID:  player.ID,
		ExpiresAt: res.ExpiresAt,
		CreatedAt: now,
	})
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	if err := c.storage.SaveReservation(ctx, res); err != nil {
		// Roll the hold back rather than leave a seat held with no token
		game.RemovePending(res.Token)
		_ = c.storage.SaveGame(ctx, game)
		return nil, err
	}

	c.logger.Info("seat reserved",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)),
		slog.String("token", string(res.Token)),
	)

	return res, nil
}

// AttachInvoice records the issued invoice on a pending reservation
func (c *Controller) AttachInvoice(ctx context.Context, token model.ReservationToken, invoiceID string) error {
	res, err := c.storage.GetReservation(ctx, token)
	if err != nil {
		return err
	}

	unlock := c.locks.Lock(res.GameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, res.GameID)
	if err != nil {
		return err
	}

	seat := game.FindPending(token)
	if seat == nil {
		return model.ErrReservationExpired
	}
	seat.InvoiceID = invoiceID
	res.InvoiceID = invoiceID

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}
	return c.storage.SaveReservation(ctx, res)
}

// CommitSeat moves a pending reservation into the committed player
// set. The reservation's validity is re-checked under the game lock,
// because the invoice round-trip happened outside it.
func (c *Controller) CommitSeat(ctx context.Context, token model.ReservationToken) (*model.Game, error) {
	res, err := c.storage.GetReservation(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			return nil, model.ErrReservationExpired
		}
		return nil, err
	}

	unlock := c.locks.Lock(res.GameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, res.GameID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	c.pruneLocked(ctx, game, now)

	seat := game.FindPending(token)
	if seat == nil || now.After(seat.ExpiresAt) {
		return nil, model.ErrReservationExpired
	}

	game.RemovePending(token)
	game.Players = append(game.Players, model.PlayerRef{ID: res.PlayerID, Email: res.Email})
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	_ = c.storage.DeleteReservation(ctx, token)

	c.logger.Info("seat committed",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(res.PlayerID)),
		slog.Int("players", len(game.Players)),
	)

	return game, nil
}

// ReleaseSeat drops a pending reservation without touching committed
// players. Idempotent: releasing an unknown or already-resolved token
// is a no-op.
func (c *Controller) ReleaseSeat(ctx context.Context, token model.ReservationToken) error {
	res, err := c.storage.GetReservation(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			return nil
		}
		return err
	}

	unlock := c.locks.Lock(res.GameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, res.GameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return c.storage.DeleteReservation(ctx, token)
		}
		return err
	}

	if game.RemovePending(token) {
		game.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveGame(ctx, game); err != nil {
			return err
		}
		c.logger.Info("seat released",
			slog.String("game_id", string(game.ID)),
			slog.String("token", string(token)),
		)
	}

	return c.storage.DeleteReservation(ctx, token)
}

// pruneLocked drops expired pending seats and their token records.
// Caller must hold the game's lock.
func (c *Controller) pruneLocked(ctx context.Context, game *model.Game, now time.Time) {
	expired := game.PrunePending(now)
	if len(expired) == 0 {
		return
	}
	for _, seat := range expired {
		_ = c.storage.DeleteReservation(ctx, seat.Token)
		c.logger.Info("reservation expired",
			slog.String("game_id", string(game.ID)),
			slog.String("player_id", string(seat.PlayerID)),
		)
	}
	game.UpdatedAt = now
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to persist pruned game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, params model.GameParams, creator model.PlayerRef) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	TryReserveSeat(ctx context.Context, gameID model.GameID, player model.PlayerRef) (*model.Reservation, error)
	AttachInvoice(ctx context.Context, token model.ReservationToken, invoiceID string) error
	CommitSeat(ctx context.Context, token model.ReservationToken) (*model.Game, error)
	ReleaseSeat(ctx context.Context, token model.ReservationToken) error
}

var _ ControllerInterface = (*Controller)(nil)
