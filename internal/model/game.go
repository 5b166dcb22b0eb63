package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusWaiting GameStatus = "waiting" // Seats still open
	GameStatusActive  GameStatus = "active"  // Play in progress
	GameStatusClosed  GameStatus = "closed"  // Game finished
)

// ReservationToken identifies a provisional seat hold
type ReservationToken string

// PlayerRef is the slice of player identity a game carries.
// Identity data is owned by the auth service; games hold only the id,
// plus the email for display.
type PlayerRef struct {
	ID    PlayerID
	Email string
}

// PendingSeat is a provisional seat hold awaiting payment confirmation.
// It counts against the game's player limit until it is committed,
// released, or expires.
type PendingSeat struct {
	Token     ReservationToken
	PlayerID  PlayerID
	InvoiceID string // set once an invoice has been issued
	ExpiresAt time.Time
	CreatedAt time.Time
}

// GameParams holds the table stakes for creating a game.
// All amounts are in satoshis.
type GameParams struct {
	BuyIn       int64
	SmallBlind  int64
	BigBlind    int64
	PlayerLimit int
}

// Game represents a poker table with capacity-limited seating.
// Invariant: len(Players) + len(Pending) <= PlayerLimit at all times.
type Game struct {
	ID          GameID
	Status      GameStatus
	Pot         int64 // satoshis; created at 0
	BuyIn       int64
	SmallBlind  int64
	BigBlind    int64
	PlayerLimit int
	Players     []PlayerRef
	Pending     []PendingSeat // provisional holds, not yet committed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPlayer reports whether the player holds a committed seat
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// HasPendingFor reports whether the player already holds a pending seat
func (g *Game) HasPendingFor(id PlayerID) bool {
	for _, s := range g.Pending {
		if s.PlayerID == id {
			return true
		}
	}
	return false
}

// SeatsTaken counts committed players plus pending holds
func (g *Game) SeatsTaken() int {
	return len(g.Players) + len(g.Pending)
}

// FindPending returns the pending seat for the token, or nil
func (g *Game) FindPending(token ReservationToken) *PendingSeat {
	for i := range g.Pending {
		if g.Pending[i].Token == token {
			return &g.Pending[i]
		}
	}
	return nil
}

// RemovePending drops the pending seat for the token, reporting
// whether it was present
func (g *Game) RemovePending(token ReservationToken) bool {
	for i := range g.Pending {
		if g.Pending[i].Token == token {
			g.Pending = append(g.Pending[:i], g.Pending[i+1:]...)
			return true
		}
	}
	return false
}

// PrunePending drops pending seats whose expiry has passed and
// returns the expired holds
func (g *Game) PrunePending(now time.Time) []PendingSeat {
	var expired []PendingSeat
	kept := g.Pending[:0]
	for _, s := range g.Pending {
		if now.After(s.ExpiresAt) {
			expired = append(expired, s)
		} else {
			kept = append(kept, s)
		}
	}
	g.Pending = kept
	return expired
}

// Reservation links a seat hold token back to its game and player.
// It exists only between "seat provisionally held" and "payment
// confirmed or timed out".
type Reservation struct {
	Token     ReservationToken
	GameID    GameID
	PlayerID  PlayerID
	Email     string
	InvoiceID string
	ExpiresAt time.Time
	CreatedAt time.Time
}
