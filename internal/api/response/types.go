package response

import (
	"time"

	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/services/admission"
	"github.com/lnpoker/lnpoker/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:    string(p.ID),
		Email: p.Email,
	}
}

// PlayerFromRef converts a model.PlayerRef to a response Player
func PlayerFromRef(p model.PlayerRef) Player {
	return Player{
		ID:    string(p.ID),
		Email: p.Email,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Game represents a game in API responses
type Game struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Pot         int64     `json:"pot"`
	BuyIn       int64     `json:"buyIn"`
	SmallBlind  int64     `json:"smallBlind"`
	BigBlind    int64     `json:"bigBlind"`
	PlayerLimit int       `json:"playerLimit"`
	Players     []Player  `json:"players"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromRef(p)
	}
	return Game{
		ID:          string(g.ID),
		Status:      string(g.Status),
		Pot:         g.Pot,
		BuyIn:       g.BuyIn,
		SmallBlind:  g.SmallBlind,
		BigBlind:    g.BigBlind,
		PlayerLimit: g.PlayerLimit,
		Players:     players,
		CreatedAt:   g.CreatedAt,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// JoinResponse is the response after a join request: the invoice to
// pay and the held seat's token
type JoinResponse struct {
	Invoice          string    `json:"invoice"`
	InvoiceID        string    `json:"invoice_id"`
	ReservationToken string    `json:"reservation_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	Game             Game      `json:"game"`
}

// JoinResponseFromTicket creates a JoinResponse from a join ticket
func JoinResponseFromTicket(t *admission.JoinTicket) JoinResponse {
	return JoinResponse{
		Invoice:          t.EncodedPaymentRequest,
		InvoiceID:        t.InvoiceID,
		ReservationToken: string(t.Token),
		ExpiresAt:        t.ExpiresAt,
		Game:             GameFromModel(t.Game),
	}
}

// ConfirmResponse is the response after payment confirmation
type ConfirmResponse struct {
	Game Game `json:"game"`
}
