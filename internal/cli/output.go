package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGameList(v)
	case JoinResult:
		o.printJoinResult(v)
	case ConfirmResult:
		o.printConfirmResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Game response type
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

// JoinResult response type
type JoinResult struct {
	Invoice          string    `json:"invoice"`
	InvoiceID        string    `json:"invoice_id"`
	ReservationToken string    `json:"reservation_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	Game             Game      `json:"game"`
}

// ConfirmResult response type
type ConfirmResult struct {
	Game Game `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Email, p.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Buy-in: %d sats\n", g.BuyIn)
	fmt.Printf("Blinds: %d/%d\n", g.SmallBlind, g.BigBlind)
	fmt.Printf("Pot: %d sats\n", g.Pot)
	fmt.Printf("Seats: %d/%d\n", len(g.Players), g.PlayerLimit)
	for _, p := range g.Players {
		fmt.Printf("  - %s (%s)\n", p.Email, p.ID)
	}
}

func (o *Output) printGameList(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range games {
		players := make([]string, 0, len(g.Players))
		for _, p := range g.Players {
			players = append(players, p.Email)
		}
		fmt.Printf("%s  %s  %d/%d sats  seats %d/%d  [%s]\n",
			g.ID, g.Status, g.SmallBlind, g.BigBlind,
			len(g.Players), g.PlayerLimit, strings.Join(players, ", "))
	}
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Reservation: %s\n", j.ReservationToken)
	fmt.Printf("Expires: %s\n", j.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Invoice ID: %s\n", j.InvoiceID)
	fmt.Printf("Pay this invoice, then run 'lnpoker game confirm %s':\n", j.ReservationToken)
	fmt.Printf("  %s\n", j.Invoice)
}

func (o *Output) printConfirmResult(c ConfirmResult) {
	fmt.Println("Seat confirmed")
	o.printGame(c.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
