package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game.
// Amounts are in satoshis.
type CreateGameRequest struct {
	BuyIn       int64 `json:"buyIn"`
	SmallBlind  int64 `json:"smallBlind"`
	BigBlind    int64 `json:"bigBlind"`
	PlayerLimit int   `json:"playerLimit"`
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	GameID string `json:"gameId"`
}

// ConfirmPaymentRequest is the request body for confirming payment
type ConfirmPaymentRequest struct {
	ReservationToken string `json:"reservation_token"`
}

// CancelJoinRequest is the request body for abandoning a pending join
type CancelJoinRequest struct {
	ReservationToken string `json:"reservation_token"`
}
