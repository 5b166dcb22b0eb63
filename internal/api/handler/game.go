package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnpoker/lnpoker/internal/api/apierr"
	"github.com/lnpoker/lnpoker/internal/api/middleware"
	"github.com/lnpoker/lnpoker/internal/api/request"
	"github.com/lnpoker/lnpoker/internal/api/response"
	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/services/admission"
	"github.com/lnpoker/lnpoker/internal/services/gamestore"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	games     *gamestore.Controller
	admission *admission.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(games *gamestore.Controller, admission *admission.Controller) *GameHandler {
	return &GameHandler{
		games:     games,
		admission: admission,
	}
}

// List handles GET /api/v1/game
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Create handles POST /api/v1/game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	params := model.GameParams{
		BuyIn:       req.BuyIn,
		SmallBlind:  req.SmallBlind,
		BigBlind:    req.BigBlind,
		PlayerLimit: req.PlayerLimit,
	}
	creator := model.PlayerRef{ID: player.ID, Email: player.Email}

	game, err := h.games.CreateGame(r.Context(), params, creator)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Join handles PUT /api/v1/game
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("gameId is required"))
		return
	}

	ticket, err := h.admission.JoinGame(r.Context(),
		model.GameID(req.GameID),
		model.PlayerRef{ID: player.ID, Email: player.Email},
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponseFromTicket(ticket))
}

// ConfirmPayment handles POST /api/v1/game/confirm
func (h *GameHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ReservationToken == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("reservation_token is required"))
		return
	}

	game, err := h.admission.ConfirmPayment(r.Context(), model.ReservationToken(req.ReservationToken))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfirmResponse{Game: response.GameFromModel(game)})
}

// CancelJoin handles DELETE /api/v1/game/reservation
func (h *GameHandler) CancelJoin(w http.ResponseWriter, r *http.Request) {
	var req request.CancelJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ReservationToken == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("reservation_token is required"))
		return
	}

	if err := h.admission.CancelJoin(r.Context(), model.ReservationToken(req.ReservationToken)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
