package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnpoker/lnpoker/internal/api"
	"github.com/lnpoker/lnpoker/internal/api/response"
	"github.com/lnpoker/lnpoker/internal/factory"
	"github.com/lnpoker/lnpoker/internal/gateway"
	"github.com/lnpoker/lnpoker/internal/gateway/fakegateway"
	"github.com/lnpoker/lnpoker/internal/services/auth"
	"github.com/lnpoker/lnpoker/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
	gateway *fakegateway.Gateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		GameStore:           app.GameStore,
		AdmissionController: app.AdmissionController,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
		gateway: app.Gateway.(*fakegateway.Gateway),
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// registerPlayer creates an account and returns its session token
func (ts *testServer) registerPlayer(t *testing.T, email string) string {
	t.Helper()

	body := map[string]string{"email": email, "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

// createGame creates a game and returns its id
func (ts *testServer) createGame(t *testing.T, token string, playerLimit int) string {
	t.Helper()

	body := map[string]any{
		"buyIn":       1000,
		"smallBlind":  10,
		"bigBlind":    20,
		"playerLimit": playerLimit,
	}
	rr := ts.request(http.MethodPost, "/api/v1/game", body, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", registerResp.Player.Email)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Login
	loginBody := map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.registerPlayer(t, "alice@example.com")

	body := map[string]string{"email": "alice@example.com", "password": "other"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMAIL_EXISTS")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.registerPlayer(t, "alice@example.com")

	body := map[string]string{"email": "alice@example.com", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meResp))
	assert.Equal(t, "alice@example.com", meResp.Email)
}

func TestGameEndpointsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game", map[string]any{}, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	body := map[string]any{
		"buyIn":       1000,
		"smallBlind":  10,
		"bigBlind":    20,
		"playerLimit": 6,
	}
	rr := ts.request(http.MethodPost, "/api/v1/game", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, int64(0), resp.Pot)
	assert.Equal(t, int64(1000), resp.BuyIn)
	require.Len(t, resp.Players, 1)
	assert.Equal(t, "alice@example.com", resp.Players[0].Email)
}

func TestCreateGameInvalidParameters(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	body := map[string]any{
		"buyIn":       1000,
		"smallBlind":  10,
		"bigBlind":    20,
		"playerLimit": 1,
	}
	rr := ts.request(http.MethodPost, "/api/v1/game", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_PARAMETERS")
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	id1 := ts.createGame(t, token, 6)
	id2 := ts.createGame(t, token, 4)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var games []response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 2)
	assert.Equal(t, id1, games[0].ID)
	assert.Equal(t, id2, games[1].ID)
}

func TestJoinAndConfirmFlow(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerPlayer(t, "alice@example.com")
	bobToken := ts.registerPlayer(t, "bob@example.com")

	gameID := ts.createGame(t, aliceToken, 6)

	// Bob requests to join and gets an invoice
	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joinResp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joinResp))
	assert.NotEmpty(t, joinResp.Invoice)
	assert.NotEmpty(t, joinResp.ReservationToken)
	require.Len(t, joinResp.Game.Players, 1, "bob is not committed until payment confirms")

	// The invoice is the game's buy-in in millisatoshis
	issued := ts.gateway.IssuedInvoices()
	require.Len(t, issued, 1)
	assert.Equal(t, int64(1000*1000), issued[0].AmountMsats)

	// Payment confirms and the seat commits
	confirmBody := map[string]string{"reservation_token": joinResp.ReservationToken}
	rr = ts.request(http.MethodPost, "/api/v1/game/confirm", confirmBody, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var confirmResp response.ConfirmResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &confirmResp))
	require.Len(t, confirmResp.Game.Players, 2)
	assert.Equal(t, "bob@example.com", confirmResp.Game.Players[1].Email)
}

func TestJoinOwnGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")
	gameID := ts.createGame(t, token, 6)

	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_JOINED")
}

func TestJoinTwiceWhilePending(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerPlayer(t, "alice@example.com")
	bobToken := ts.registerPlayer(t, "bob@example.com")
	gameID := ts.createGame(t, aliceToken, 6)

	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_JOINED")
}

func TestJoinFullGame(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerPlayer(t, "alice@example.com")
	bobToken := ts.registerPlayer(t, "bob@example.com")
	carolToken := ts.registerPlayer(t, "carol@example.com")

	gameID := ts.createGame(t, aliceToken, 2)

	// Bob's pending hold fills the last seat
	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, carolToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_FULL")
}

func TestJoinUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": "NOPE"}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestJoinGatewayFailureFreesSeat(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerPlayer(t, "alice@example.com")
	bobToken := ts.registerPlayer(t, "bob@example.com")
	carolToken := ts.registerPlayer(t, "carol@example.com")

	gameID := ts.createGame(t, aliceToken, 2)

	ts.gateway.Fail(gateway.ErrUnavailable)
	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "GATEWAY_UNAVAILABLE")

	// Bob's failed join did not consume the last seat
	ts.gateway.Fail(nil)
	rr = ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, carolToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestConfirmUnknownToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerPlayer(t, "alice@example.com")

	body := map[string]string{"reservation_token": "rsv_bogus"}
	rr := ts.request(http.MethodPost, "/api/v1/game/confirm", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "JOIN_EXPIRED")
}

func TestCancelReservation(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.registerPlayer(t, "alice@example.com")
	bobToken := ts.registerPlayer(t, "bob@example.com")
	carolToken := ts.registerPlayer(t, "carol@example.com")

	gameID := ts.createGame(t, aliceToken, 2)

	rr := ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var joinResp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joinResp))

	// Bob abandons the join
	cancelBody := map[string]string{"reservation_token": joinResp.ReservationToken}
	rr = ts.request(http.MethodDelete, "/api/v1/game/reservation", cancelBody, bobToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// The seat is free again
	rr = ts.request(http.MethodPut, "/api/v1/game", map[string]string{"gameId": gameID}, carolToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}
