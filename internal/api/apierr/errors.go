package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lnpoker/lnpoker/internal/gateway"
	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeInvalidParameters  = "INVALID_PARAMETERS"
	CodeAlreadyJoined      = "ALREADY_JOINED"
	CodeGameFull           = "GAME_FULL"
	CodeGameNotJoinable    = "GAME_NOT_JOINABLE"
	CodeJoinExpired        = "JOIN_EXPIRED"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidParameters):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidParameters, "Invalid game parameters"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusBadRequest, APIError{CodeAlreadyJoined, "Already joined this game"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusBadRequest, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrGameNotJoinable):
		return &httpError{http.StatusBadRequest, APIError{CodeGameNotJoinable, "Game is not accepting players"}}
	case errors.Is(err, model.ErrJoinExpired), errors.Is(err, model.ErrReservationExpired):
		return &httpError{http.StatusBadRequest, APIError{CodeJoinExpired, "Join attempt expired before payment"}}
	case errors.Is(err, model.ErrReservationNotFound):
		return &httpError{http.StatusBadRequest, APIError{CodeJoinExpired, "Reservation not found"}}

	// Map gateway errors
	case errors.Is(err, gateway.ErrInvalidAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAmount, "Invalid invoice amount"}}
	case errors.Is(err, gateway.ErrUnavailable):
		return &httpError{http.StatusInternalServerError, APIError{CodeGatewayUnavailable, "Payment gateway unavailable"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}
	case errors.Is(err, auth.ErrInvalidEmail):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid email address"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
