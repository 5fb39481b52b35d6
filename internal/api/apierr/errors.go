package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/auth"
	"github.com/mcoot/blokus-go/internal/services/bot"
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
	CodeInvalidPiece       = "INVALID_PIECE"
	CodeInvalidPlayer      = "INVALID_PLAYER"
	CodeInvalidPlayerCount = "INVALID_PLAYER_COUNT"
	CodeInvalidPlayerKind  = "INVALID_PLAYER_KIND"
	CodeInvalidRotation    = "INVALID_ROTATION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeWrongSeat          = "WRONG_SEAT"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodePieceAlreadyUsed   = "PIECE_ALREADY_USED"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeSummaryNotFound    = "SUMMARY_NOT_FOUND"
	CodeGameFinished       = "GAME_FINISHED"
	CodeGameAbandoned      = "GAME_ABANDONED"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeStaleDecision      = "STALE_DECISION"
	CodeCellOccupied       = "CELL_OCCUPIED"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeNoStrategy         = "NO_STRATEGY"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeBotLoopLimit       = "BOT_LOOP_LIMIT"
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

// StatusOf returns the HTTP status an error is reported with
func StatusOf(err error) int {
	return toHTTPError(err).status
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
	case errors.Is(err, model.ErrSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSummaryNotFound, "Game summary not found"}}
	case errors.Is(err, model.ErrInvalidPieceID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPiece, "Unknown piece"}}
	case errors.Is(err, model.ErrInvalidPlayerID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Unknown player"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerCount, "A game needs 2 to 4 players"}}
	case errors.Is(err, model.ErrInvalidPlayerKind):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerKind, err.Error()}}
	case errors.Is(err, model.ErrInvalidRotation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRotation, "Rotation must be between 0 and 3"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrPieceAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodePieceAlreadyUsed, "Piece has already been placed"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrGameAbandoned):
		return &httpError{http.StatusConflict, APIError{CodeGameAbandoned, "Game has been abandoned"}}
	case errors.Is(err, model.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Game is not finished"}}
	case errors.Is(err, model.ErrStaleDecision):
		return &httpError{http.StatusConflict, APIError{CodeStaleDecision, "Game changed while the request was pending"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfRange, "Position is outside the board"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMalformed):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired seat token"}}

	// Map bot errors
	case errors.Is(err, bot.ErrNoStrategy):
		return &httpError{http.StatusInternalServerError, APIError{CodeNoStrategy, err.Error()}}
	case errors.Is(err, bot.ErrBotLoopLimit):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeBotLoopLimit, "Bots are still to move; run them again"}}

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

// NewWrongSeatError is returned when a token belongs to a different game
func NewWrongSeatError() error {
	return &httpError{http.StatusForbidden, APIError{CodeWrongSeat, "Token does not hold a seat in this game"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
