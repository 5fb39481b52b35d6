package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/blokus-go/internal/api/apierr"
	"github.com/mcoot/blokus-go/internal/api/middleware"
	"github.com/mcoot/blokus-go/internal/api/request"
	"github.com/mcoot/blokus-go/internal/api/response"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/auth"
	"github.com/mcoot/blokus-go/internal/services/bot"
	"github.com/mcoot/blokus-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	authService    auth.ServiceInterface
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	botService *bot.Service,
	authService auth.ServiceInterface,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		authService:    authService,
		logger:         logger.With(slog.String("component", "game-handler")),
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	seats := make([]model.Seat, len(req.Seats))
	for i, s := range req.Seats {
		seats[i] = model.Seat{Name: s.Name, Kind: model.PlayerKind(s.Kind)}
	}

	g, err := h.gameController.CreateGame(r.Context(), seats)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	tokens := make([]response.SeatToken, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Kind.IsBot() {
			continue
		}
		token, err := h.authService.IssueSeatToken(r.Context(), g.ID, p.ID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		tokens = append(tokens, response.SeatToken{PlayerID: int(p.ID), Token: token})
	}

	// A bot may hold the first seat
	actions := h.processBotActions(r.Context(), g.ID)
	if len(actions) > 0 {
		if g, err = h.gameController.GetGame(r.Context(), g.ID); err != nil {
			apierr.WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{
		Game:       response.GameFromModel(g),
		Tokens:     tokens,
		BotActions: response.BotActionsFromModel(actions),
	})
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.GameListResponse{Games: make([]string, len(ids))}
	for i, id := range ids {
		resp.Games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())

	var req request.AbandonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Reason == "" {
		req.Reason = "abandoned by a player"
	}

	if err := h.gameController.AbandonGame(r.Context(), seat.GameID, req.Reason); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if err := h.authService.RevokeGame(r.Context(), seat.GameID); err != nil {
		h.logger.Warn("failed to revoke seat tokens",
			slog.String("game_id", string(seat.GameID)),
			slog.String("error", err.Error()),
		)
	}

	response.NoContent(w)
}

// Validate handles POST /api/v1/games/{id}/validate
func (h *GameHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.gameController.ValidatePlacement(r.Context(), gameID(r), placementRequest(model.PlayerID(req.PlayerID), req.PlaceRequest))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ValidationFromModel(result))
}

// Place handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())

	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.gameController.PlacePiece(r.Context(), seat.GameID, placementRequest(seat.PlayerID, req))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.PlaceResponse{
		Placed:     outcome.Placed,
		Result:     response.ValidationFromModel(outcome.Result),
		Cells:      response.PointsFromModel(outcome.Cells),
		NextPlayer: int(outcome.NextPlayer),
		GameOver:   outcome.GameOver,
	}
	if !outcome.Placed {
		response.JSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	if !outcome.GameOver {
		resp.BotActions = response.BotActionsFromModel(h.processBotActions(r.Context(), seat.GameID))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Transform handles PUT /api/v1/games/{id}/pieces/{piece}
func (h *GameHandler) Transform(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())

	pieceID, err := strconv.Atoi(mux.Vars(r)["piece"])
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("piece must be a number"))
		return
	}

	var req request.TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	piece, err := h.gameController.SetPieceTransform(r.Context(), seat.GameID, seat.PlayerID, model.PieceID(pieceID), req.Rotation, req.Flipped)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HeldPieceFromModel(*piece))
}

// Skip handles POST /api/v1/games/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())
	h.endTurn(w, r, func(ctx context.Context) error {
		_, err := h.gameController.SkipTurn(ctx, seat.GameID, seat.PlayerID, nil)
		return err
	})
}

// Resign handles POST /api/v1/games/{id}/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())
	h.endTurn(w, r, func(ctx context.Context) error {
		_, err := h.gameController.ResignPlayer(ctx, seat.GameID, seat.PlayerID)
		return err
	})
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	seat := middleware.MustGetSeat(r.Context())
	h.endTurn(w, r, func(ctx context.Context) error {
		_, err := h.gameController.ResetGame(ctx, seat.GameID)
		return err
	})
}

// endTurn runs action, lets any bots that are now due take their turns and
// writes the resulting game
func (h *GameHandler) endTurn(w http.ResponseWriter, r *http.Request, action func(context.Context) error) {
	if err := action(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	id := gameID(r)
	actions := h.processBotActions(r.Context(), id)

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TurnResponse{
		Game:       response.GameFromModel(g),
		BotActions: response.BotActionsFromModel(actions),
	})
}

// Scores handles GET /api/v1/games/{id}/scores
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	scores, err := h.gameController.GetScores(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.ScoresResponse{
		State:  string(g.State),
		Scores: make([]response.Score, len(scores)),
	}
	for i, s := range scores {
		resp.Scores[i] = response.ScoreFromModel(s)
	}

	if g.State == model.GameStateFinished {
		summary, err := h.gameController.GetGameSummary(r.Context(), id)
		if err == nil && summary.Winner != model.NoPlayer {
			winner := int(summary.Winner)
			resp.Winner = &winner
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// RunBots handles POST /api/v1/games/{id}/bots/run
func (h *GameHandler) RunBots(w http.ResponseWriter, r *http.Request) {
	actions, err := h.botService.ProcessBotActions(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BotRunResponse{Actions: response.BotActionsFromModel(actions)})
}

// processBotActions runs pending bot turns. Failures are logged and do not
// fail the request that triggered them.
func (h *GameHandler) processBotActions(ctx context.Context, id model.GameID) []bot.BotAction {
	if h.botService == nil {
		return nil
	}

	actions, err := h.botService.ProcessBotActions(ctx, id)
	if err != nil {
		h.logger.Warn("bot actions failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	return actions
}

func placementRequest(player model.PlayerID, req request.PlaceRequest) model.PlacementRequest {
	return model.PlacementRequest{
		PlayerID: player,
		PieceID:  model.PieceID(req.PieceID),
		Anchor:   model.Position{X: req.X, Y: req.Y},
		Rotation: req.Rotation,
		Flipped:  req.Flipped,
	}
}
