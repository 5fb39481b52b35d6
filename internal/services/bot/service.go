package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/blokus-go/internal/dependencies/clock"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/game"
)

// MaxBotIterations is the default limit on bot turns per ProcessBotActions call
const MaxBotIterations = 1000

var (
	// ErrNoStrategy is returned when a seat's kind has no registered strategy
	ErrNoStrategy = errors.New("no strategy for player kind")
	// ErrBotLoopLimit is returned when bots are still to move after the turn limit
	ErrBotLoopLimit = errors.New("bot turn limit reached")
)

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionPlace        BotActionType = "place"
	ActionSkip         BotActionType = "skip"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during ProcessBotActions
type BotAction struct {
	Type     BotActionType    `json:"type"`
	PlayerID model.PlayerID   `json:"player_id"`
	Move     model.Move       `json:"move"`
	Cells    []model.Position `json:"cells,omitempty"`
}

// Service plays the turns of bot seats
type Service struct {
	gameController *game.Controller
	strategies     map[model.PlayerKind]Strategy
	clock          clock.Clock
	cfg            Config
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController *game.Controller,
	strategies map[model.PlayerKind]Strategy,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		clock:          clk,
		cfg:            cfg,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Decide waits out the think delay and then chooses a move for player. It
// returns the context's error if the context ends first. A false second
// result means the player has no legal placement.
func (s *Service) Decide(ctx context.Context, g *model.Game, player model.PlayerID) (model.Move, bool, error) {
	state, err := g.Player(player)
	if err != nil {
		return model.Move{}, false, err
	}
	strategy, err := s.strategyFor(state.Kind)
	if err != nil {
		return model.Move{}, false, err
	}

	select {
	case <-ctx.Done():
		return model.Move{}, false, ctx.Err()
	case <-s.clock.After(s.cfg.ThinkDelay):
	}

	move, ok := strategy.ChooseMove(g, player)
	if !ok {
		move, ok = turnPieces(strategy, g, player)
	}
	return move, ok, nil
}

// turnPieces asks strategy again with every held piece turned through the
// other seven orientations, one step at a time. Strategies that only look at
// a piece's current orientation rely on this to find the moves the turn
// order expects them to have. g is not modified.
func turnPieces(strategy Strategy, g *model.Game, player model.PlayerID) (model.Move, bool) {
	trial := g.Clone()
	state, err := trial.Player(player)
	if err != nil || len(state.Available) == 0 {
		return model.Move{}, false
	}

	for step := 1; step < 8; step++ {
		for i, piece := range state.Available {
			piece = piece.Rotate()
			if step == 4 {
				piece = piece.Flip()
			}
			state.Available[i] = piece
		}
		if move, ok := strategy.ChooseMove(trial, player); ok {
			return move, true
		}
	}
	return model.Move{}, false
}

// PlayTurn decides and commits the current bot's turn. The commit is pinned
// to the turn the decision was made for and fails with ErrStaleDecision if
// the game was reset or moved on in the meantime.
func (s *Service) PlayTurn(ctx context.Context, gameID model.GameID) (*BotAction, error) {
	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.IsOver() {
		return nil, model.ErrGameFinished
	}

	current := g.Current()
	if !current.Kind.IsBot() {
		return nil, model.ErrNotPlayerTurn
	}
	guard := model.GuardFor(g)

	move, ok, err := s.Decide(ctx, g, current.ID)
	if err != nil {
		return nil, err
	}

	if ok {
		outcome, err := s.gameController.PlacePiece(ctx, gameID, model.PlacementRequest{
			PlayerID: current.ID,
			PieceID:  move.PieceID,
			Anchor:   move.Anchor,
			Rotation: move.Rotation,
			Flipped:  move.Flipped,
			Guard:    guard,
		})
		if err != nil {
			return nil, err
		}
		if outcome.Placed {
			s.logger.Debug("bot placed piece",
				slog.String("game_id", string(gameID)),
				slog.Int("player_id", int(current.ID)),
				slog.Int("piece_id", int(move.PieceID)),
			)
			return &BotAction{Type: ActionPlace, PlayerID: current.ID, Move: outcome.Move, Cells: outcome.Cells}, nil
		}
		// Strategies only return legal moves, so this means the rules disagree with them
		s.logger.Error("bot chose an illegal move",
			slog.String("game_id", string(gameID)),
			slog.Int("player_id", int(current.ID)),
			slog.String("violation", string(outcome.Result.Violation)),
		)
	}

	if _, err := s.gameController.SkipTurn(ctx, gameID, current.ID, guard); err != nil {
		return nil, err
	}
	return &BotAction{Type: ActionSkip, PlayerID: current.ID, Move: model.Move{PlayerID: current.ID, Skipped: true}}, nil
}

// ProcessBotActions plays bot turns in a cascading loop until a human is to
// move or the game ends. It returns all actions taken so callers can report
// them, together with ErrBotLoopLimit if bots were still to move when the
// configured turn limit ran out.
func (s *Service) ProcessBotActions(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	var actions []BotAction

	limit := s.cfg.MaxIterations
	if limit <= 0 {
		limit = MaxBotIterations
	}

	for range limit {
		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		if g.IsOver() {
			if g.State == model.GameStateFinished && len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete, PlayerID: model.NoPlayer})
			}
			return actions, nil
		}

		if !g.Current().Kind.IsBot() {
			return actions, nil
		}

		action, err := s.PlayTurn(ctx, gameID)
		if errors.Is(err, model.ErrStaleDecision) {
			s.logger.Info("discarded stale bot decision", slog.String("game_id", string(gameID)))
			continue
		}
		if err != nil {
			return actions, fmt.Errorf("bot turn: %w", err)
		}
		actions = append(actions, *action)
	}

	s.logger.Warn("bot turn limit reached",
		slog.String("game_id", string(gameID)),
		slog.Int("limit", limit),
	)
	return actions, fmt.Errorf("game %s after %d turns: %w", gameID, limit, ErrBotLoopLimit)
}

func (s *Service) strategyFor(kind model.PlayerKind) (Strategy, error) {
	if st, ok := s.strategies[kind]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoStrategy, kind)
}
