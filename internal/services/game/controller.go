package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/blokus-go/internal/dependencies/clock"
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/board"
	"github.com/mcoot/blokus-go/internal/services/catalog"
	"github.com/mcoot/blokus-go/internal/services/rules"
	"github.com/mcoot/blokus-go/internal/services/scoring"
	"github.com/mcoot/blokus-go/internal/storage"
)

const (
	// GameIDAlphabet is the character set for generated game ids
	GameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// GameIDLength is the length of generated game ids
	GameIDLength = 12
)

// Controller manages the game lifecycle and turn flow. Mutations are
// serialised; each one works on a copy of the stored game and saves it only
// once every step has succeeded.
type Controller struct {
	storage        storage.Storage
	catalog        *catalog.Catalog
	rules          *rules.Engine
	boardService   *board.Service
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	mu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []model.EventListener
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	catalog *catalog.Catalog,
	rules *rules.Engine,
	boardService *board.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		catalog:        catalog,
		rules:          rules,
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger.With(slog.String("component", "game-controller")),
	}
}

// Subscribe registers a listener that receives every event the controller
// emits. Listeners run synchronously after the mutation has been saved and
// may call back into the controller.
func (c *Controller) Subscribe(listener model.EventListener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Controller) publish(events []model.Event) {
	if len(events) == 0 {
		return
	}
	c.listenersMu.RLock()
	listeners := append([]model.EventListener(nil), c.listeners...)
	c.listenersMu.RUnlock()

	for _, event := range events {
		for _, l := range listeners {
			l(event)
		}
	}
}

func (c *Controller) event(t model.EventType, gameID model.GameID, player model.PlayerID, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: c.clock.Now(),
		GameID:    gameID,
		PlayerID:  player,
		Payload:   payload,
	}
}

// CreateGame starts a new game with one player per seat. Seats without a
// kind are human; seats without a name get a default one.
func (c *Controller) CreateGame(ctx context.Context, seats []model.Seat) (*model.Game, error) {
	var events []model.Event
	defer func() { c.publish(events) }()

	corners, err := model.StartCorners(len(seats))
	if err != nil {
		return nil, err
	}

	normalized := make([]model.Seat, len(seats))
	for i, seat := range seats {
		if seat.Kind == "" {
			seat.Kind = model.KindHuman
		}
		if _, err := model.ParsePlayerKind(string(seat.Kind)); err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		if seat.Name == "" {
			seat.Name = fmt.Sprintf("Player %d", i+1)
		}
		normalized[i] = seat
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:            model.GameID(c.random.String(GameIDLength, GameIDAlphabet)),
		State:         model.GameStateActive,
		Board:         c.boardService.CreateBoard(),
		Players:       c.newPlayers(normalized, corners),
		CurrentPlayer: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("player_count", len(seats)),
	)

	events = append(events, c.event(model.EventGameCreated, game.ID, model.NoPlayer, model.GameCreatedPayload{Seats: normalized}))
	return game, nil
}

func (c *Controller) newPlayers(seats []model.Seat, corners []model.Position) []model.PlayerState {
	players := make([]model.PlayerState, len(seats))
	for i, seat := range seats {
		players[i] = model.PlayerState{
			ID:          model.PlayerID(i),
			Name:        seat.Name,
			Kind:        seat.Kind,
			StartCorner: corners[i],
			Available:   c.catalog.NewPlayerSet(),
		}
	}
	return players
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the ids of all stored games
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// ValidatePlacement checks a placement request without applying it. The
// request does not need to come from the player whose turn it is.
func (c *Controller) ValidatePlacement(ctx context.Context, gameID model.GameID, req model.PlacementRequest) (model.ValidationResult, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.ValidationResult{}, err
	}
	return c.rules.ValidateRequest(game, req)
}

// PlacePiece validates and commits a placement for the player whose turn it
// is. Unknown ids and out-of-turn requests are errors; a placement that
// breaks a rule is reported in the outcome with Placed false and changes
// nothing.
func (c *Controller) PlacePiece(ctx context.Context, gameID model.GameID, req model.PlacementRequest) (*model.PlacementOutcome, error) {
	var events []model.Event
	defer func() { c.publish(events) }()
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadActive(ctx, gameID, req.Guard)
	if err != nil {
		return nil, err
	}
	if _, err := game.Player(req.PlayerID); err != nil {
		return nil, err
	}
	if game.CurrentPlayer != req.PlayerID {
		return nil, model.ErrNotPlayerTurn
	}

	result, err := c.rules.ValidateRequest(game, req)
	if err != nil {
		return nil, err
	}

	outcome := &model.PlacementOutcome{
		Move:       req.Move(),
		Result:     result,
		NextPlayer: game.CurrentPlayer,
	}
	if !result.Valid {
		c.logger.Debug("placement rejected",
			slog.String("game_id", string(gameID)),
			slog.Int("player_id", int(req.PlayerID)),
			slog.Int("piece_id", int(req.PieceID)),
			slog.String("violation", string(result.Violation)),
		)
		events = append(events, c.event(model.EventPlacementRejected, gameID, req.PlayerID, result))
		return outcome, nil
	}

	next := game.Clone()
	player, _ := next.Player(req.PlayerID)
	piece := player.Available[player.FindAvailable(req.PieceID)].WithTransform(req.Rotation, req.Flipped)
	cells := piece.OccupiedAt(req.Anchor)

	if err := c.boardService.Place(next.Board, cells, req.PlayerID); err != nil {
		return nil, err
	}
	if err := player.UsePiece(req.PieceID, req.Rotation, req.Flipped); err != nil {
		return nil, err
	}
	next.Moves = append(next.Moves, outcome.Move)

	events = append(events, c.event(model.EventPiecePlaced, gameID, req.PlayerID, outcome))
	events = append(events, c.advance(next)...)

	if err := c.save(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Info("piece placed",
		slog.String("game_id", string(gameID)),
		slog.Int("player_id", int(req.PlayerID)),
		slog.Int("piece_id", int(req.PieceID)),
	)

	outcome.Placed = true
	outcome.Cells = cells
	outcome.NextPlayer = next.CurrentPlayer
	outcome.GameOver = next.IsOver()
	return outcome, nil
}

// SkipTurn passes the current player's turn
func (c *Controller) SkipTurn(ctx context.Context, gameID model.GameID, playerID model.PlayerID, guard *model.Guard) (*model.Game, error) {
	var events []model.Event
	defer func() { c.publish(events) }()
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadActive(ctx, gameID, guard)
	if err != nil {
		return nil, err
	}
	if _, err := game.Player(playerID); err != nil {
		return nil, err
	}
	if game.CurrentPlayer != playerID {
		return nil, model.ErrNotPlayerTurn
	}

	next := game.Clone()
	next.Moves = append(next.Moves, model.Move{PlayerID: playerID, Skipped: true})
	events = append(events, c.event(model.EventTurnSkipped, gameID, playerID, model.TurnSkippedPayload{TurnNumber: next.TurnNumber}))
	events = append(events, c.advance(next)...)

	if err := c.save(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Info("turn skipped",
		slog.String("game_id", string(gameID)),
		slog.Int("player_id", int(playerID)),
	)
	return next, nil
}

// ResignPlayer removes a player from further play. Their placed pieces stay
// on the board and they are skipped from then on. Any player may resign at
// any time while the game is active.
func (c *Controller) ResignPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	var events []model.Event
	defer func() { c.publish(events) }()
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadActive(ctx, gameID, nil)
	if err != nil {
		return nil, err
	}
	next := game.Clone()
	player, err := next.Player(playerID)
	if err != nil {
		return nil, err
	}
	if player.Resigned {
		return game, nil
	}

	player.Resigned = true
	events = append(events, c.event(model.EventPlayerResigned, gameID, playerID, nil))

	if next.CurrentPlayer == playerID || !c.rules.CanPlayerContinue(next, next.CurrentPlayer) {
		events = append(events, c.advance(next)...)
	} else {
		// Invalidate decisions computed before the resignation
		next.TurnNumber++
	}

	if err := c.save(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Info("player resigned",
		slog.String("game_id", string(gameID)),
		slog.Int("player_id", int(playerID)),
	)
	return next, nil
}

// SetPieceTransform stores a new rotation and mirror state on one of a
// player's unplaced pieces
func (c *Controller) SetPieceTransform(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pieceID model.PieceID, rotation int, flipped bool) (*model.Piece, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rotation < 0 || rotation > 3 {
		return nil, model.ErrInvalidRotation
	}
	game, err := c.loadActive(ctx, gameID, nil)
	if err != nil {
		return nil, err
	}
	next := game.Clone()
	player, err := next.Player(playerID)
	if err != nil {
		return nil, err
	}
	idx := player.FindAvailable(pieceID)
	if idx == -1 {
		if player.HasUsed(pieceID) {
			return nil, model.ErrPieceAlreadyUsed
		}
		return nil, fmt.Errorf("piece %d: %w", pieceID, model.ErrInvalidPieceID)
	}

	player.Available[idx] = player.Available[idx].WithTransform(rotation, flipped)
	next.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, next); err != nil {
		return nil, err
	}

	piece := player.Available[idx]
	return &piece, nil
}

// ResetGame clears the board and returns every piece to its owner. The
// generation is bumped so decisions computed before the reset are refused.
func (c *Controller) ResetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	var events []model.Event
	defer func() { c.publish(events) }()
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.State == model.GameStateAbandoned {
		return nil, model.ErrGameAbandoned
	}

	seats := make([]model.Seat, len(game.Players))
	corners := make([]model.Position, len(game.Players))
	for i, p := range game.Players {
		seats[i] = model.Seat{Name: p.Name, Kind: p.Kind}
		corners[i] = p.StartCorner
	}

	next := game.Clone()
	c.boardService.Clear(next.Board)
	next.Players = c.newPlayers(seats, corners)
	next.State = model.GameStateActive
	next.CurrentPlayer = 0
	next.TurnNumber = 0
	next.Generation++
	next.Moves = nil
	next.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, next); err != nil {
		return nil, err
	}

	c.logger.Info("game reset",
		slog.String("game_id", string(gameID)),
		slog.Int("generation", next.Generation),
	)

	events = append(events, c.event(model.EventGameReset, gameID, model.NoPlayer, nil))
	return next, nil
}

// AbandonGame ends a game prematurely
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID, reason string) error {
	var events []model.Event
	defer func() { c.publish(events) }()
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.IsOver() {
		return nil // Already finished
	}

	next := game.Clone()
	next.State = model.GameStateAbandoned
	next.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, next); err != nil {
		return err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.String("reason", reason),
	)

	events = append(events, c.event(model.EventGameAbandoned, gameID, model.NoPlayer, model.GameAbandonedPayload{Reason: reason}))
	return nil
}

// DeleteGame removes a game from storage
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	return c.storage.DeleteGame(ctx, gameID)
}

// GetScores returns the current scores of every player, best first
func (c *Controller) GetScores(ctx context.Context, gameID model.GameID) ([]model.PlayerScore, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return c.scoringService.ScoreGame(game), nil
}

// CreateGameSummary creates a summary record for a finished game
func (c *Controller) CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.State != model.GameStateFinished {
		return nil, model.ErrGameNotFinished
	}
	return c.summarize(game), nil
}

// GetGameSummary returns the stored summary of a finished game
func (c *Controller) GetGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	return c.storage.GetGameSummary(ctx, gameID)
}

// CanPlayerContinue reports whether a player has any legal placement left
func (c *Controller) CanPlayerContinue(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (bool, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	if _, err := game.Player(playerID); err != nil {
		return false, err
	}
	return c.rules.CanPlayerContinue(game, playerID), nil
}

func (c *Controller) summarize(game *model.Game) *model.GameSummary {
	scores := c.scoringService.ScoreGame(game)
	finalScores := make(map[model.PlayerID]int, len(scores))
	for _, s := range scores {
		finalScores[s.PlayerID] = s.Total
	}

	return &model.GameSummary{
		ID:          game.ID,
		FinalScores: finalScores,
		Winner:      c.scoringService.DetermineWinner(scores),
		Moves:       len(game.Moves),
		CompletedAt: c.clock.Now(),
	}
}

// loadActive fetches a game that is still being played and checks the guard
func (c *Controller) loadActive(ctx context.Context, gameID model.GameID, guard *model.Guard) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	switch game.State {
	case model.GameStateFinished:
		return nil, model.ErrGameFinished
	case model.GameStateAbandoned:
		return nil, model.ErrGameAbandoned
	}
	if guard != nil && (guard.Generation != game.Generation || guard.TurnNumber != game.TurnNumber) {
		return nil, model.ErrStaleDecision
	}
	return game, nil
}

// advance hands the turn to the next player, in seat order, who can still
// place a piece. Players who cannot are recorded as skipped; resigned players
// are passed over silently. When nobody can continue the game finishes.
func (c *Controller) advance(game *model.Game) []model.Event {
	var events []model.Event
	game.TurnNumber++

	n := len(game.Players)
	for step := 1; step <= n; step++ {
		candidate := model.PlayerID((int(game.CurrentPlayer) + step) % n)
		if c.rules.CanPlayerContinue(game, candidate) {
			game.CurrentPlayer = candidate
			return events
		}
		if !game.Players[candidate].Resigned && step < n {
			game.Moves = append(game.Moves, model.Move{PlayerID: candidate, Skipped: true})
			events = append(events, c.event(model.EventTurnSkipped, game.ID, candidate,
				model.TurnSkippedPayload{TurnNumber: game.TurnNumber, Automatic: true}))
		}
	}

	game.State = model.GameStateFinished
	scores := c.scoringService.ScoreGame(game)
	winner := c.scoringService.DetermineWinner(scores)
	events = append(events, c.event(model.EventGameOver, game.ID, model.NoPlayer,
		model.GameOverPayload{Scores: scores, Winner: winner}))
	return events
}

// save stores the game and, once it has finished, its summary
func (c *Controller) save(ctx context.Context, game *model.Game) error {
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	if game.State != model.GameStateFinished {
		return nil
	}

	summary := c.summarize(game)
	if err := c.storage.SaveGameSummary(ctx, summary); err != nil {
		return err
	}
	c.logger.Info("game completed",
		slog.String("game_id", string(game.ID)),
		slog.Int("winner", int(summary.Winner)),
		slog.Int("moves", summary.Moves),
	)
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Subscribe(listener model.EventListener)
	CreateGame(ctx context.Context, seats []model.Seat) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.GameID, error)
	ValidatePlacement(ctx context.Context, gameID model.GameID, req model.PlacementRequest) (model.ValidationResult, error)
	PlacePiece(ctx context.Context, gameID model.GameID, req model.PlacementRequest) (*model.PlacementOutcome, error)
	SkipTurn(ctx context.Context, gameID model.GameID, playerID model.PlayerID, guard *model.Guard) (*model.Game, error)
	ResignPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	SetPieceTransform(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pieceID model.PieceID, rotation int, flipped bool) (*model.Piece, error)
	ResetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AbandonGame(ctx context.Context, gameID model.GameID, reason string) error
	DeleteGame(ctx context.Context, gameID model.GameID) error
	GetScores(ctx context.Context, gameID model.GameID) ([]model.PlayerScore, error)
	CreateGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
	GetGameSummary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error)
	CanPlayerContinue(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (bool, error)
}

var _ ControllerInterface = (*Controller)(nil)
