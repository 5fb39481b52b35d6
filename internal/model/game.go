package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateActive    GameState = "active"    // Players are taking turns
	GameStateFinished  GameState = "finished"  // No player can continue
	GameStateAbandoned GameState = "abandoned" // Game was cancelled
)

// Game is a single Blokus game
type Game struct {
	ID      GameID        `json:"id"`
	State   GameState     `json:"state"`
	Board   *Board        `json:"board"`
	Players []PlayerState `json:"players"`

	// Turn management
	CurrentPlayer PlayerID `json:"current_player"`
	TurnNumber    int      `json:"turn_number"`
	// Generation increments on every reset so pending decisions can detect it
	Generation int    `json:"generation"`
	Moves      []Move `json:"moves"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Player returns the state for a player id
func (g *Game) Player(id PlayerID) (*PlayerState, error) {
	if id < 0 || int(id) >= len(g.Players) {
		return nil, ErrInvalidPlayerID
	}
	return &g.Players[id], nil
}

// Current returns the state of the player whose turn it is
func (g *Game) Current() *PlayerState {
	if len(g.Players) == 0 {
		return nil
	}
	return &g.Players[g.CurrentPlayer]
}

// IsOver returns true once the game is finished or abandoned
func (g *Game) IsOver() bool {
	return g.State == GameStateFinished || g.State == GameStateAbandoned
}

// Clone returns a deep copy of the game, safe to probe without affecting the original
func (g *Game) Clone() *Game {
	clone := *g
	if g.Board != nil {
		clone.Board = g.Board.Clone()
	}
	clone.Players = make([]PlayerState, len(g.Players))
	for i := range g.Players {
		clone.Players[i] = g.Players[i].Clone()
	}
	clone.Moves = append([]Move(nil), g.Moves...)
	return &clone
}

// Move is a committed or proposed placement. A skipped turn is recorded with
// Skipped set and no piece.
type Move struct {
	PlayerID PlayerID `json:"player_id"`
	PieceID  PieceID  `json:"piece_id,omitempty"`
	Rotation int      `json:"rotation"`
	Flipped  bool     `json:"flipped"`
	Anchor   Position `json:"anchor"`
	Skipped  bool     `json:"skipped,omitempty"`
}

// Guard pins a request to the game generation and turn it was computed for
type Guard struct {
	Generation int
	TurnNumber int
}

// GuardFor returns the guard matching the game's current turn
func GuardFor(g *Game) *Guard {
	return &Guard{Generation: g.Generation, TurnNumber: g.TurnNumber}
}

// PlacementRequest asks to place a piece for a player
type PlacementRequest struct {
	PlayerID PlayerID
	PieceID  PieceID
	Anchor   Position
	Rotation int
	Flipped  bool
	// Guard is optional; when set the request fails with ErrStaleDecision
	// if the game has moved on
	Guard *Guard
}

// Move converts the request into a Move
func (r PlacementRequest) Move() Move {
	return Move{
		PlayerID: r.PlayerID,
		PieceID:  r.PieceID,
		Rotation: r.Rotation,
		Flipped:  r.Flipped,
		Anchor:   r.Anchor,
	}
}

// PlacementOutcome reports what happened to a placement request
type PlacementOutcome struct {
	Move       Move             `json:"move"`
	Result     ValidationResult `json:"result"`
	Placed     bool             `json:"placed"`
	Cells      []Position       `json:"cells,omitempty"`
	NextPlayer PlayerID         `json:"next_player"`
	GameOver   bool             `json:"game_over"`
}

// PlayerScore is the score breakdown for one player
type PlayerScore struct {
	PlayerID       PlayerID `json:"player_id"`
	PlacedCells    int      `json:"placed_cells"`
	RemainingCells int      `json:"remaining_cells"`
	Bonus          int      `json:"bonus"`
	Total          int      `json:"total"`
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          GameID           `json:"id"`
	FinalScores map[PlayerID]int `json:"final_scores"`
	Winner      PlayerID         `json:"winner"` // NoPlayer if tie
	Moves       int              `json:"moves"`
	CompletedAt time.Time        `json:"completed_at"`
}
