package response

import (
	"time"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/bot"
)

// Point is a cell coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointsFromModel converts positions to response points
func PointsFromModel(cells []model.Position) []Point {
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: c.X, Y: c.Y}
	}
	return out
}

// Piece represents a catalog piece
type Piece struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Size  int     `json:"size"`
	Cells []Point `json:"cells"`
}

// PieceFromModel converts a piece definition
func PieceFromModel(def model.PieceDefinition) Piece {
	return Piece{
		ID:    int(def.ID),
		Name:  def.Name,
		Size:  def.Size,
		Cells: PointsFromModel(def.Cells),
	}
}

// HeldPiece is an unplaced piece in the orientation its owner last chose
type HeldPiece struct {
	ID       int     `json:"id"`
	Rotation int     `json:"rotation"`
	Flipped  bool    `json:"flipped"`
	Cells    []Point `json:"cells"`
}

// HeldPieceFromModel converts a player's piece
func HeldPieceFromModel(p model.Piece) HeldPiece {
	return HeldPiece{
		ID:       int(p.ID()),
		Rotation: p.Rotation,
		Flipped:  p.Flipped,
		Cells:    PointsFromModel(p.Cells()),
	}
}

// PiecesResponse lists the catalog
type PiecesResponse struct {
	Pieces     []Piece `json:"pieces"`
	TotalCells int     `json:"total_cells"`
}

// Player represents a player's state in a game
type Player struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	StartCorner    Point  `json:"start_corner"`
	Available      []int  `json:"available"`
	Used           []int  `json:"used"`
	RemainingCells int    `json:"remaining_cells"`
	Resigned       bool   `json:"resigned"`
}

// PlayerFromModel converts a model.PlayerState
func PlayerFromModel(p *model.PlayerState) Player {
	resp := Player{
		ID:             int(p.ID),
		Name:           p.Name,
		Kind:           string(p.Kind),
		StartCorner:    Point{X: p.StartCorner.X, Y: p.StartCorner.Y},
		Available:      make([]int, len(p.Available)),
		Used:           make([]int, len(p.Used)),
		RemainingCells: p.RemainingCells(),
		Resigned:       p.Resigned,
	}
	for i, piece := range p.Available {
		resp.Available[i] = int(piece.ID())
	}
	for i, piece := range p.Used {
		resp.Used[i] = int(piece.ID())
	}
	return resp
}

// Move represents a committed move
type Move struct {
	PlayerID int   `json:"player_id"`
	PieceID  int   `json:"piece_id,omitempty"`
	Rotation int   `json:"rotation"`
	Flipped  bool  `json:"flipped"`
	Anchor   Point `json:"anchor"`
	Skipped  bool  `json:"skipped,omitempty"`
}

// MoveFromModel converts a model.Move
func MoveFromModel(m model.Move) Move {
	return Move{
		PlayerID: int(m.PlayerID),
		PieceID:  int(m.PieceID),
		Rotation: m.Rotation,
		Flipped:  m.Flipped,
		Anchor:   Point{X: m.Anchor.X, Y: m.Anchor.Y},
		Skipped:  m.Skipped,
	}
}

// Game represents the full state of a game. Board rows hold the owning
// player id of each cell, or -1 when empty.
type Game struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	CurrentPlayer int       `json:"current_player"`
	TurnNumber    int       `json:"turn_number"`
	Generation    int       `json:"generation"`
	Players       []Player  `json:"players"`
	Board         [][]int   `json:"board"`
	Moves         []Move    `json:"moves"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	resp := Game{
		ID:            string(g.ID),
		State:         string(g.State),
		CurrentPlayer: int(g.CurrentPlayer),
		TurnNumber:    g.TurnNumber,
		Generation:    g.Generation,
		Players:       make([]Player, len(g.Players)),
		Board:         make([][]int, model.BoardSize),
		Moves:         make([]Move, len(g.Moves)),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	for i := range g.Players {
		resp.Players[i] = PlayerFromModel(&g.Players[i])
	}
	for y := range model.BoardSize {
		row := make([]int, model.BoardSize)
		for x := range model.BoardSize {
			owner, _ := g.Board.OwnerAt(model.Position{X: x, Y: y})
			row[x] = int(owner)
		}
		resp.Board[y] = row
	}
	for i, m := range g.Moves {
		resp.Moves[i] = MoveFromModel(m)
	}
	return resp
}

// SeatToken is the bearer token controlling a human seat
type SeatToken struct {
	PlayerID int    `json:"player_id"`
	Token    string `json:"token"`
}

// CreateGameResponse is the response for creating a game
type CreateGameResponse struct {
	Game       Game        `json:"game"`
	Tokens     []SeatToken `json:"tokens"`
	BotActions []BotAction `json:"bot_actions,omitempty"`
}

// GameListResponse lists stored game ids
type GameListResponse struct {
	Games []string `json:"games"`
}

// Validation is the result of checking a placement
type Validation struct {
	Valid       bool    `json:"valid"`
	Violation   string  `json:"violation,omitempty"`
	Description string  `json:"description,omitempty"`
	Conflicts   []Point `json:"conflicts,omitempty"`
}

// ValidationFromModel converts a model.ValidationResult
func ValidationFromModel(r model.ValidationResult) Validation {
	v := Validation{Valid: r.Valid}
	if !r.Valid {
		v.Violation = string(r.Violation)
		v.Description = model.RuleDescription(r.Violation)
		v.Conflicts = PointsFromModel(r.Conflicts)
	}
	return v
}

// BotAction is one action a bot took after a request
type BotAction struct {
	Type     string  `json:"type"`
	PlayerID int     `json:"player_id"`
	Move     *Move   `json:"move,omitempty"`
	Cells    []Point `json:"cells,omitempty"`
}

// BotActionsFromModel converts bot actions
func BotActionsFromModel(actions []bot.BotAction) []BotAction {
	out := make([]BotAction, len(actions))
	for i, a := range actions {
		out[i] = BotAction{Type: string(a.Type), PlayerID: int(a.PlayerID)}
		if a.Type != bot.ActionGameComplete {
			m := MoveFromModel(a.Move)
			out[i].Move = &m
			out[i].Cells = PointsFromModel(a.Cells)
		}
	}
	return out
}

// PlaceResponse is the response for a placement attempt
type PlaceResponse struct {
	Placed     bool        `json:"placed"`
	Result     Validation  `json:"result"`
	Cells      []Point     `json:"cells,omitempty"`
	NextPlayer int         `json:"next_player"`
	GameOver   bool        `json:"game_over"`
	BotActions []BotAction `json:"bot_actions,omitempty"`
}

// TurnResponse is the response for actions that end a turn without placing
type TurnResponse struct {
	Game       Game        `json:"game"`
	BotActions []BotAction `json:"bot_actions,omitempty"`
}

// Score is one player's score breakdown
type Score struct {
	PlayerID       int `json:"player_id"`
	PlacedCells    int `json:"placed_cells"`
	RemainingCells int `json:"remaining_cells"`
	Bonus          int `json:"bonus"`
	Total          int `json:"total"`
}

// ScoreFromModel converts a model.PlayerScore
func ScoreFromModel(s model.PlayerScore) Score {
	return Score{
		PlayerID:       int(s.PlayerID),
		PlacedCells:    s.PlacedCells,
		RemainingCells: s.RemainingCells,
		Bonus:          s.Bonus,
		Total:          s.Total,
	}
}

// ScoresResponse is the response for the scores endpoint. Winner is only
// set once the game has finished without a tie.
type ScoresResponse struct {
	State  string  `json:"state"`
	Scores []Score `json:"scores"`
	Winner *int    `json:"winner,omitempty"`
}

// BotRunResponse is the response for running pending bot turns
type BotRunResponse struct {
	Actions []BotAction `json:"actions"`
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
