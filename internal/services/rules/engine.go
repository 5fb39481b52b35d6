package rules

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/mcoot/blokus-go/internal/geometry"
	"github.com/mcoot/blokus-go/internal/model"
)

// Placement is a legal or candidate placement of one piece transform
type Placement struct {
	Piece  model.Piece // carries the rotation and mirror used
	Anchor model.Position
	Cells  []model.Position
}

// Move converts the placement into a Move for player
func (p Placement) Move(player model.PlayerID) model.Move {
	return model.Move{
		PlayerID: player,
		PieceID:  p.Piece.ID(),
		Rotation: p.Piece.Rotation,
		Flipped:  p.Piece.Flipped,
		Anchor:   p.Anchor,
	}
}

// Engine decides whether placements are legal
type Engine struct {
	logger *slog.Logger
}

// New creates a new rule Engine
func New(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger.With(slog.String("component", "rule-engine")),
	}
}

// ValidateCells runs the placement pipeline for absolute cells on behalf of
// player. Checks run in order and stop at the first failure: bounds,
// overlap, first placement corner, then contact with the player's own cells.
// When a candidate both lacks corner contact and shares an edge with the
// player's cells, the edge contact is reported.
func (e *Engine) ValidateCells(board *model.Board, player *model.PlayerState, cells []model.Position) model.ValidationResult {
	var outside []model.Position
	for _, c := range cells {
		if !board.InBounds(c) {
			outside = append(outside, c)
		}
	}
	if len(outside) > 0 {
		return model.Rejected(model.RuleOutOfBounds, outside...)
	}

	var occupied []model.Position
	for _, c := range cells {
		if !board.IsEmpty(c) {
			occupied = append(occupied, c)
		}
	}
	if len(occupied) > 0 {
		return model.Rejected(model.RuleOverlap, occupied...)
	}

	if player.IsFirstMove() {
		for _, c := range cells {
			if c == player.StartCorner {
				return model.Accepted()
			}
		}
		return model.Rejected(model.RuleFirstPlacementCorner)
	}

	cornerContact := false
	var edgeConflicts []model.Position
	for _, c := range cells {
		if !cornerContact {
			for _, d := range geometry.Diagonal {
				if board.IsOwnedBy(c.Add(d), player.ID) {
					cornerContact = true
					break
				}
			}
		}
		for _, d := range geometry.Orthogonal {
			if board.IsOwnedBy(c.Add(d), player.ID) {
				edgeConflicts = append(edgeConflicts, c)
				break
			}
		}
	}
	if len(edgeConflicts) > 0 {
		return model.Rejected(model.RuleEdgeContact, edgeConflicts...)
	}
	if !cornerContact {
		return model.Rejected(model.RuleCornerContact)
	}
	return model.Accepted()
}

// Validate checks a piece, with its current transform, anchored at anchor
func (e *Engine) Validate(board *model.Board, player *model.PlayerState, piece model.Piece, anchor model.Position) model.ValidationResult {
	return e.ValidateCells(board, player, piece.OccupiedAt(anchor))
}

// ValidateRequest resolves the player and piece of a request and validates it.
// Unknown identifiers and already placed pieces are reported as errors.
func (e *Engine) ValidateRequest(game *model.Game, req model.PlacementRequest) (model.ValidationResult, error) {
	player, err := game.Player(req.PlayerID)
	if err != nil {
		return model.ValidationResult{}, err
	}
	if req.Rotation < 0 || req.Rotation > 3 {
		return model.ValidationResult{}, model.ErrInvalidRotation
	}
	idx := player.FindAvailable(req.PieceID)
	if idx == -1 {
		if player.HasUsed(req.PieceID) {
			return model.ValidationResult{}, model.ErrPieceAlreadyUsed
		}
		return model.ValidationResult{}, fmt.Errorf("piece %d: %w", req.PieceID, model.ErrInvalidPieceID)
	}
	piece := player.Available[idx].WithTransform(req.Rotation, req.Flipped)
	return e.Validate(game.Board, player, piece, req.Anchor), nil
}

// Placements yields every legal placement of piece for player. With
// allTransforms false only the piece's current transform is tried; otherwise
// all four rotations of both mirror states are tried in flip-major order.
// Anchors are visited row by row. The piece argument is never modified.
func (e *Engine) Placements(board *model.Board, player *model.PlayerState, piece model.Piece, allTransforms bool) iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		for _, candidate := range transformsOf(piece, allTransforms) {
			cells := candidate.Cells()
			width, height := geometry.Bounds(cells)
			// Anchors whose footprint leaves the board can never pass the bounds check
			for y := 0; y+height <= model.BoardSize; y++ {
				for x := 0; x+width <= model.BoardSize; x++ {
					anchor := model.Position{X: x, Y: y}
					occupied := geometry.Occupied(cells, anchor)
					if !e.ValidateCells(board, player, occupied).Valid {
						continue
					}
					if !yield(Placement{Piece: candidate, Anchor: anchor, Cells: occupied}) {
						return
					}
				}
			}
		}
	}
}

// AllPlacements yields the legal placements of every unplaced piece of player
func (e *Engine) AllPlacements(board *model.Board, player *model.PlayerState, allTransforms bool) iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		for _, piece := range player.Available {
			for placement := range e.Placements(board, player, piece, allTransforms) {
				if !yield(placement) {
					return
				}
			}
		}
	}
}

// CanPlayerContinue returns true if the player has at least one legal
// placement of any unplaced piece in any rotation or mirror state.
// Probing works on copies and leaves the player's pieces untouched.
func (e *Engine) CanPlayerContinue(game *model.Game, playerID model.PlayerID) bool {
	player, err := game.Player(playerID)
	if err != nil || player.Resigned || len(player.Available) == 0 {
		return false
	}
	for range e.AllPlacements(game.Board, player, true) {
		return true
	}
	return false
}

// IsGameOver returns true if no configured player can continue
func (e *Engine) IsGameOver(game *model.Game) bool {
	for _, p := range game.Players {
		if e.CanPlayerContinue(game, p.ID) {
			return false
		}
	}
	e.logger.Debug("no player can continue", slog.String("game_id", string(game.ID)))
	return true
}

// transformsOf returns the piece variants to probe, as independent copies
func transformsOf(piece model.Piece, all bool) []model.Piece {
	if !all {
		return []model.Piece{piece}
	}
	out := make([]model.Piece, 0, 8)
	for _, flipped := range []bool{false, true} {
		for rotation := range 4 {
			out = append(out, piece.WithTransform(rotation, flipped))
		}
	}
	return out
}
