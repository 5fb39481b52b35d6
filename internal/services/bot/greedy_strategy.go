package bot

import (
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/geometry"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/rules"
)

// boardCenter is the midpoint of the board in cell coordinates
const boardCenter = (model.BoardSize - 1) / 2.0

// Weights tunes the greedy evaluation
type Weights struct {
	// SizeWeight is multiplied by the piece's cell count
	SizeWeight float64
	// CenterWeight rewards pieces close to the middle of the board
	CenterWeight float64
	// CenterRadius is the distance at which the centre term reaches zero
	CenterRadius float64
	// ExpansionWeight is multiplied by the number of new free corner contacts
	ExpansionWeight float64
	// BlockWeight is multiplied by the number of opponent cells touched
	BlockWeight float64
	// CornerBonus is added when a cell lands on a board corner
	CornerBonus float64
	// EdgePenalty is subtracted when a cell lands on the board edge
	EdgePenalty float64
	// RandomnessFactor bounds the jitter added to every score
	RandomnessFactor float64
}

// GreedyStrategy scores every legal placement in every transform and plays
// the best one
type GreedyStrategy struct {
	rules   *rules.Engine
	random  random.Random
	weights Weights
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(engine *rules.Engine, rnd random.Random, weights Weights) *GreedyStrategy {
	return &GreedyStrategy{rules: engine, random: rnd, weights: weights}
}

type memoKey struct {
	piece  model.PieceID
	anchor model.Position
}

// ChooseMove returns the highest scoring legal placement, or false if there
// is none. Ties go to the candidate found first. Scores are cached per piece
// and anchor for the duration of one call, so later transforms at the same
// anchor reuse the first score.
func (s *GreedyStrategy) ChooseMove(game *model.Game, player model.PlayerID) (model.Move, bool) {
	state, err := game.Player(player)
	if err != nil {
		return model.Move{}, false
	}

	memo := make(map[memoKey]float64)
	var best model.Move
	bestScore := 0.0
	found := false

	for placement := range s.rules.AllPlacements(game.Board, state, true) {
		key := memoKey{piece: placement.Piece.ID(), anchor: placement.Anchor}
		score, ok := memo[key]
		if !ok {
			score = s.Score(game.Board, player, placement.Cells)
			memo[key] = score
		}
		if !found || score > bestScore {
			best = placement.Move(player)
			bestScore = score
			found = true
		}
	}
	return best, found
}

// Score evaluates placing cells for player on board
func (s *GreedyStrategy) Score(board *model.Board, player model.PlayerID, cells []model.Position) float64 {
	w := s.weights
	score := w.SizeWeight * float64(len(cells))
	score += w.CenterWeight * (w.CenterRadius - meanCenterDistance(cells))
	score += w.ExpansionWeight * float64(newCornerContacts(board, cells))
	score += w.BlockWeight * float64(adjacentOpponentCells(board, player, cells))

	for _, c := range cells {
		if model.IsBoardCorner(c) {
			score += w.CornerBonus
			break
		}
	}
	for _, c := range cells {
		if model.IsBoardEdge(c) {
			score -= w.EdgePenalty
			break
		}
	}

	return score + (s.random.Float64()*2-1)*w.RandomnessFactor
}

func meanCenterDistance(cells []model.Position) float64 {
	if len(cells) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range cells {
		total += abs(float64(c.X)-boardCenter) + abs(float64(c.Y)-boardCenter)
	}
	return total / float64(len(cells))
}

// newCornerContacts counts the empty board cells that touch the candidate
// diagonally but share no edge with it
func newCornerContacts(board *model.Board, cells []model.Position) int {
	own := make(map[model.Position]bool, len(cells))
	for _, c := range cells {
		own[c] = true
	}
	edge := make(map[model.Position]bool)
	for _, c := range cells {
		for _, d := range geometry.Orthogonal {
			edge[c.Add(d)] = true
		}
	}

	seen := make(map[model.Position]bool)
	for _, c := range cells {
		for _, d := range geometry.Diagonal {
			p := c.Add(d)
			if own[p] || edge[p] || seen[p] || !board.InBounds(p) || !board.IsEmpty(p) {
				continue
			}
			seen[p] = true
		}
	}
	return len(seen)
}

// adjacentOpponentCells counts the distinct opponent cells sharing an edge with the candidate
func adjacentOpponentCells(board *model.Board, player model.PlayerID, cells []model.Position) int {
	seen := make(map[model.Position]bool)
	for _, c := range cells {
		for _, d := range geometry.Orthogonal {
			p := c.Add(d)
			if seen[p] {
				continue
			}
			owner, err := board.OwnerAt(p)
			if err != nil || owner == model.NoPlayer || owner == player {
				continue
			}
			seen[p] = true
		}
	}
	return len(seen)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
