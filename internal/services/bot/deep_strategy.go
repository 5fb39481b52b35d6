package bot

import (
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/rules"
)

// DeepStrategy is the strongest bot tier. It shares the greedy evaluation,
// configured with less jitter, and is the seat kind to extend when moves
// should be weighed against the opponents' best replies.
type DeepStrategy struct {
	greedy *GreedyStrategy
}

// NewDeepStrategy creates a new DeepStrategy
func NewDeepStrategy(engine *rules.Engine, rnd random.Random, weights Weights) *DeepStrategy {
	return &DeepStrategy{greedy: NewGreedyStrategy(engine, rnd, weights)}
}

// ChooseMove returns the best scoring legal placement, or false if there is none
func (s *DeepStrategy) ChooseMove(game *model.Game, player model.PlayerID) (model.Move, bool) {
	return s.greedy.ChooseMove(game, player)
}
