package bot

import (
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/rules"
)

// RandomStrategy picks uniformly among the legal (piece, anchor) pairs,
// trying each piece only in the transform it currently holds
type RandomStrategy struct {
	rules  *rules.Engine
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(engine *rules.Engine, rnd random.Random) *RandomStrategy {
	return &RandomStrategy{rules: engine, random: rnd}
}

// ChooseMove returns a random legal placement, or false if there is none
func (s *RandomStrategy) ChooseMove(game *model.Game, player model.PlayerID) (model.Move, bool) {
	state, err := game.Player(player)
	if err != nil {
		return model.Move{}, false
	}

	var candidates []model.Move
	for placement := range s.rules.AllPlacements(game.Board, state, false) {
		candidates = append(candidates, placement.Move(player))
	}
	if len(candidates) == 0 {
		return model.Move{}, false
	}
	return candidates[s.random.Intn(len(candidates))], true
}
