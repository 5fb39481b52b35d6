package bot

import (
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/rules"
)

// Strategy defines how a bot chooses its next placement
type Strategy interface {
	// ChooseMove selects a legal move for player. The second result is false
	// when the player has no legal placement and must skip.
	ChooseMove(game *model.Game, player model.PlayerID) (model.Move, bool)
}

// DefaultStrategies returns one strategy per bot kind
func DefaultStrategies(engine *rules.Engine, rnd random.Random, cfg Config) map[model.PlayerKind]Strategy {
	return map[model.PlayerKind]Strategy{
		model.KindRandom: NewRandomStrategy(engine, rnd),
		model.KindGreedy: NewGreedyStrategy(engine, rnd, cfg.Greedy),
		model.KindDeep:   NewDeepStrategy(engine, rnd, cfg.Deep),
	}
}
