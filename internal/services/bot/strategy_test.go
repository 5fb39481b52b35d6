package bot

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blokus-go/internal/dependencies/mocks"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/catalog"
	"github.com/mcoot/blokus-go/internal/services/rules"
	"github.com/mcoot/blokus-go/internal/testutil"
)

type StrategySuite struct {
	suite.Suite
	catalog *catalog.Catalog
	rules   *rules.Engine
	random  *mocks.MockRandom
	game    *model.Game
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.catalog = catalog.MustDefault()
	s.rules = rules.New(testutil.NopLogger())
	s.random = mocks.NewMockRandom()

	corners, _ := model.StartCorners(2)
	s.game = &model.Game{ID: "game-1", State: model.GameStateActive, Board: model.NewBoard()}
	for i, corner := range corners {
		s.game.Players = append(s.game.Players, model.PlayerState{
			ID:          model.PlayerID(i),
			Kind:        model.KindGreedy,
			StartCorner: corner,
			Available:   s.catalog.NewPlayerSet(),
		})
	}
}

func (s *StrategySuite) requireLegal(move model.Move) {
	result, err := s.rules.ValidateRequest(s.game, model.PlacementRequest{
		PlayerID: move.PlayerID,
		PieceID:  move.PieceID,
		Anchor:   move.Anchor,
		Rotation: move.Rotation,
		Flipped:  move.Flipped,
	})
	s.Require().NoError(err)
	s.True(result.Valid, "move %+v: %s", move, result.Violation)
}

// Random strategy

func (s *StrategySuite) TestRandomReturnsLegalMoves() {
	strategy := NewRandomStrategy(s.rules, s.random)
	s.random.QueueIntn(0, 3, 7)

	for range 3 {
		move, ok := strategy.ChooseMove(s.game, 1)
		s.Require().True(ok)
		s.Equal(model.PlayerID(1), move.PlayerID)
		s.requireLegal(move)
	}
}

func (s *StrategySuite) TestRandomUsesCurrentTransformOnly() {
	strategy := NewRandomStrategy(s.rules, s.random)
	player := &s.game.Players[0]
	for i := range player.Available {
		player.Available[i] = player.Available[i].WithTransform(2, true)
	}

	for _, pick := range []int{0, 5, 11} {
		s.random.QueueIntn(pick)
		move, ok := strategy.ChooseMove(s.game, 0)
		s.Require().True(ok)
		s.Equal(2, move.Rotation)
		s.True(move.Flipped)
	}
}

func (s *StrategySuite) TestRandomNoMove() {
	s.game.Players[0].Available = nil
	_, ok := NewRandomStrategy(s.rules, s.random).ChooseMove(s.game, 0)
	s.False(ok)
}

// Greedy strategy

func (s *StrategySuite) TestGreedyPrefersLargestPiece() {
	strategy := NewGreedyStrategy(s.rules, s.random, DefaultConfig().Greedy)

	move, ok := strategy.ChooseMove(s.game, 0)
	s.Require().True(ok)
	s.requireLegal(move)

	def, err := s.catalog.Get(move.PieceID)
	s.Require().NoError(err)
	s.Equal(5, def.Size)
}

func (s *StrategySuite) TestGreedyNoMove() {
	// Opponent holds the start corner
	s.Require().NoError(s.game.Board.Place([]model.Position{{X: 0, Y: 0}}, 1))
	_, ok := NewGreedyStrategy(s.rules, s.random, DefaultConfig().Greedy).ChooseMove(s.game, 0)
	s.False(ok)
}

func (s *StrategySuite) TestGreedyScoreComponents() {
	strategy := NewGreedyStrategy(s.rules, s.random, DefaultConfig().Greedy)
	corner := []model.Position{{X: 0, Y: 0}}

	// size 10, centre 0, one new corner contact 2, board corner 5, edge -1
	s.InDelta(16.0, strategy.Score(s.game.Board, 0, corner), 1e-9)

	s.Require().NoError(s.game.Board.Place([]model.Position{{X: 1, Y: 0}}, 1))
	s.InDelta(17.5, strategy.Score(s.game.Board, 0, corner), 1e-9)

	s.Require().NoError(s.game.Board.Place([]model.Position{{X: 1, Y: 1}}, 1))
	s.InDelta(15.5, strategy.Score(s.game.Board, 0, corner), 1e-9)
}

func (s *StrategySuite) TestGreedyJitterIsBounded() {
	strategy := NewGreedyStrategy(s.rules, s.random, DefaultConfig().Greedy)
	corner := []model.Position{{X: 0, Y: 0}}

	s.random.QueueFloat64(1.0, 0.0)
	s.InDelta(16.5, strategy.Score(s.game.Board, 0, corner), 1e-9)
	s.InDelta(15.5, strategy.Score(s.game.Board, 0, corner), 1e-9)
}

func (s *StrategySuite) TestGreedyDoesNotMutateGame() {
	before := s.game.Clone()
	_, _ = NewGreedyStrategy(s.rules, s.random, DefaultConfig().Greedy).ChooseMove(s.game, 0)
	s.Equal(before, s.game)
}

// Deep strategy

func (s *StrategySuite) TestDeepReturnsLegalMove() {
	s.Require().NoError(s.game.Board.Place([]model.Position{{X: 0, Y: 0}}, 0))
	s.Require().NoError(s.game.Players[0].UsePiece(catalog.MonominoID, 0, false))

	move, ok := NewDeepStrategy(s.rules, s.random, DefaultConfig().Deep).ChooseMove(s.game, 0)
	s.Require().True(ok)
	s.requireLegal(move)
}

func (s *StrategySuite) TestDefaultStrategiesCoverBotKinds() {
	strategies := DefaultStrategies(s.rules, s.random, DefaultConfig())
	for _, kind := range model.ValidPlayerKinds() {
		_, ok := strategies[kind]
		s.Equal(kind.IsBot(), ok, "kind %s", kind)
	}
}

func (s *StrategySuite) TestGreedyScoresEachPieceAnchorOnce() {
	weights := DefaultConfig().Greedy
	weights.RandomnessFactor = 0
	strategy := NewGreedyStrategy(s.rules, s.random, weights)

	placements := 0
	keys := make(map[memoKey]bool)
	for placement := range s.rules.AllPlacements(s.game.Board, &s.game.Players[0], true) {
		placements++
		keys[memoKey{piece: placement.Piece.ID(), anchor: placement.Anchor}] = true
	}
	s.Require().Greater(placements, len(keys), "some transforms should share an anchor")

	_, ok := strategy.ChooseMove(s.game, 0)
	s.Require().True(ok)
	s.Equal(len(keys), s.random.Float64Calls)
}

func (s *StrategySuite) TestGreedyTieGoesToFirstCandidate() {
	// Every candidate scores zero
	strategy := NewGreedyStrategy(s.rules, s.random, Weights{})

	var first model.Move
	for placement := range s.rules.AllPlacements(s.game.Board, &s.game.Players[0], true) {
		first = placement.Move(0)
		break
	}

	move, ok := strategy.ChooseMove(s.game, 0)
	s.Require().True(ok)
	s.Equal(first, move)
}
