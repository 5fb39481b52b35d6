package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/catalog"
)

type ServiceSuite struct {
	suite.Suite
	catalog *catalog.Catalog
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.catalog = catalog.MustDefault()
	s.service = New(DefaultConfig())
}

func (s *ServiceSuite) piece(id model.PieceID) model.Piece {
	def, err := s.catalog.Get(id)
	s.Require().NoError(err)
	return model.NewPiece(def)
}

func (s *ServiceSuite) TestPlacedMinusRemaining() {
	// One 4-cell piece placed, the 1-cell piece still in hand
	player := &model.PlayerState{
		ID:        0,
		Available: []model.Piece{s.piece(catalog.MonominoID)},
		Used:      []model.Piece{s.piece(8)},
	}

	score := s.service.ScorePlayer(player)
	s.Equal(4, score.PlacedCells)
	s.Equal(1, score.RemainingCells)
	s.Equal(0, score.Bonus)
	s.Equal(3, score.Total)
}

func (s *ServiceSuite) TestFreshPlayerScoresNegativeTotal() {
	player := &model.PlayerState{Available: s.catalog.NewPlayerSet()}
	s.Equal(-89, s.service.ScorePlayer(player).Total)
}

func (s *ServiceSuite) TestCompletionBonus() {
	player := &model.PlayerState{Used: s.catalog.NewPlayerSet(), LastPlacedPieceID: 10}

	score := s.service.ScorePlayer(player)
	s.Equal(15, score.Bonus)
	s.Equal(89+15, score.Total)
}

func (s *ServiceSuite) TestMonominoLastBonus() {
	player := &model.PlayerState{Used: s.catalog.NewPlayerSet(), LastPlacedPieceID: catalog.MonominoID}

	score := s.service.ScorePlayer(player)
	s.Equal(20, score.Bonus)
	s.Equal(89+20, score.Total)
}

func (s *ServiceSuite) TestMonominoLastNeedsEveryPiece() {
	player := &model.PlayerState{
		Available:         []model.Piece{s.piece(2)},
		Used:              []model.Piece{s.piece(catalog.MonominoID)},
		LastPlacedPieceID: catalog.MonominoID,
	}
	s.Equal(0, s.service.ScorePlayer(player).Bonus)
}

func (s *ServiceSuite) TestCustomBonuses() {
	service := New(Config{CompletionBonus: 1, MonominoLastBonus: 2})
	player := &model.PlayerState{Used: s.catalog.NewPlayerSet(), LastPlacedPieceID: catalog.MonominoID}
	s.Equal(3, service.ScorePlayer(player).Bonus)
}

func (s *ServiceSuite) TestScoreGameSortedDescending() {
	game := &model.Game{Players: []model.PlayerState{
		{ID: 0, Available: []model.Piece{s.piece(10)}},
		{ID: 1, Used: []model.Piece{s.piece(10)}, Available: []model.Piece{s.piece(1)}},
		{ID: 2, Available: []model.Piece{s.piece(1)}},
	}}

	scores := s.service.ScoreGame(game)
	s.Require().Len(scores, 3)
	s.Equal(model.PlayerID(1), scores[0].PlayerID)
	s.Equal(model.PlayerID(2), scores[1].PlayerID)
	s.Equal(model.PlayerID(0), scores[2].PlayerID)
	s.Equal(model.PlayerID(1), s.service.DetermineWinner(scores))
}

func (s *ServiceSuite) TestDetermineWinnerTie() {
	scores := []model.PlayerScore{{PlayerID: 0, Total: 5}, {PlayerID: 1, Total: 5}}
	s.Equal(model.NoPlayer, s.service.DetermineWinner(scores))
	s.Equal(model.NoPlayer, s.service.DetermineWinner(nil))
}
