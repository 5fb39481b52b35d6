package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blokus-go/internal/dependencies/mocks"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/board"
	"github.com/mcoot/blokus-go/internal/services/catalog"
	"github.com/mcoot/blokus-go/internal/services/rules"
	"github.com/mcoot/blokus-go/internal/services/scoring"
	"github.com/mcoot/blokus-go/internal/storage/memory"
	"github.com/mcoot/blokus-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	events     []model.Event
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(
		s.storage,
		catalog.MustDefault(),
		rules.New(logger),
		board.New(logger),
		scoring.New(scoring.DefaultConfig()),
		s.clock,
		s.random,
		logger,
	)
	s.events = nil
	s.controller.Subscribe(func(e model.Event) {
		s.events = append(s.events, e)
	})
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGame(players int) *model.Game {
	s.random.QueueString("GAME12345678")
	seats := make([]model.Seat, players)
	game, err := s.controller.CreateGame(s.ctx, seats)
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) place(game *model.Game, player model.PlayerID, piece model.PieceID, x, y int) *model.PlacementOutcome {
	outcome, err := s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{
		PlayerID: player,
		PieceID:  piece,
		Anchor:   model.Position{X: x, Y: y},
	})
	s.Require().NoError(err)
	return outcome
}

// stored returns the game object held by storage so tests can arrange positions
func (s *ControllerSuite) stored(id model.GameID) *model.Game {
	game, err := s.storage.GetGame(s.ctx, id)
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) eventTypes() []model.EventType {
	var types []model.EventType
	for _, e := range s.events {
		types = append(types, e.Type)
	}
	return types
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	game := s.createGame(4)

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.GameStateActive, game.State)
	s.Equal(model.PlayerID(0), game.CurrentPlayer)
	s.Require().Len(game.Players, 4)
	s.Equal(model.Position{X: 19, Y: 0}, game.Players[1].StartCorner)
	s.Equal("Player 2", game.Players[1].Name)
	s.Equal(model.KindHuman, game.Players[1].Kind)
	for _, p := range game.Players {
		s.Len(p.Available, catalog.PieceCount)
	}
	s.Equal([]model.EventType{model.EventGameCreated}, s.eventTypes())
}

func (s *ControllerSuite) TestCreateGameInvalidPlayerCount() {
	for _, n := range []int{0, 1, 5} {
		_, err := s.controller.CreateGame(s.ctx, make([]model.Seat, n))
		s.ErrorIs(err, model.ErrInvalidPlayerCount, "players %d", n)
	}
}

func (s *ControllerSuite) TestCreateGameInvalidKind() {
	_, err := s.controller.CreateGame(s.ctx, []model.Seat{{Kind: model.KindHuman}, {Kind: "wizard"}})
	s.ErrorIs(err, model.ErrInvalidPlayerKind)
}

// PlacePiece tests

func (s *ControllerSuite) TestPlacePieceFirstMove() {
	game := s.createGame(4)

	outcome := s.place(game, 0, catalog.MonominoID, 0, 0)

	s.True(outcome.Placed)
	s.True(outcome.Result.Valid)
	s.Equal([]model.Position{{X: 0, Y: 0}}, outcome.Cells)
	s.Equal(model.PlayerID(1), outcome.NextPlayer)
	s.False(outcome.GameOver)

	updated := s.stored(game.ID)
	s.True(updated.Board.IsOwnedBy(model.Position{X: 0, Y: 0}, 0))
	s.True(updated.Players[0].HasUsed(catalog.MonominoID))
	s.Equal(1, updated.TurnNumber)
	s.Len(updated.Moves, 1)
	s.Contains(s.eventTypes(), model.EventPiecePlaced)
}

func (s *ControllerSuite) TestPlacePieceRuleViolationIsAnOutcome() {
	game := s.createGame(4)

	outcome := s.place(game, 0, catalog.MonominoID, 5, 5)

	s.False(outcome.Placed)
	s.Equal(model.RuleFirstPlacementCorner, outcome.Result.Violation)
	s.Equal(model.PlayerID(0), outcome.NextPlayer)

	updated := s.stored(game.ID)
	s.True(updated.Board.IsEmpty(model.Position{X: 5, Y: 5}))
	s.Equal(0, updated.TurnNumber)
	s.Len(updated.Players[0].Available, catalog.PieceCount)
	s.Equal(model.EventPlacementRejected, s.events[len(s.events)-1].Type)
}

func (s *ControllerSuite) TestPlacePieceErrors() {
	game := s.createGame(4)

	_, err := s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{PlayerID: 1, PieceID: 1, Anchor: model.Position{X: 19, Y: 0}})
	s.ErrorIs(err, model.ErrNotPlayerTurn)

	_, err = s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{PlayerID: 4, PieceID: 1})
	s.ErrorIs(err, model.ErrInvalidPlayerID)

	_, err = s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{PlayerID: 0, PieceID: 0})
	s.ErrorIs(err, model.ErrInvalidPieceID)

	_, err = s.controller.PlacePiece(s.ctx, "missing", model.PlacementRequest{})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestPlacePieceStaleGuard() {
	game := s.createGame(2)
	guard := model.GuardFor(game)
	s.place(game, 0, catalog.MonominoID, 0, 0)
	s.place(game, 1, catalog.MonominoID, 19, 19)

	_, err := s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{
		PlayerID: 0, PieceID: 2, Anchor: model.Position{X: 1, Y: 1}, Guard: guard,
	})
	s.ErrorIs(err, model.ErrStaleDecision)
}

func (s *ControllerSuite) TestEndToEndScenario() {
	game := s.createGame(2)

	s.True(s.place(game, 0, catalog.MonominoID, 0, 0).Placed)
	s.True(s.place(game, 1, catalog.MonominoID, 19, 19).Placed)

	edge := s.place(game, 0, 2, 1, 0)
	s.False(edge.Placed)
	s.Equal(model.RuleEdgeContact, edge.Result.Violation)

	diagonal := s.place(game, 0, 2, 1, 1)
	s.True(diagonal.Placed)
	s.Equal(model.PlayerID(1), diagonal.NextPlayer)
}

// Turn flow tests

func (s *ControllerSuite) TestSkipTurn() {
	game := s.createGame(3)

	updated, err := s.controller.SkipTurn(s.ctx, game.ID, 0, nil)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), updated.CurrentPlayer)
	s.Equal([]model.Move{{PlayerID: 0, Skipped: true}}, updated.Moves)

	_, err = s.controller.SkipTurn(s.ctx, game.ID, 0, nil)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ControllerSuite) TestPlayersWithoutMovesAreSkipped() {
	game := s.createGame(4)
	s.stored(game.ID).Players[1].Available = nil

	outcome := s.place(game, 0, catalog.MonominoID, 0, 0)

	s.Equal(model.PlayerID(2), outcome.NextPlayer)
	updated := s.stored(game.ID)
	s.Equal(model.Move{PlayerID: 1, Skipped: true}, updated.Moves[len(updated.Moves)-1])

	var skipped *model.Event
	for i := range s.events {
		if s.events[i].Type == model.EventTurnSkipped {
			skipped = &s.events[i]
		}
	}
	s.Require().NotNil(skipped)
	s.Equal(model.PlayerID(1), skipped.PlayerID)
	s.True(skipped.Payload.(model.TurnSkippedPayload).Automatic)
}

func (s *ControllerSuite) TestGameFinishesWhenNobodyCanContinue() {
	game := s.createGame(2)
	catalogPieces := s.stored(game.ID).Players[0].Available
	arranged := s.stored(game.ID)
	arranged.Players[0].Available = catalogPieces[:1]
	arranged.Players[1].Available = nil

	outcome := s.place(game, 0, catalog.MonominoID, 0, 0)

	s.True(outcome.Placed)
	s.True(outcome.GameOver)
	updated := s.stored(game.ID)
	s.Equal(model.GameStateFinished, updated.State)

	summary, err := s.controller.GetGameSummary(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(0), summary.Winner)
	s.Equal(1+15+5, summary.FinalScores[0])
	s.Equal(0, summary.FinalScores[1])

	s.Equal(model.EventGameOver, s.events[len(s.events)-1].Type)

	_, err = s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{PlayerID: 0, PieceID: 2})
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestResignPlayer() {
	game := s.createGame(3)

	updated, err := s.controller.ResignPlayer(s.ctx, game.ID, 0)
	s.Require().NoError(err)
	s.True(updated.Players[0].Resigned)
	s.Equal(model.PlayerID(1), updated.CurrentPlayer)

	// Resigning someone else keeps the turn but invalidates pending decisions
	turn := updated.TurnNumber
	updated, err = s.controller.ResignPlayer(s.ctx, game.ID, 2)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), updated.CurrentPlayer)
	s.Equal(turn+1, updated.TurnNumber)
}

func (s *ControllerSuite) TestEveryoneResignedFinishesGame() {
	game := s.createGame(2)

	_, err := s.controller.ResignPlayer(s.ctx, game.ID, 0)
	s.Require().NoError(err)
	updated, err := s.controller.ResignPlayer(s.ctx, game.ID, 1)
	s.Require().NoError(err)

	s.Equal(model.GameStateFinished, updated.State)
	summary, err := s.controller.CreateGameSummary(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.NoPlayer, summary.Winner)
}

// Piece transform tests

func (s *ControllerSuite) TestSetPieceTransform() {
	game := s.createGame(2)

	piece, err := s.controller.SetPieceTransform(s.ctx, game.ID, 1, 6, 3, true)
	s.Require().NoError(err)
	s.Equal(3, piece.Rotation)
	s.True(piece.Flipped)

	stored := s.stored(game.ID).Players[1]
	s.Equal(3, stored.Available[stored.FindAvailable(6)].Rotation)

	_, err = s.controller.SetPieceTransform(s.ctx, game.ID, 1, 6, 4, false)
	s.ErrorIs(err, model.ErrInvalidRotation)

	s.place(game, 0, catalog.MonominoID, 0, 0)
	_, err = s.controller.SetPieceTransform(s.ctx, game.ID, 0, catalog.MonominoID, 1, false)
	s.ErrorIs(err, model.ErrPieceAlreadyUsed)
}

// Teardown tests

func (s *ControllerSuite) TestResetGame() {
	game := s.createGame(2)
	guard := model.GuardFor(game)
	s.place(game, 0, catalog.MonominoID, 0, 0)

	reset, err := s.controller.ResetGame(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Equal(1, reset.Generation)
	s.Equal(0, reset.TurnNumber)
	s.Equal(model.PlayerID(0), reset.CurrentPlayer)
	s.Empty(reset.Moves)
	s.True(reset.Board.IsEmpty(model.Position{X: 0, Y: 0}))
	s.Len(reset.Players[0].Available, catalog.PieceCount)
	s.Equal(model.EventGameReset, s.events[len(s.events)-1].Type)

	// A decision computed before the reset is refused even though the turn number matches
	_, err = s.controller.SkipTurn(s.ctx, game.ID, 0, guard)
	s.ErrorIs(err, model.ErrStaleDecision)
}

func (s *ControllerSuite) TestAbandonGame() {
	game := s.createGame(2)

	s.Require().NoError(s.controller.AbandonGame(s.ctx, game.ID, "host left"))
	s.Equal(model.GameStateAbandoned, s.stored(game.ID).State)

	_, err := s.controller.PlacePiece(s.ctx, game.ID, model.PlacementRequest{PlayerID: 0, PieceID: 1})
	s.ErrorIs(err, model.ErrGameAbandoned)
	_, err = s.controller.ResetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameAbandoned)

	// Abandoning twice is a no-op
	s.NoError(s.controller.AbandonGame(s.ctx, game.ID, "again"))
}

func (s *ControllerSuite) TestDeleteGame() {
	game := s.createGame(2)

	s.Require().NoError(s.controller.DeleteGame(s.ctx, game.ID))

	_, err := s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
	s.ErrorIs(s.controller.DeleteGame(s.ctx, game.ID), model.ErrGameNotFound)
}

// Query tests

func (s *ControllerSuite) TestGetScoresFreshGame() {
	game := s.createGame(2)

	scores, err := s.controller.GetScores(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	for _, score := range scores {
		s.Equal(-89, score.Total)
	}
}

func (s *ControllerSuite) TestCreateGameSummaryRequiresFinishedGame() {
	game := s.createGame(2)
	_, err := s.controller.CreateGameSummary(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFinished)
}

func (s *ControllerSuite) TestValidatePlacementIgnoresTurn() {
	game := s.createGame(2)

	result, err := s.controller.ValidatePlacement(s.ctx, game.ID, model.PlacementRequest{
		PlayerID: 1, PieceID: 1, Anchor: model.Position{X: 19, Y: 19},
	})
	s.Require().NoError(err)
	s.True(result.Valid)
	s.True(s.stored(game.ID).Board.IsEmpty(model.Position{X: 19, Y: 19}))
}

func (s *ControllerSuite) TestListGamesAndCanContinue() {
	game := s.createGame(2)

	ids, err := s.controller.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{game.ID}, ids)

	ok, err := s.controller.CanPlayerContinue(s.ctx, game.ID, 1)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.controller.CanPlayerContinue(s.ctx, game.ID, 3)
	s.ErrorIs(err, model.ErrInvalidPlayerID)
}
