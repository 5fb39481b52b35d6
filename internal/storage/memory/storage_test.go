package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blokus-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:    id,
		State: model.GameStateActive,
		Board: model.NewBoard(),
		Players: []model.PlayerState{
			{ID: 0, Name: "Alice", Kind: model.KindHuman, StartCorner: model.CornerTopLeft},
			{ID: 1, Name: "Bot", Kind: model.KindGreedy, StartCorner: model.CornerBottomRight},
		},
		CreatedAt: time.Now(),
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := newGame("game-1")
	s.Require().NoError(game.Board.Place([]model.Position{{X: 0, Y: 0}}, 0))

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Len(retrieved.Players, 2)
	s.True(retrieved.Board.IsOwnedBy(model.Position{X: 0, Y: 0}, 0))
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, newGame("game-1"))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGamesSorted() {
	_ = s.storage.SaveGame(s.ctx, newGame("game-b"))
	_ = s.storage.SaveGame(s.ctx, newGame("game-a"))

	ids, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-b"}, ids)
}

// Seat credential tests

func (s *StorageSuite) TestSaveAndGetSeatCredential() {
	cred := &model.SeatCredential{
		GameID:     "game-1",
		PlayerID:   1,
		SecretHash: "hash",
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	s.Require().NoError(s.storage.SaveSeatCredential(s.ctx, cred))

	retrieved, err := s.storage.GetSeatCredential(s.ctx, "game-1", 1)
	s.Require().NoError(err)
	s.Equal("hash", retrieved.SecretHash)

	_, err = s.storage.GetSeatCredential(s.ctx, "game-1", 0)
	s.ErrorIs(err, model.ErrSeatNotFound)
}

func (s *StorageSuite) TestDeleteSeatCredentialsForGame() {
	_ = s.storage.SaveSeatCredential(s.ctx, &model.SeatCredential{GameID: "game-1", PlayerID: 0})
	_ = s.storage.SaveSeatCredential(s.ctx, &model.SeatCredential{GameID: "game-1", PlayerID: 1})
	_ = s.storage.SaveSeatCredential(s.ctx, &model.SeatCredential{GameID: "game-2", PlayerID: 0})

	s.Require().NoError(s.storage.DeleteSeatCredentialsForGame(s.ctx, "game-1"))

	_, err := s.storage.GetSeatCredential(s.ctx, "game-1", 0)
	s.ErrorIs(err, model.ErrSeatNotFound)
	_, err = s.storage.GetSeatCredential(s.ctx, "game-1", 1)
	s.ErrorIs(err, model.ErrSeatNotFound)

	_, err = s.storage.GetSeatCredential(s.ctx, "game-2", 0)
	s.NoError(err)
}

// Summary tests

func (s *StorageSuite) TestSaveAndGetGameSummary() {
	summary := &model.GameSummary{
		ID:          "game-1",
		FinalScores: map[model.PlayerID]int{0: 10, 1: -4},
		Winner:      0,
		Moves:       12,
	}
	s.Require().NoError(s.storage.SaveGameSummary(s.ctx, summary))

	retrieved, err := s.storage.GetGameSummary(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(0), retrieved.Winner)
	s.Equal(-4, retrieved.FinalScores[1])
}

func (s *StorageSuite) TestGetGameSummaryNotFound() {
	_, err := s.storage.GetGameSummary(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSummaryNotFound)
}
