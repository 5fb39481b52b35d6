package model

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blokus-go/internal/geometry"
)

type PlayerSuite struct {
	suite.Suite
	player *PlayerState
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerSuite))
}

func (s *PlayerSuite) SetupTest() {
	s.player = &PlayerState{
		ID: 0,
		Available: []Piece{
			NewPiece(NewPieceDefinition(1, "I1", geometry.Point{})),
			NewPiece(NewPieceDefinition(2, "I2", geometry.Point{}, geometry.Point{X: 1})),
		},
	}
}

func (s *PlayerSuite) TestUsePiece() {
	s.True(s.player.IsFirstMove())

	s.Require().NoError(s.player.UsePiece(2, 1, true))

	s.False(s.player.IsFirstMove())
	s.Equal(-1, s.player.FindAvailable(2))
	s.True(s.player.HasUsed(2))
	s.Equal(PieceID(2), s.player.LastPlacedPieceID)
	s.Require().Len(s.player.Used, 1)
	s.True(s.player.Used[0].Placed)
	s.Equal(1, s.player.Used[0].Rotation)
	s.True(s.player.Used[0].Flipped)
	s.Equal(2, s.player.PlacedCells())
	s.Equal(1, s.player.RemainingCells())
}

func (s *PlayerSuite) TestUsePieceTwice() {
	s.Require().NoError(s.player.UsePiece(1, 0, false))
	s.ErrorIs(s.player.UsePiece(1, 0, false), ErrPieceAlreadyUsed)
	s.ErrorIs(s.player.UsePiece(9, 0, false), ErrInvalidPieceID)
}

func (s *PlayerSuite) TestCloneIsIndependent() {
	clone := s.player.Clone()
	s.Require().NoError(clone.UsePiece(1, 0, false))
	s.Len(s.player.Available, 2)
	s.Empty(s.player.Used)
}

func (s *PlayerSuite) TestPieceTransformsReturnCopies() {
	piece := s.player.Available[1]
	rotated := piece.Rotate()
	flipped := piece.Flip()

	s.Equal(0, piece.Rotation)
	s.False(piece.Flipped)
	s.Equal(1, rotated.Rotation)
	s.True(flipped.Flipped)
	s.Equal(0, piece.Rotate().Rotate().Rotate().Rotate().Rotation)
	s.Equal(3, piece.WithTransform(-1, false).Rotation)
}

func (s *PlayerSuite) TestPieceCells() {
	domino := s.player.Available[1]
	s.Equal([]Position{{X: 0, Y: 0}, {X: 1, Y: 0}}, geometry.Sorted(domino.Cells()))
	s.Equal([]Position{{X: 0, Y: 0}, {X: 0, Y: 1}}, geometry.Sorted(domino.Rotate().Cells()))
	s.Equal([]Position{{X: 3, Y: 4}, {X: 4, Y: 4}}, geometry.Sorted(domino.OccupiedAt(Position{X: 3, Y: 4})))
}

func (s *PlayerSuite) TestParsePlayerKind() {
	kind, err := ParsePlayerKind("greedy")
	s.Require().NoError(err)
	s.Equal(KindGreedy, kind)
	s.True(kind.IsBot())
	s.False(KindHuman.IsBot())

	_, err = ParsePlayerKind("wizard")
	s.ErrorIs(err, ErrInvalidPlayerKind)
}
