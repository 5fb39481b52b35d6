package board

import (
	"log/slog"

	"github.com/mcoot/blokus-go/internal/model"
)

// Service provides board operations. It is the single entry point through
// which the game controller mutates a board.
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// CreateBoard returns an empty board
func (s *Service) CreateBoard() *model.Board {
	return model.NewBoard()
}

// Place writes cells for player after re-checking that every cell is on the
// board and empty. Nothing is written if any check fails.
func (s *Service) Place(board *model.Board, cells []model.Position, player model.PlayerID) error {
	if err := s.ValidateCells(board, cells); err != nil {
		return err
	}
	if err := board.Place(cells, player); err != nil {
		return err
	}

	s.logger.Debug("cells placed",
		slog.Int("player_id", int(player)),
		slog.Int("cell_count", len(cells)),
	)
	return nil
}

// ValidateCells checks that every cell is on the board and empty
func (s *Service) ValidateCells(board *model.Board, cells []model.Position) error {
	for _, c := range cells {
		if !board.InBounds(c) {
			return model.ErrOutOfRange
		}
		if !board.IsEmpty(c) {
			return model.ErrCellOccupied
		}
	}
	return nil
}

// OwnerAt returns the owner of a cell, or NoPlayer when empty
func (s *Service) OwnerAt(board *model.Board, pos model.Position) (model.PlayerID, error) {
	return board.OwnerAt(pos)
}

// Clear empties the board
func (s *Service) Clear(board *model.Board) {
	board.Clear()
	s.logger.Debug("board cleared")
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateBoard() *model.Board
	Place(board *model.Board, cells []model.Position, player model.PlayerID) error
	ValidateCells(board *model.Board, cells []model.Position) error
	OwnerAt(board *model.Board, pos model.Position) (model.PlayerID, error)
	Clear(board *model.Board)
}

var _ ServiceInterface = (*Service)(nil)
