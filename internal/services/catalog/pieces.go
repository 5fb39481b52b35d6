package catalog

import (
	"github.com/mcoot/blokus-go/internal/geometry"
	"github.com/mcoot/blokus-go/internal/model"
)

// MonominoID is the id of the single-cell piece
const MonominoID model.PieceID = 1

func p(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

// Standard returns the 21 canonical Blokus pieces
func Standard() []model.PieceDefinition {
	return []model.PieceDefinition{
		// 1 cell
		model.NewPieceDefinition(1, "I1", p(0, 0)),
		// 2 cells
		model.NewPieceDefinition(2, "I2", p(0, 0), p(1, 0)),
		// 3 cells
		model.NewPieceDefinition(3, "I3", p(0, 0), p(1, 0), p(2, 0)),
		model.NewPieceDefinition(4, "V3", p(0, 0), p(1, 0), p(0, 1)),
		// 4 cells
		model.NewPieceDefinition(5, "I4", p(0, 0), p(1, 0), p(2, 0), p(3, 0)),
		model.NewPieceDefinition(6, "L4", p(0, 0), p(0, 1), p(0, 2), p(1, 2)),
		model.NewPieceDefinition(7, "T4", p(0, 0), p(1, 0), p(2, 0), p(1, 1)),
		model.NewPieceDefinition(8, "O4", p(0, 0), p(1, 0), p(0, 1), p(1, 1)),
		model.NewPieceDefinition(9, "Z4", p(1, 0), p(2, 0), p(0, 1), p(1, 1)),
		// 5 cells
		model.NewPieceDefinition(10, "I5", p(0, 0), p(1, 0), p(2, 0), p(3, 0), p(4, 0)),
		model.NewPieceDefinition(11, "L5", p(0, 0), p(0, 1), p(0, 2), p(0, 3), p(1, 3)),
		model.NewPieceDefinition(12, "Y5", p(0, 0), p(0, 1), p(0, 2), p(0, 3), p(1, 1)),
		model.NewPieceDefinition(13, "N5", p(0, 0), p(0, 1), p(1, 1), p(1, 2), p(1, 3)),
		model.NewPieceDefinition(14, "P5", p(0, 0), p(1, 0), p(0, 1), p(1, 1), p(0, 2)),
		model.NewPieceDefinition(15, "U5", p(0, 0), p(2, 0), p(0, 1), p(1, 1), p(2, 1)),
		model.NewPieceDefinition(16, "V5", p(0, 0), p(0, 1), p(0, 2), p(1, 2), p(2, 2)),
		model.NewPieceDefinition(17, "W5", p(0, 0), p(0, 1), p(1, 1), p(1, 2), p(2, 2)),
		model.NewPieceDefinition(18, "Z5", p(0, 0), p(1, 0), p(1, 1), p(1, 2), p(2, 2)),
		model.NewPieceDefinition(19, "T5", p(0, 0), p(1, 0), p(2, 0), p(1, 1), p(1, 2)),
		model.NewPieceDefinition(20, "F5", p(1, 0), p(2, 0), p(0, 1), p(1, 1), p(1, 2)),
		model.NewPieceDefinition(21, "X5", p(1, 0), p(0, 1), p(1, 1), p(2, 1), p(1, 2)),
	}
}
