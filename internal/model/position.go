package model

import "github.com/mcoot/blokus-go/internal/geometry"

// BoardSize is the width and height of the Blokus board
const BoardSize = 20

// Position identifies a cell on the board. X is the column, Y is the row,
// both 0-indexed from the top-left corner.
type Position = geometry.Point

// Board corners in clockwise order starting at the top-left
var (
	CornerTopLeft     = Position{X: 0, Y: 0}
	CornerTopRight    = Position{X: BoardSize - 1, Y: 0}
	CornerBottomRight = Position{X: BoardSize - 1, Y: BoardSize - 1}
	CornerBottomLeft  = Position{X: 0, Y: BoardSize - 1}
)

// IsBoardCorner returns true if pos is one of the four board corners
func IsBoardCorner(pos Position) bool {
	return pos == CornerTopLeft || pos == CornerTopRight || pos == CornerBottomRight || pos == CornerBottomLeft
}

// IsBoardEdge returns true if pos lies on the outermost ring of the board
func IsBoardEdge(pos Position) bool {
	return pos.X == 0 || pos.Y == 0 || pos.X == BoardSize-1 || pos.Y == BoardSize-1
}

// StartCorners returns the starting corner of each player for the given
// player count. Four players take the corners clockwise from the top-left,
// three players take the first three, two players take opposite corners.
func StartCorners(playerCount int) ([]Position, error) {
	switch playerCount {
	case 2:
		return []Position{CornerTopLeft, CornerBottomRight}, nil
	case 3:
		return []Position{CornerTopLeft, CornerTopRight, CornerBottomRight}, nil
	case 4:
		return []Position{CornerTopLeft, CornerTopRight, CornerBottomRight, CornerBottomLeft}, nil
	default:
		return nil, ErrInvalidPlayerCount
	}
}
