package model

import "github.com/mcoot/blokus-go/internal/geometry"

// PieceID identifies one of the 21 catalog pieces (1-21)
type PieceID int

// PieceDefinition is the immutable base shape of a catalog piece
type PieceDefinition struct {
	ID    PieceID          `json:"id"`
	Name  string           `json:"name"`
	Size  int              `json:"size"`
	Cells []geometry.Point `json:"cells"`
}

// NewPieceDefinition builds a definition whose size is the number of cells given
func NewPieceDefinition(id PieceID, name string, cells ...geometry.Point) PieceDefinition {
	owned := make([]geometry.Point, len(cells))
	copy(owned, cells)
	return PieceDefinition{
		ID:    id,
		Name:  name,
		Size:  len(cells),
		Cells: owned,
	}
}

// Piece is a player's copy of a catalog piece together with its current
// transform. Methods that change the transform return a new value.
type Piece struct {
	Definition PieceDefinition `json:"definition"`
	Rotation   int             `json:"rotation"`
	Flipped    bool            `json:"flipped"`
	Placed     bool            `json:"placed"`
}

// NewPiece creates an unplaced, untransformed piece from a definition
func NewPiece(def PieceDefinition) Piece {
	return Piece{Definition: def}
}

// ID returns the catalog id of the piece
func (p Piece) ID() PieceID {
	return p.Definition.ID
}

// Size returns the number of cells the piece covers
func (p Piece) Size() int {
	return p.Definition.Size
}

// Cells returns the piece's normalized cells under its current transform
func (p Piece) Cells() []Position {
	return geometry.Transform(p.Definition.Cells, p.Rotation, p.Flipped)
}

// OccupiedAt returns the board cells covered when the piece is anchored at anchor
func (p Piece) OccupiedAt(anchor Position) []Position {
	return geometry.Occupied(p.Cells(), anchor)
}

// Rotate returns a copy turned a further 90 degrees clockwise
func (p Piece) Rotate() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}

// Flip returns a copy with the mirror toggled
func (p Piece) Flip() Piece {
	p.Flipped = !p.Flipped
	return p
}

// WithTransform returns a copy with the given rotation and mirror
func (p Piece) WithTransform(rotation int, flipped bool) Piece {
	p.Rotation = ((rotation % 4) + 4) % 4
	p.Flipped = flipped
	return p
}
