package model

// Board is the shared 20x20 occupancy grid. Each cell holds the owning
// player's id plus one, or 0 when empty.
type Board struct {
	Cells [BoardSize][BoardSize]int8 `json:"cells"` // Row-major: Cells[y][x]
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// InBounds returns true if the position is on the board
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < BoardSize && pos.Y >= 0 && pos.Y < BoardSize
}

// OwnerAt returns the player owning the cell, or NoPlayer if it is empty
func (b *Board) OwnerAt(pos Position) (PlayerID, error) {
	if !b.InBounds(pos) {
		return NoPlayer, ErrOutOfRange
	}
	return PlayerID(b.Cells[pos.Y][pos.X]) - 1, nil
}

// owner is OwnerAt for callers that have already checked bounds, returning
// NoPlayer for positions off the board
func (b *Board) owner(pos Position) PlayerID {
	if !b.InBounds(pos) {
		return NoPlayer
	}
	return PlayerID(b.Cells[pos.Y][pos.X]) - 1
}

// IsEmpty returns true if the position is on the board and unowned
func (b *Board) IsEmpty(pos Position) bool {
	return b.InBounds(pos) && b.Cells[pos.Y][pos.X] == 0
}

// IsOwnedBy returns true if the position is on the board and owned by player
func (b *Board) IsOwnedBy(pos Position, player PlayerID) bool {
	return player != NoPlayer && b.owner(pos) == player
}

// Place marks every cell as owned by player. Either all cells are written or,
// if any is off the board or already owned, none are.
func (b *Board) Place(cells []Position, player PlayerID) error {
	if player < 0 || int(player) >= MaxPlayers {
		return ErrInvalidPlayerID
	}
	for _, c := range cells {
		if !b.InBounds(c) {
			return ErrOutOfRange
		}
		if b.Cells[c.Y][c.X] != 0 {
			return ErrCellOccupied
		}
	}
	for _, c := range cells {
		b.Cells[c.Y][c.X] = int8(player) + 1
	}
	return nil
}

// Clear resets every cell to empty
func (b *Board) Clear() {
	b.Cells = [BoardSize][BoardSize]int8{}
}

// CountOwned returns the number of cells owned by player. NoPlayer owns
// nothing; use EmptyCount for empty cells.
func (b *Board) CountOwned(player PlayerID) int {
	if player == NoPlayer {
		return 0
	}
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if PlayerID(b.Cells[y][x])-1 == player {
				count++
			}
		}
	}
	return count
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	return BoardSize*BoardSize - b.occupiedCount()
}

func (b *Board) occupiedCount() int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Cells[y][x] != 0 {
				count++
			}
		}
	}
	return count
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}
