package model

// PlayerID is a seat index in a game, 0 to player count - 1
type PlayerID int

// NoPlayer marks an empty cell or an absent player
const NoPlayer PlayerID = -1

// MaxPlayers is the largest supported player count
const MaxPlayers = 4

// PlayerKind selects who makes a seat's decisions
type PlayerKind string

const (
	KindHuman  PlayerKind = "human"
	KindRandom PlayerKind = "random"
	KindGreedy PlayerKind = "greedy"
	KindDeep   PlayerKind = "deep"
)

// IsBot returns true for automated player kinds
func (k PlayerKind) IsBot() bool {
	return k == KindRandom || k == KindGreedy || k == KindDeep
}

// PlayerKindDisplayName returns a human-readable label for a kind
func PlayerKindDisplayName(kind PlayerKind) string {
	switch kind {
	case KindHuman:
		return "Human"
	case KindRandom:
		return "Random"
	case KindGreedy:
		return "Greedy"
	case KindDeep:
		return "Deep"
	default:
		return string(kind)
	}
}

// ValidPlayerKinds returns all valid player kinds
func ValidPlayerKinds() []PlayerKind {
	return []PlayerKind{KindHuman, KindRandom, KindGreedy, KindDeep}
}

// ParsePlayerKind converts a name into a PlayerKind
func ParsePlayerKind(s string) (PlayerKind, error) {
	for _, k := range ValidPlayerKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrInvalidPlayerKind
}

// Seat describes a participant when creating a game
type Seat struct {
	Name string     `json:"name"`
	Kind PlayerKind `json:"kind"`
}

// PlayerState is a player's move state within one game
type PlayerState struct {
	ID          PlayerID   `json:"id"`
	Name        string     `json:"name"`
	Kind        PlayerKind `json:"kind"`
	StartCorner Position   `json:"start_corner"`
	Available   []Piece    `json:"available"`
	Used        []Piece    `json:"used"`
	// LastPlacedPieceID is 0 until the player places a piece
	LastPlacedPieceID PieceID `json:"last_placed_piece_id"`
	Resigned          bool    `json:"resigned"`
}

// PlacedCount returns the number of pieces the player has placed
func (p *PlayerState) PlacedCount() int {
	return len(p.Used)
}

// IsFirstMove returns true if the player has not placed any piece yet
func (p *PlayerState) IsFirstMove() bool {
	return len(p.Used) == 0
}

// FindAvailable returns the index of an unplaced piece, or -1
func (p *PlayerState) FindAvailable(id PieceID) int {
	for i := range p.Available {
		if p.Available[i].ID() == id {
			return i
		}
	}
	return -1
}

// HasUsed returns true if the piece has already been placed
func (p *PlayerState) HasUsed(id PieceID) bool {
	for i := range p.Used {
		if p.Used[i].ID() == id {
			return true
		}
	}
	return false
}

// UsePiece moves a piece from available to used with the transform it was
// placed with. The move is one-way.
func (p *PlayerState) UsePiece(id PieceID, rotation int, flipped bool) error {
	idx := p.FindAvailable(id)
	if idx == -1 {
		if p.HasUsed(id) {
			return ErrPieceAlreadyUsed
		}
		return ErrInvalidPieceID
	}
	piece := p.Available[idx].WithTransform(rotation, flipped)
	piece.Placed = true
	p.Available = append(p.Available[:idx:idx], p.Available[idx+1:]...)
	p.Used = append(p.Used, piece)
	p.LastPlacedPieceID = id
	return nil
}

// PlacedCells returns the total cell count of the placed pieces
func (p *PlayerState) PlacedCells() int {
	total := 0
	for _, piece := range p.Used {
		total += piece.Size()
	}
	return total
}

// RemainingCells returns the total cell count of the unplaced pieces
func (p *PlayerState) RemainingCells() int {
	total := 0
	for _, piece := range p.Available {
		total += piece.Size()
	}
	return total
}

// Clone returns a deep copy of the player state
func (p *PlayerState) Clone() PlayerState {
	clone := *p
	clone.Available = append([]Piece(nil), p.Available...)
	clone.Used = append([]Piece(nil), p.Used...)
	return clone
}
