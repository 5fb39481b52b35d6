package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mcoot/blokus-go/internal/geometry"
	"github.com/mcoot/blokus-go/internal/model"
)

// PieceCount is the number of pieces each player receives
const PieceCount = 21

// Catalog validation errors
var (
	ErrWrongPieceCount   = errors.New("catalog must contain exactly 21 pieces")
	ErrDuplicatePieceID  = errors.New("duplicate piece id")
	ErrEmptyShape        = errors.New("piece shape is empty")
	ErrDuplicateCell     = errors.New("piece shape has duplicate cells")
	ErrDisconnectedShape = errors.New("piece shape is not edge-connected")
	ErrSizeMismatch      = errors.New("piece size does not match its cell count")
	ErrSizeDistribution  = errors.New("catalog size distribution is not 1x1, 1x2, 2x3, 5x4, 12x5")
)

// sizeDistribution is the number of pieces of each cell count
var sizeDistribution = map[int]int{1: 1, 2: 1, 3: 2, 4: 5, 5: 12}

// Catalog is a validated, immutable registry of piece definitions
type Catalog struct {
	byID       map[model.PieceID]model.PieceDefinition
	ordered    []model.PieceDefinition
	totalCells int
}

// New validates the definitions and builds a catalog
func New(defs []model.PieceDefinition) (*Catalog, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}

	c := &Catalog{
		byID:    make(map[model.PieceID]model.PieceDefinition, len(defs)),
		ordered: make([]model.PieceDefinition, 0, len(defs)),
	}
	for _, def := range defs {
		c.byID[def.ID] = def
		c.ordered = append(c.ordered, def)
		c.totalCells += def.Size
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].ID < c.ordered[j].ID
	})
	return c, nil
}

// MustDefault returns the standard catalog, panicking if the built-in data is defective
func MustDefault() *Catalog {
	c, err := New(Standard())
	if err != nil {
		panic(fmt.Sprintf("invalid piece catalog: %v", err))
	}
	return c
}

// Validate checks the structural invariants of a set of definitions
func Validate(defs []model.PieceDefinition) error {
	if len(defs) != PieceCount {
		return fmt.Errorf("%w: got %d", ErrWrongPieceCount, len(defs))
	}

	seen := make(map[model.PieceID]bool, len(defs))
	sizes := make(map[int]int)
	for _, def := range defs {
		if def.ID < 1 || def.ID > PieceCount {
			return fmt.Errorf("piece %q: %w", def.Name, model.ErrInvalidPieceID)
		}
		if seen[def.ID] {
			return fmt.Errorf("piece %d: %w", def.ID, ErrDuplicatePieceID)
		}
		seen[def.ID] = true

		if err := ValidateShape(def); err != nil {
			return err
		}
		sizes[def.Size]++
	}

	for size, want := range sizeDistribution {
		if sizes[size] != want {
			return fmt.Errorf("%w: %d pieces of size %d", ErrSizeDistribution, sizes[size], size)
		}
	}
	return nil
}

// ValidateShape checks one definition's cells
func ValidateShape(def model.PieceDefinition) error {
	switch {
	case len(def.Cells) == 0:
		return fmt.Errorf("piece %d: %w", def.ID, ErrEmptyShape)
	case geometry.HasDuplicates(def.Cells):
		return fmt.Errorf("piece %d: %w", def.ID, ErrDuplicateCell)
	case !geometry.IsConnected(def.Cells):
		return fmt.Errorf("piece %d: %w", def.ID, ErrDisconnectedShape)
	case def.Size != len(def.Cells):
		return fmt.Errorf("piece %d: %w", def.ID, ErrSizeMismatch)
	}
	return nil
}

// Get returns the definition with the given id
func (c *Catalog) Get(id model.PieceID) (model.PieceDefinition, error) {
	def, ok := c.byID[id]
	if !ok {
		return model.PieceDefinition{}, model.ErrInvalidPieceID
	}
	return def, nil
}

// All returns every definition ordered by id
func (c *Catalog) All() []model.PieceDefinition {
	out := make([]model.PieceDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// TotalCells returns the number of cells across all pieces
func (c *Catalog) TotalCells() int {
	return c.totalCells
}

// NewPlayerSet returns a fresh, unplaced copy of every piece for one player
func (c *Catalog) NewPlayerSet() []model.Piece {
	set := make([]model.Piece, 0, len(c.ordered))
	for _, def := range c.ordered {
		set = append(set, model.NewPiece(def))
	}
	return set
}
