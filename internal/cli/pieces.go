package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/blokus-go/internal/api/response"
	"github.com/mcoot/blokus-go/internal/geometry"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/catalog"
)

// Orientation is one distinct transform of a piece
type Orientation struct {
	Rotation int              `json:"rotation"`
	Flipped  bool             `json:"flipped"`
	Cells    []response.Point `json:"cells"`
}

func newPiecesCmd() *cobra.Command {
	var pieceID int

	cmd := &cobra.Command{
		Use:   "pieces",
		Short: "Show the piece catalog",
		Long: `Show the 21 pieces every player receives. This works offline.

With --piece, every distinct rotation and mirror state of one piece is shown
with the flags to pass to "game place".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pieces := catalog.MustDefault()
			out := NewOutput(cfg.Output)

			if pieceID == 0 {
				defs := pieces.All()
				result := response.PiecesResponse{
					Pieces:     make([]response.Piece, len(defs)),
					TotalCells: pieces.TotalCells(),
				}
				for i, def := range defs {
					result.Pieces[i] = response.PieceFromModel(def)
				}
				out.Print(result)
				return nil
			}

			def, err := pieces.Get(model.PieceID(pieceID))
			if err != nil {
				return err
			}
			var orientations []Orientation
			for _, o := range geometry.Orientations(def.Cells) {
				orientations = append(orientations, Orientation{
					Rotation: o.Rotation,
					Flipped:  o.Flipped,
					Cells:    response.PointsFromModel(o.Cells),
				})
			}

			if cfg.Output == "json" {
				out.Print(orientations)
				return nil
			}
			fmt.Printf("%s: %d distinct orientations\n", def.Name, len(orientations))
			for _, o := range orientations {
				fmt.Printf("\n--rotation %d --flip=%t\n", o.Rotation, o.Flipped)
				printShape(o.Cells)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pieceID, "piece", 0, "Show the orientations of one piece")
	return cmd
}
