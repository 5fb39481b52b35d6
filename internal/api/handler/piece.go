package handler

import (
	"net/http"

	"github.com/mcoot/blokus-go/internal/api/response"
	"github.com/mcoot/blokus-go/internal/services/catalog"
)

// PieceHandler serves the piece catalog
type PieceHandler struct {
	catalog *catalog.Catalog
}

// NewPieceHandler creates a new piece handler
func NewPieceHandler(c *catalog.Catalog) *PieceHandler {
	return &PieceHandler{catalog: c}
}

// List handles GET /api/v1/pieces
func (h *PieceHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.catalog.All()
	resp := response.PiecesResponse{
		Pieces:     make([]response.Piece, len(defs)),
		TotalCells: h.catalog.TotalCells(),
	}
	for i, def := range defs {
		resp.Pieces[i] = response.PieceFromModel(def)
	}
	response.JSON(w, http.StatusOK, resp)
}
