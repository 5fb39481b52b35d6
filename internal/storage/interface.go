package storage

import (
	"context"

	"github.com/mcoot/blokus-go/internal/model"
)

// Storage persists games, seat credentials and game summaries
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]model.GameID, error)

	// Seat credential operations
	SaveSeatCredential(ctx context.Context, cred *model.SeatCredential) error
	GetSeatCredential(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.SeatCredential, error)
	DeleteSeatCredentialsForGame(ctx context.Context, gameID model.GameID) error

	// Summary operations
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error)
}
