package scoring

import (
	"sort"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/catalog"
)

// Config holds the score bonuses
type Config struct {
	// CompletionBonus is awarded when every piece has been placed
	CompletionBonus int
	// MonominoLastBonus is awarded on top when the single-cell piece was placed last
	MonominoLastBonus int
}

// DefaultConfig returns the standard Blokus bonuses
func DefaultConfig() Config {
	return Config{
		CompletionBonus:   15,
		MonominoLastBonus: 5,
	}
}

// Service computes player scores
type Service struct {
	cfg Config
}

// New creates a new ScoringService
func New(cfg Config) *Service {
	return &Service{
		cfg: cfg,
	}
}

// ScorePlayer calculates a player's score: placed cells minus remaining
// cells, plus the bonuses for placing every piece
func (s *Service) ScorePlayer(player *model.PlayerState) model.PlayerScore {
	result := model.PlayerScore{
		PlayerID:       player.ID,
		PlacedCells:    player.PlacedCells(),
		RemainingCells: player.RemainingCells(),
	}

	if len(player.Available) == 0 && len(player.Used) > 0 {
		result.Bonus += s.cfg.CompletionBonus
		if player.LastPlacedPieceID == catalog.MonominoID {
			result.Bonus += s.cfg.MonominoLastBonus
		}
	}

	result.Total = result.PlacedCells - result.RemainingCells + result.Bonus
	return result
}

// ScoreGame scores all players and returns results sorted by score
func (s *Service) ScoreGame(game *model.Game) []model.PlayerScore {
	scores := make([]model.PlayerScore, 0, len(game.Players))
	for i := range game.Players {
		scores = append(scores, s.ScorePlayer(&game.Players[i]))
	}

	// Sort by score descending, stable on player order
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Total > scores[j].Total
	})

	return scores
}

// DetermineWinner returns the winner's PlayerID, or NoPlayer if tie
func (s *Service) DetermineWinner(scores []model.PlayerScore) model.PlayerID {
	if len(scores) == 0 {
		return model.NoPlayer
	}

	topScore := scores[0].Total
	tieCount := 0
	for _, score := range scores {
		if score.Total == topScore {
			tieCount++
		}
	}

	if tieCount > 1 {
		return model.NoPlayer // Tie
	}

	return scores[0].PlayerID
}

// Interface for dependency injection
type ServiceInterface interface {
	ScorePlayer(player *model.PlayerState) model.PlayerScore
	ScoreGame(game *model.Game) []model.PlayerScore
	DetermineWinner(scores []model.PlayerScore) model.PlayerID
}

var _ ServiceInterface = (*Service)(nil)
