package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games     map[model.GameID]*model.Game
	seats     map[seatKey]*model.SeatCredential
	summaries map[model.GameID]*model.GameSummary
}

type seatKey struct {
	gameID   model.GameID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[model.GameID]*model.Game),
		seats:     make(map[seatKey]*model.SeatCredential),
		summaries: make(map[model.GameID]*model.GameSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.GameID, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Seat credential operations

func (s *Storage) SaveSeatCredential(ctx context.Context, cred *model.SeatCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats[seatKey{gameID: cred.GameID, playerID: cred.PlayerID}] = cred
	return nil
}

func (s *Storage) GetSeatCredential(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.SeatCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.seats[seatKey{gameID: gameID, playerID: playerID}]
	if !ok {
		return nil, model.ErrSeatNotFound
	}
	return cred, nil
}

func (s *Storage) DeleteSeatCredentialsForGame(ctx context.Context, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.seats {
		if key.gameID == gameID {
			delete(s.seats, key)
		}
	}
	return nil
}

// Summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ID] = summary
	return nil
}

func (s *Storage) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrSummaryNotFound
	}
	return summary, nil
}
