package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blokus-go/internal/dependencies/clock"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/storage"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired seat token")
	ErrMalformed    = errors.New("malformed seat token")
)

// Seat identifies the game seat a bearer token controls
type Seat struct {
	GameID    model.GameID
	PlayerID  model.PlayerID
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
	// BcryptCost is lowered in tests to keep hashing fast
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
		BcryptCost:    bcrypt.DefaultCost,
	}
}

// ServiceInterface defines the seat token operations
type ServiceInterface interface {
	IssueSeatToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (string, error)
	ValidateToken(ctx context.Context, token string) (*Seat, error)
	RevokeGame(ctx context.Context, gameID model.GameID) error
}

// Service issues and checks per-seat bearer tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = defaults.TokenDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "auth")),
		cfg:     cfg,
	}
}

// IssueSeatToken creates a token of the form <gameID>.<player>.<secret> for
// a seat, replacing any token previously issued for it
func (s *Service) IssueSeatToken(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (string, error) {
	secret := generateSecret()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cfg.BcryptCost)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	cred := &model.SeatCredential{
		GameID:     gameID,
		PlayerID:   playerID,
		SecretHash: string(hash),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.TokenDuration),
	}
	if err := s.storage.SaveSeatCredential(ctx, cred); err != nil {
		return "", err
	}

	s.logger.Debug("seat token issued",
		slog.String("game_id", string(gameID)),
		slog.Int("player_id", int(playerID)))

	return fmt.Sprintf("%s.%d.%s", gameID, playerID, secret), nil
}

// ValidateToken checks a bearer token and returns the seat it controls
func (s *Service) ValidateToken(ctx context.Context, token string) (*Seat, error) {
	gameID, playerID, secret, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	cred, err := s.storage.GetSeatCredential(ctx, gameID, playerID)
	if err != nil {
		if errors.Is(err, model.ErrSeatNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if s.clock.Now().After(cred.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(secret)); err != nil {
		return nil, ErrInvalidToken
	}

	return &Seat{
		GameID:    cred.GameID,
		PlayerID:  cred.PlayerID,
		ExpiresAt: cred.ExpiresAt,
	}, nil
}

// RevokeGame removes every seat token issued for a game
func (s *Service) RevokeGame(ctx context.Context, gameID model.GameID) error {
	return s.storage.DeleteSeatCredentialsForGame(ctx, gameID)
}

// parseToken splits a token into its parts. Game ids never contain dots, so
// the first two separators delimit the game and player.
func parseToken(token string) (model.GameID, model.PlayerID, string, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", ErrMalformed
	}
	player, err := strconv.Atoi(parts[1])
	if err != nil || player < 0 || player >= model.MaxPlayers {
		return "", 0, "", ErrMalformed
	}
	return model.GameID(parts[0]), model.PlayerID(player), parts[2], nil
}

// generateSecret generates a random URL-safe secret
func generateSecret() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
