package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keyspace
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   cfg.keys(),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.game(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, s.keys.gamesIndex(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, s.keys.game(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.keys.game(id))
	pipe.SRem(ctx, s.keys.gamesIndex(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// ListGames returns the ids of games that have not expired, pruning expired
// ids from the index as it goes
func (s *Storage) ListGames(ctx context.Context) ([]model.GameID, error) {
	members, err := s.client.SMembers(ctx, s.keys.gamesIndex()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.GameID, 0, len(members))
	for _, m := range members {
		exists, err := s.client.Exists(ctx, s.keys.game(model.GameID(m))).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			_ = s.client.SRem(ctx, s.keys.gamesIndex(), m).Err()
			continue
		}
		ids = append(ids, model.GameID(m))
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Seat credential operations

func (s *Storage) SaveSeatCredential(ctx context.Context, cred *model.SeatCredential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	key := s.keys.seat(cred.GameID, cred.PlayerID)
	indexKey := s.keys.seatsForGame(cred.GameID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.SeatTTL)
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, s.cfg.SeatTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSeatCredential(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.SeatCredential, error) {
	data, err := s.client.Get(ctx, s.keys.seat(gameID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSeatNotFound
		}
		return nil, err
	}

	var cred model.SeatCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *Storage) DeleteSeatCredentialsForGame(ctx context.Context, gameID model.GameID) error {
	indexKey := s.keys.seatsForGame(gameID)

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	// Delete all seats and the index in one pipeline
	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keys.summary(summary.ID), data, s.cfg.SummaryTTL).Err()
}

func (s *Storage) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	data, err := s.client.Get(ctx, s.keys.summary(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSummaryNotFound
		}
		return nil, err
	}

	var summary model.GameSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
