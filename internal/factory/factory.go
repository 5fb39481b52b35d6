package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/blokus-go/internal/dependencies/clock"
	"github.com/mcoot/blokus-go/internal/dependencies/random"
	"github.com/mcoot/blokus-go/internal/services/auth"
	"github.com/mcoot/blokus-go/internal/services/board"
	"github.com/mcoot/blokus-go/internal/services/bot"
	"github.com/mcoot/blokus-go/internal/services/catalog"
	"github.com/mcoot/blokus-go/internal/services/game"
	"github.com/mcoot/blokus-go/internal/services/rules"
	"github.com/mcoot/blokus-go/internal/services/scoring"
	"github.com/mcoot/blokus-go/internal/storage"
	"github.com/mcoot/blokus-go/internal/storage/memory"
	redisstorage "github.com/mcoot/blokus-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalog        *catalog.Catalog
	RuleEngine     *rules.Engine
	BoardService   *board.Service
	ScoringService *scoring.Service
	GameController *game.Controller
	BotService     *bot.Service
	AuthService    *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// BotConfig holds bot timing and weights (optional)
	// If nil, defaults to bot.DefaultConfig()
	BotConfig *bot.Config
	// ScoringConfig holds the score bonuses (optional)
	// If nil, defaults to scoring.DefaultConfig()
	ScoringConfig *scoring.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	botCfg := bot.DefaultConfig()
	if cfg.BotConfig != nil {
		botCfg = *cfg.BotConfig
	}
	scoringCfg := scoring.DefaultConfig()
	if cfg.ScoringConfig != nil {
		scoringCfg = *cfg.ScoringConfig
	}

	return newWithDependencies(store, clk, rnd, cfg.AuthConfig, botCfg, scoringCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	botCfg bot.Config,
	scoringCfg scoring.Config,
	logger *slog.Logger,
) *App {
	// The built-in catalog is validated here; a defect stops startup
	pieces := catalog.MustDefault()

	ruleEngine := rules.New(logger)
	boardService := board.New(logger)
	scoringService := scoring.New(scoringCfg)
	gameController := game.NewController(store, pieces, ruleEngine, boardService, scoringService, clk, rnd, logger)
	strategies := bot.DefaultStrategies(ruleEngine, rnd, botCfg)
	botService := bot.NewService(gameController, strategies, clk, botCfg, logger)
	authService := auth.New(store, clk, logger, authCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Catalog:        pieces,
		RuleEngine:     ruleEngine,
		BoardService:   boardService,
		ScoringService: scoringService,
		GameController: gameController,
		BotService:     botService,
		AuthService:    authService,
	}
}
