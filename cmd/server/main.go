package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/blokus-go/internal/api"
	"github.com/mcoot/blokus-go/internal/factory"
	"github.com/mcoot/blokus-go/internal/services/bot"
	redisstorage "github.com/mcoot/blokus-go/internal/storage/redis"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, serverCfg, err := configFromEnv(logger)
	if err != nil {
		return err
	}

	app, err := factory.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if closer, ok := app.Storage.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close storage", slog.String("error", err.Error()))
			}
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		BotService:     app.BotService,
		Catalog:        app.Catalog,
	})

	return api.NewServer(router, serverCfg, logger).Run(ctx)
}

// configFromEnv builds the application and server settings from the environment
func configFromEnv(logger *slog.Logger) (factory.Config, api.ServerConfig, error) {
	serverCfg := api.DefaultServerConfig()
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return factory.Config{}, serverCfg, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		serverCfg.Port = port
	}

	botCfg := bot.DefaultConfig()
	if raw := os.Getenv("BOT_THINK_DELAY"); raw != "" {
		delay, err := time.ParseDuration(raw)
		if err != nil {
			return factory.Config{}, serverCfg, fmt.Errorf("invalid BOT_THINK_DELAY %q: %w", raw, err)
		}
		botCfg.ThinkDelay = delay
	}

	cfg := factory.Config{
		BotConfig:   &botCfg,
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return factory.Config{}, serverCfg, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if prefix := os.Getenv("REDIS_KEY_PREFIX"); prefix != "" {
			redisCfg.KeyPrefix = prefix
		}
		cfg.RedisConfig = &redisCfg
	}

	return cfg, serverCfg, nil
}

func logLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
