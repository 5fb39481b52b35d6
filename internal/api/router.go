package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/blokus-go/internal/api/handler"
	"github.com/mcoot/blokus-go/internal/api/middleware"
	"github.com/mcoot/blokus-go/internal/api/response"
	basemiddleware "github.com/mcoot/blokus-go/internal/middleware"
	"github.com/mcoot/blokus-go/internal/services/auth"
	"github.com/mcoot/blokus-go/internal/services/bot"
	"github.com/mcoot/blokus-go/internal/services/catalog"
	"github.com/mcoot/blokus-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	BotService     *bot.Service
	Catalog        *catalog.Catalog
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, cfg.AuthService, cfg.Logger)
	pieceHandler := handler.NewPieceHandler(cfg.Catalog)

	// Create middleware
	seatAuth := middleware.SeatAuth(cfg.AuthService)
	seat := func(h http.HandlerFunc) http.Handler { return seatAuth(h) }

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(basemiddleware.Logging(cfg.Logger))

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api.HandleFunc("/pieces", pieceHandler.List).Methods(http.MethodGet)

	// Public game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/validate", gameHandler.Validate).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/scores", gameHandler.Scores).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/bots/run", gameHandler.RunBots).Methods(http.MethodPost)

	// Seat routes act for the player named by the bearer token
	api.Handle("/games/{id}", seat(gameHandler.Abandon)).Methods(http.MethodDelete)
	api.Handle("/games/{id}/moves", seat(gameHandler.Place)).Methods(http.MethodPost)
	api.Handle("/games/{id}/pieces/{piece}", seat(gameHandler.Transform)).Methods(http.MethodPut)
	api.Handle("/games/{id}/skip", seat(gameHandler.Skip)).Methods(http.MethodPost)
	api.Handle("/games/{id}/resign", seat(gameHandler.Resign)).Methods(http.MethodPost)
	api.Handle("/games/{id}/reset", seat(gameHandler.Reset)).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
