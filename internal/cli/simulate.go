package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/blokus-go/internal/api/response"
	"github.com/mcoot/blokus-go/internal/factory"
	"github.com/mcoot/blokus-go/internal/model"
	"github.com/mcoot/blokus-go/internal/services/bot"
)

// SimulationResult is the outcome of a local bot-only game
type SimulationResult struct {
	Game    response.Game           `json:"game"`
	Scores  response.ScoresResponse `json:"scores"`
	Actions []response.BotAction    `json:"actions,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "simulate [kind...]",
		Short: "Play a bot-only game locally and print the result",
		Long: `Play a game between bots without a server. Kinds are random, greedy
and deep; the default is four seats of greedy, random, deep and greedy.`,
		Args: cobra.MaximumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := args
			if len(kinds) == 0 {
				kinds = []string{"greedy", "random", "deep", "greedy"}
			}

			result, err := simulate(cmd.Context(), kinds, delay)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(*result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 0, "Bot thinking delay per move")
	return cmd
}

func simulate(ctx context.Context, kinds []string, delay time.Duration) (*SimulationResult, error) {
	seats := make([]model.Seat, len(kinds))
	for i, k := range kinds {
		kind, err := model.ParsePlayerKind(k)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		if !kind.IsBot() {
			return nil, fmt.Errorf("seat %d: only bots can play a simulated game", i)
		}
		seats[i] = model.Seat{Kind: kind}
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	botCfg := bot.DefaultConfig()
	botCfg.ThinkDelay = delay
	app, err := factory.New(factory.Config{BotConfig: &botCfg, Logger: logger})
	if err != nil {
		return nil, err
	}

	g, err := app.GameController.CreateGame(ctx, seats)
	if err != nil {
		return nil, err
	}
	actions, err := app.BotService.ProcessBotActions(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	if g, err = app.GameController.GetGame(ctx, g.ID); err != nil {
		return nil, err
	}
	scores, err := app.GameController.GetScores(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	result := &SimulationResult{
		Game:   response.GameFromModel(g),
		Scores: response.ScoresResponse{State: string(g.State)},
	}
	for _, s := range scores {
		result.Scores.Scores = append(result.Scores.Scores, response.ScoreFromModel(s))
	}
	if winner := app.ScoringService.DetermineWinner(scores); g.State == model.GameStateFinished && winner != model.NoPlayer {
		w := int(winner)
		result.Scores.Winner = &w
	}
	if cfg.Verbose {
		result.Actions = response.BotActionsFromModel(actions)
	}
	return result, nil
}

func (o *Output) printSimulation(r SimulationResult) {
	o.printBotActions(r.Actions)
	o.printGame(r.Game)
	fmt.Println()
	o.printScores(r.Scores)
}
