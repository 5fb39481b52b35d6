package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/blokus-go/internal/api/request"
	"github.com/mcoot/blokus-go/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameValidateCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameOrientCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameResignCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameScoresCmd())
	cmd.AddCommand(newGameBotsCmd())

	return cmd
}

// seatClient returns a client carrying the seat token for a game
func seatClient(gameID string, player int) (*Client, error) {
	token, err := cfg.SeatToken(gameID, player)
	if err != nil {
		return nil, err
	}
	return client.WithToken(token), nil
}

func gamePath(gameID string, parts ...string) string {
	return "/api/v1/games/" + strings.Join(append([]string{gameID}, parts...), "/")
}

func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %q", names[i], a)
		}
		out[i] = v
	}
	return out, nil
}

func newGameCreateCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "create <kind> <kind> [kind] [kind]",
		Short: "Create a game with one seat per kind (human, random, greedy, deep)",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateGameRequest{Seats: make([]request.SeatRequest, len(args))}
			for i, kind := range args {
				req.Seats[i].Kind = kind
				if i < len(names) {
					req.Seats[i].Name = names[i]
				}
			}

			var result response.CreateGameResponse
			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			tokens := make([]string, len(result.Tokens))
			for i, t := range result.Tokens {
				tokens[i] = t.Token
			}
			if len(tokens) > 0 {
				if err := cfg.SaveTokens(tokens...); err != nil {
					return fmt.Errorf("game created but seat tokens could not be saved: %w", err)
				}
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "names", nil, "Seat names in order")
	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameListResponse
			if err := client.Get(cmd.Context(), "/api/v1/games", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show the board and players of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

// placementFlags are the transform flags shared by place and validate
type placementFlags struct {
	rotation int
	flipped  bool
}

func (f *placementFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.rotation, "rotation", "r", 0, "Clockwise quarter turns (0-3)")
	cmd.Flags().BoolVarP(&f.flipped, "flip", "f", false, "Mirror the piece before rotating")
}

func (f *placementFlags) request(pieceID, x, y int) request.PlaceRequest {
	return request.PlaceRequest{PieceID: pieceID, X: x, Y: y, Rotation: f.rotation, Flipped: f.flipped}
}

func newGameValidateCmd() *cobra.Command {
	var flags placementFlags

	cmd := &cobra.Command{
		Use:   "validate <game-id> <player> <piece> <x> <y>",
		Short: "Check a placement without playing it",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args[1:], "player", "piece", "x", "y")
			if err != nil {
				return err
			}

			req := request.ValidateRequest{PlayerID: nums[0], PlaceRequest: flags.request(nums[1], nums[2], nums[3])}
			var result response.Validation
			if err := client.Post(cmd.Context(), gamePath(args[0], "validate"), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGamePlaceCmd() *cobra.Command {
	var flags placementFlags
	var player int

	cmd := &cobra.Command{
		Use:   "place <game-id> <piece> <x> <y>",
		Short: "Place a piece with its top-left cell origin at (x, y)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args[1:], "piece", "x", "y")
			if err != nil {
				return err
			}
			c, err := seatClient(args[0], player)
			if err != nil {
				return err
			}

			var result response.PlaceResponse
			err = c.Post(cmd.Context(), gamePath(args[0], "moves"), flags.request(nums[0], nums[1], nums[2]), &result)
			if err != nil && !errors.Is(err, ErrRejected) {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&player, "player", "p", -1, "Seat to act for when several are saved")
	return cmd
}

func newGameOrientCmd() *cobra.Command {
	var flags placementFlags
	var player int

	cmd := &cobra.Command{
		Use:   "orient <game-id> <piece>",
		Short: "Set the orientation kept for one of your unplaced pieces",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args[1:], "piece")
			if err != nil {
				return err
			}
			c, err := seatClient(args[0], player)
			if err != nil {
				return err
			}

			req := request.TransformRequest{Rotation: flags.rotation, Flipped: flags.flipped}
			var result response.HeldPiece
			if err := c.Put(cmd.Context(), gamePath(args[0], "pieces", strconv.Itoa(nums[0])), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&player, "player", "p", -1, "Seat to act for when several are saved")
	return cmd
}

// newTurnCmd builds a seat command that posts to a game action endpoint
func newTurnCmd(use, short, action string) *cobra.Command {
	var player int

	cmd := &cobra.Command{
		Use:   use + " <game-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seatClient(args[0], player)
			if err != nil {
				return err
			}

			var result response.TurnResponse
			if err := c.Post(cmd.Context(), gamePath(args[0], action), nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", -1, "Seat to act for when several are saved")
	return cmd
}

func newGameSkipCmd() *cobra.Command {
	return newTurnCmd("skip", "Pass your turn", "skip")
}

func newGameResignCmd() *cobra.Command {
	return newTurnCmd("resign", "Stop playing; your pieces stay on the board", "resign")
}

func newGameResetCmd() *cobra.Command {
	return newTurnCmd("reset", "Clear the board and start the game again", "reset")
}

func newGameAbandonCmd() *cobra.Command {
	var player int
	var reason string

	cmd := &cobra.Command{
		Use:   "abandon <game-id>",
		Short: "End the game without a result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := seatClient(args[0], player)
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), gamePath(args[0]), request.AbandonRequest{Reason: reason}); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Game abandoned")
			return nil
		},
	}

	cmd.Flags().IntVarP(&player, "player", "p", -1, "Seat to act for when several are saved")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the game")
	return cmd
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <game-id>",
		Short: "Show the current scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ScoresResponse
			if err := client.Get(cmd.Context(), gamePath(args[0], "scores"), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameBotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bots <game-id>",
		Short: "Let bots take any turns that are due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.BotRunResponse
			if err := client.Post(cmd.Context(), gamePath(args[0], "bots", "run"), nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
