package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/blokus-go/internal/api/response"
)

// playerSymbols marks each player's cells on a rendered board, in seat order
var playerSymbols = []string{"B", "Y", "R", "G"}

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.CreateGameResponse:
		o.printCreated(v)
	case response.GameListResponse:
		o.printGameList(v)
	case response.PlaceResponse:
		o.printPlaceResult(v)
	case response.TurnResponse:
		o.printBotActions(v.BotActions)
		o.printGame(v.Game)
	case response.Validation:
		o.printValidation(v)
	case response.ScoresResponse:
		o.printScores(v)
	case response.BotRunResponse:
		o.printBotActions(v.Actions)
	case response.PiecesResponse:
		o.printPieces(v)
	case response.HeldPiece:
		fmt.Printf("Piece %d: rotation %d, flipped %t\n", v.ID, v.Rotation, v.Flipped)
		printShape(v.Cells)
	case response.HealthResponse:
		fmt.Printf("Status: %s\n", v.Status)
	case SimulationResult:
		o.printSimulation(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func symbol(player int) string {
	if player >= 0 && player < len(playerSymbols) {
		return playerSymbols[player]
	}
	return "?"
}

func (o *Output) printGame(g response.Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("State: %s\n", g.State)
	fmt.Printf("Turn: %d (generation %d)\n", g.TurnNumber, g.Generation)

	fmt.Println("Players:")
	for _, p := range g.Players {
		marker := "  "
		if g.State == "active" && p.ID == g.CurrentPlayer {
			marker = "> "
		}
		status := ""
		if p.Resigned {
			status = " [resigned]"
		}
		fmt.Printf("%s%s %d %s (%s) - %d pieces, %d cells left%s\n",
			marker, symbol(p.ID), p.ID, p.Name, p.Kind, len(p.Available), p.RemainingCells, status)
	}

	fmt.Println()
	o.printBoard(g.Board)
}

func (o *Output) printBoard(board [][]int) {
	if len(board) == 0 {
		return
	}
	size := len(board)

	// Column headers, tens then units
	fmt.Print("    ")
	for col := range size {
		fmt.Print(col / 10)
	}
	fmt.Println()
	fmt.Print("    ")
	for col := range size {
		fmt.Print(col % 10)
	}
	fmt.Println()
	fmt.Printf("   +%s+\n", strings.Repeat("-", size))

	for row := range size {
		fmt.Printf("%2d |", row)
		for _, owner := range board[row] {
			if owner < 0 {
				fmt.Print(".")
			} else {
				fmt.Print(symbol(owner))
			}
		}
		fmt.Println("|")
	}
	fmt.Printf("   +%s+\n", strings.Repeat("-", size))
}

func (o *Output) printCreated(c response.CreateGameResponse) {
	o.printBotActions(c.BotActions)
	o.printGame(c.Game)
	if len(c.Tokens) > 0 {
		fmt.Println("\nSeat tokens:")
		for _, t := range c.Tokens {
			fmt.Printf("  player %d: %s\n", t.PlayerID, t.Token)
		}
	}
}

func (o *Output) printGameList(l response.GameListResponse) {
	if len(l.Games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, id := range l.Games {
		fmt.Println(id)
	}
}

func (o *Output) printValidation(v response.Validation) {
	if v.Valid {
		fmt.Println("Placement is legal")
		return
	}
	fmt.Printf("Placement is illegal: %s\n", v.Description)
	if len(v.Conflicts) > 0 {
		cells := make([]string, len(v.Conflicts))
		for i, c := range v.Conflicts {
			cells[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
		}
		fmt.Printf("Conflicting cells: %s\n", strings.Join(cells, " "))
	}
}

func (o *Output) printPlaceResult(p response.PlaceResponse) {
	if !p.Placed {
		o.printValidation(p.Result)
		return
	}

	fmt.Printf("Piece placed on %d cells\n", len(p.Cells))
	o.printBotActions(p.BotActions)
	if p.GameOver {
		fmt.Println("Game over!")
	} else {
		fmt.Printf("Next player: %d\n", p.NextPlayer)
	}
}

func (o *Output) printBotActions(actions []response.BotAction) {
	for _, a := range actions {
		switch a.Type {
		case "place":
			fmt.Printf("Bot %d placed piece %d at (%d,%d)\n", a.PlayerID, a.Move.PieceID, a.Move.Anchor.X, a.Move.Anchor.Y)
		case "skip":
			fmt.Printf("Bot %d skipped\n", a.PlayerID)
		case "game_complete":
			fmt.Println("Game complete!")
		}
	}
}

func (o *Output) printScores(s response.ScoresResponse) {
	fmt.Printf("State: %s\n", s.State)
	for _, sc := range s.Scores {
		fmt.Printf("  %s %d: %d points (%d placed, %d left, bonus %d)\n",
			symbol(sc.PlayerID), sc.PlayerID, sc.Total, sc.PlacedCells, sc.RemainingCells, sc.Bonus)
	}
	if s.Winner != nil {
		fmt.Printf("Winner: player %d\n", *s.Winner)
	} else if s.State == "finished" {
		fmt.Println("Result: tie")
	}
}

func (o *Output) printPieces(p response.PiecesResponse) {
	fmt.Printf("%d pieces, %d cells\n", len(p.Pieces), p.TotalCells)
	for _, piece := range p.Pieces {
		fmt.Printf("\n%2d %s (%d)\n", piece.ID, piece.Name, piece.Size)
		printShape(piece.Cells)
	}
}

// printShape draws a normalized cell set with # marks
func printShape(cells []response.Point) {
	width, height := 0, 0
	filled := make(map[response.Point]bool, len(cells))
	for _, c := range cells {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
		filled[c] = true
	}
	for y := range height {
		var sb strings.Builder
		sb.WriteString("   ")
		for x := range width {
			if filled[response.Point{X: x, Y: y}] {
				sb.WriteString("#")
			} else {
				sb.WriteString(" ")
			}
		}
		fmt.Println(strings.TrimRight(sb.String(), " "))
	}
}
