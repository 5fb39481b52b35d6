package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
)

// seatsFile is the XDG config path of the saved seat tokens
const seatsFile = "blokus/seats.json"

// ErrNoSeat is returned when no saved token controls a seat in a game
var ErrNoSeat = errors.New("no seat token for this game (pass --token or create the game from this CLI)")

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BLOKUS_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("BLOKUS_TOKEN"),
		TokenFile: os.Getenv("BLOKUS_TOKEN_FILE"),
		Output:    "text",
		Verbose:   false,
	}
}

// savedSeats is the on-disk list of seat tokens issued to this CLI
type savedSeats struct {
	Tokens []string `json:"tokens"`
}

// tokenPath returns the file seat tokens are kept in. With create set the
// XDG directory is created when needed.
func (c *Config) tokenPath(create bool) (string, error) {
	if c.TokenFile != "" {
		return c.TokenFile, nil
	}
	if create {
		return xdg.ConfigFile(seatsFile)
	}
	return xdg.SearchConfigFile(seatsFile)
}

func (c *Config) loadSeats() (savedSeats, error) {
	var seats savedSeats
	path, err := c.tokenPath(false)
	if err != nil {
		return seats, nil // Nothing saved yet
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seats, nil
		}
		return seats, err
	}
	if err := json.Unmarshal(data, &seats); err != nil {
		return seats, fmt.Errorf("invalid token file %s: %w", path, err)
	}
	return seats, nil
}

// SaveTokens adds seat tokens to the token file, replacing older tokens for
// the same seats
func (c *Config) SaveTokens(tokens ...string) error {
	seats, err := c.loadSeats()
	if err != nil {
		return err
	}

	for _, token := range tokens {
		prefix := seatPrefix(token)
		kept := seats.Tokens[:0]
		for _, existing := range seats.Tokens {
			if seatPrefix(existing) != prefix {
				kept = append(kept, existing)
			}
		}
		seats.Tokens = append(kept, token)
	}
	sort.Strings(seats.Tokens)

	path, err := c.tokenPath(true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(seats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SeatToken finds the token for a seat in a game. An explicit --token always
// wins. With player negative the game must have exactly one saved seat.
func (c *Config) SeatToken(gameID string, player int) (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}

	seats, err := c.loadSeats()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, token := range seats.Tokens {
		if player >= 0 && seatPrefix(token) == fmt.Sprintf("%s.%d", gameID, player) {
			return token, nil
		}
		if player < 0 && strings.HasPrefix(token, gameID+".") {
			matches = append(matches, token)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", ErrNoSeat
	default:
		return "", fmt.Errorf("%d seats saved for game %s; choose one with --player", len(matches), gameID)
	}
}

// seatPrefix returns the game and player part of a token
func seatPrefix(token string) string {
	if i := strings.LastIndex(token, "."); i > 0 {
		return token[:i]
	}
	return token
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
