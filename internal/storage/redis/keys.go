package redis

import (
	"fmt"

	"github.com/mcoot/blokus-go/internal/model"
)

// keyspace builds Redis keys under a deployment prefix
type keyspace string

func (k keyspace) game(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", k, id)
}

// gamesIndex is a SET of known game ids
func (k keyspace) gamesIndex() string {
	return fmt.Sprintf("%s:idx:games", k)
}

func (k keyspace) seat(gameID model.GameID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:seat:%s:%d", k, gameID, playerID)
}

// seatsForGame is a SET of the seat keys issued for one game
func (k keyspace) seatsForGame(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:seats_for_game:%s", k, gameID)
}

func (k keyspace) summary(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", k, id)
}
