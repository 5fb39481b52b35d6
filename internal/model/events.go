package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated       EventType = "game_created"
	EventPiecePlaced       EventType = "piece_placed"
	EventPlacementRejected EventType = "placement_rejected"
	EventTurnSkipped       EventType = "turn_skipped"
	EventPlayerResigned    EventType = "player_resigned"
	EventGameReset         EventType = "game_reset"
	EventGameOver          EventType = "game_over"
	EventGameAbandoned     EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // NoPlayer for game-wide events
	Payload   any      // Type-specific data
}

// EventListener receives events from the game controller
type EventListener func(Event)

// GameCreatedPayload contains data for game created events
type GameCreatedPayload struct {
	Seats []Seat
}

// TurnSkippedPayload contains data for turn skipped events
type TurnSkippedPayload struct {
	TurnNumber int
	// Automatic is true when the player was skipped for having no legal move
	Automatic bool
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Scores []PlayerScore
	Winner PlayerID // NoPlayer if tie
}

// GameAbandonedPayload contains data for game abandoned events
type GameAbandonedPayload struct {
	Reason string
}
