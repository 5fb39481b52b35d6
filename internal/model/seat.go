package model

import "time"

// SeatCredential stores the hashed bearer secret for a human seat.
// The secret itself is never stored.
type SeatCredential struct {
	GameID     GameID    `json:"game_id"`
	PlayerID   PlayerID  `json:"player_id"`
	SecretHash string    `json:"secret_hash"` // bcrypt hash
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
